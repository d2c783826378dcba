package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"authentication/lib/constants"
)

// SecretHash computes the Cognito SECRET_HASH for an app client that has a secret:
// Base64(HMAC-SHA256(clientSecret, userName + clientID))
func SecretHash(userName, clientID, clientSecret string) (string, error) {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	if _, err := mac.Write([]byte(userName + clientID)); err != nil {
		return "", fmt.Errorf("failed to compute secret hash: %w", err)
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// PasswordParameters builds the AuthParameters for the ADMIN_NO_SRP_AUTH flow.
// SECRET_HASH is only added when the client has a secret.
func PasswordParameters(userName, password, clientID, clientSecret string) (map[string]string, error) {
	params := map[string]string{
		constants.AUTH_PARAM_USERNAME: userName,
		constants.AUTH_PARAM_PASSWORD: password,
	}

	if clientSecret != "" {
		hash, err := SecretHash(userName, clientID, clientSecret)
		if err != nil {
			return nil, err
		}
		params[constants.AUTH_PARAM_SECRET_HASH] = hash
	}

	return params, nil
}

// RefreshParameters builds the AuthParameters for the REFRESH_TOKEN_AUTH flow.
// Cognito needs the user name (or sub) to verify SECRET_HASH on refresh, so the hash is
// only sent when both a secret and a user name are available.
func RefreshParameters(refreshToken, userName, clientID, clientSecret string) (map[string]string, error) {
	params := map[string]string{
		constants.AUTH_PARAM_REFRESH_TOKEN: refreshToken,
	}

	if clientSecret != "" && userName != "" {
		hash, err := SecretHash(userName, clientID, clientSecret)
		if err != nil {
			return nil, err
		}
		params[constants.AUTH_PARAM_SECRET_HASH] = hash
	}

	return params, nil
}
