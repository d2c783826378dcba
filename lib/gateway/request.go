package gateway

import (
	"encoding/json"

	"authentication/lib/api"
	"authentication/lib/constants"
	"authentication/lib/models"
	"authentication/lib/util"
)

// ParseRequest turns the raw body into a validated AuthRequest.
// Nothing reaches the identity provider unless this succeeds.
func ParseRequest(rawBody string) (*models.AuthRequest, *api.Failure) {
	if util.IsBlank(rawBody) {
		return nil, api.NewFailure(api.RequestMalformed, constants.MSG_MISSING_BODY)
	}

	var body map[string]interface{}
	if err := json.Unmarshal([]byte(rawBody), &body); err != nil || body == nil {
		return nil, api.WrapFailure(api.RequestMalformed, constants.MSG_MALFORMED_BODY, err)
	}

	grantType, _ := stringField(body, "grantType")
	switch grantType {
	case constants.GRANT_TYPE_AUTHENTICATION:
		userName, hasUserName := stringField(body, "userName")
		password, hasPassword := stringField(body, "password")
		if !hasUserName || !hasPassword {
			return nil, api.NewFailure(api.ValidationFailed, constants.MSG_MISSING_CREDENTIALS)
		}
		return &models.AuthRequest{
			GrantType:      grantType,
			Authentication: &models.AuthenticationRequest{UserName: userName, Password: password},
		}, nil

	case constants.GRANT_TYPE_REFRESH_TOKEN:
		refreshToken, ok := stringField(body, "refreshToken")
		if !ok {
			return nil, api.NewFailure(api.ValidationFailed, constants.MSG_MISSING_REFRESH_TOKEN)
		}
		userName, _ := stringField(body, "userName")
		return &models.AuthRequest{
			GrantType:    grantType,
			RefreshToken: &models.RefreshTokenRequest{RefreshToken: refreshToken, UserName: userName},
		}, nil

	case constants.GRANT_TYPE_SIGN_OUT:
		accessToken, ok := stringField(body, "accessToken")
		if !ok {
			return nil, api.NewFailure(api.ValidationFailed, constants.MSG_MISSING_ACCESS_TOKEN)
		}
		return &models.AuthRequest{
			GrantType: grantType,
			SignOut:   &models.SignOutRequest{AccessToken: accessToken},
		}, nil

	default:
		return nil, api.NewFailure(api.ValidationFailed, constants.MSG_INVALID_GRANT_TYPE)
	}
}

// stringField returns body[key] when it is a non-blank string
func stringField(body map[string]interface{}, key string) (string, bool) {
	value, ok := body[key].(string)
	if !ok || util.IsBlank(value) {
		return "", false
	}
	return value, true
}
