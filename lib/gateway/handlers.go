package gateway

import (
	"context"

	"authentication/lib/api"
	"authentication/lib/constants"
	"authentication/lib/data"
	"authentication/lib/models"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

// authenticate handles grantType "authentication"
func (d *Dispatcher) authenticate(ctx context.Context, request *models.AuthenticationRequest) (interface{}, *api.Failure) {
	outcome, err := d.Repository.Authenticate(ctx, request.UserName, request.Password)
	if err != nil {
		return nil, providerFailure(err)
	}

	if outcome.ChallengeName == string(types.ChallengeNameTypeNewPasswordRequired) {
		return nil, api.NewFailure(api.ChallengeRequired, constants.MSG_NEW_PASSWORD_REQUIRED)
	}

	if outcome.HasChallenge() {
		// Other challenges (MFA, custom auth) are not supported; the caller gets empty tokens
		d.Logger.WithFields(logrus.Fields{
			"operation": "authenticate",
			"user_name": request.UserName,
			"challenge": outcome.ChallengeName,
		}).Warn("Unsupported challenge returned by identity provider")
	}

	return models.AuthenticationResponse{
		AccessToken:  outcome.AccessToken,
		RefreshToken: outcome.RefreshToken,
		ExpiresIn:    outcome.ExpiresIn,
	}, nil
}

// refresh handles grantType "refresh_token"
func (d *Dispatcher) refresh(ctx context.Context, request *models.RefreshTokenRequest) (interface{}, *api.Failure) {
	outcome, err := d.Repository.RefreshToken(ctx, request.RefreshToken, request.UserName)
	if err != nil {
		return nil, providerFailure(err)
	}

	return models.RefreshTokenResponse{
		AccessToken: outcome.AccessToken,
		ExpiresIn:   outcome.ExpiresIn,
	}, nil
}

// signOut handles grantType "sign_out"
func (d *Dispatcher) signOut(ctx context.Context, request *models.SignOutRequest) (interface{}, *api.Failure) {
	if err := d.Repository.SignOut(ctx, request.AccessToken); err != nil {
		return nil, providerFailure(err)
	}

	return models.MessageResponse{Message: constants.MSG_SIGN_OUT_SUCCESSFUL}, nil
}

// providerFailure collapses every provider error into a 502 carrying the provider's message
func providerFailure(err error) *api.Failure {
	message := data.ProviderMessage(err)
	if message == "" {
		message = constants.MSG_UNKNOWN_PROVIDER_ERROR
	}
	return api.WrapFailure(api.ProviderFailure, message, err)
}
