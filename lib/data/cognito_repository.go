package data

import (
	"context"
	"errors"
	"fmt"

	"authentication/lib/auth"
	"authentication/lib/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
)

// AuthRepository defines the identity provider operations the gateway forwards to
type AuthRepository interface {
	// Authenticate runs the admin password flow for a user
	Authenticate(ctx context.Context, userName, password string) (*models.AuthOutcome, error)

	// RefreshToken exchanges a refresh token for a new access token.
	// userName is optional and only used for SECRET_HASH.
	RefreshToken(ctx context.Context, refreshToken, userName string) (*models.AuthOutcome, error)

	// SignOut revokes every session issued for the access token's user
	SignOut(ctx context.Context, accessToken string) error
}

// CognitoClientInterface is the subset of the Cognito client used by CognitoDao
type CognitoClientInterface interface {
	AdminInitiateAuth(ctx context.Context, params *cognitoidentityprovider.AdminInitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminInitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

// CognitoDao implements AuthRepository against a Cognito user pool
type CognitoDao struct {
	Cognito      CognitoClientInterface
	UserPoolID   string
	ClientID     string
	ClientSecret string // Optional, enables SECRET_HASH
	Logger       *logrus.Logger
}

// ProviderError is returned for any failed call to the identity provider
type ProviderError struct {
	Operation string
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("cognito %s failed: %v", e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderMessage extracts the message the identity provider attached to an error.
// Service errors carry their own message, anything else (network, cancellation) falls
// back to the text of the SDK error.
func ProviderMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return msg
		}
		return apiErr.ErrorCode()
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.Err != nil {
		return providerErr.Err.Error()
	}

	return err.Error()
}

// Authenticate runs ADMIN_NO_SRP_AUTH. A NEW_PASSWORD_REQUIRED answer is returned as an
// outcome with ChallengeName set and no tokens.
func (dao *CognitoDao) Authenticate(ctx context.Context, userName, password string) (*models.AuthOutcome, error) {
	authParams, err := auth.PasswordParameters(userName, password, dao.ClientID, dao.ClientSecret)
	if err != nil {
		return nil, err
	}

	output, err := dao.Cognito.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeAdminNoSrpAuth,
		ClientId:       aws.String(dao.ClientID),
		UserPoolId:     aws.String(dao.UserPoolID),
		AuthParameters: authParams,
	})
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"operation": "Authenticate",
			"user_name": userName,
			"error":     err.Error(),
		}).Error("Cognito AdminInitiateAuth failed")
		return nil, &ProviderError{Operation: "AdminInitiateAuth", Err: err}
	}

	outcome := toAuthOutcome(output)

	dao.Logger.WithFields(logrus.Fields{
		"operation": "Authenticate",
		"user_name": userName,
		"challenge": outcome.ChallengeName,
	}).Debug("Cognito AdminInitiateAuth completed")

	return outcome, nil
}

// RefreshToken runs REFRESH_TOKEN_AUTH. Cognito does not return a new refresh token
// for this flow, so the outcome's RefreshToken is always dropped.
func (dao *CognitoDao) RefreshToken(ctx context.Context, refreshToken, userName string) (*models.AuthOutcome, error) {
	authParams, err := auth.RefreshParameters(refreshToken, userName, dao.ClientID, dao.ClientSecret)
	if err != nil {
		return nil, err
	}

	output, err := dao.Cognito.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(dao.ClientID),
		UserPoolId:     aws.String(dao.UserPoolID),
		AuthParameters: authParams,
	})
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"operation": "RefreshToken",
			"error":     err.Error(),
		}).Error("Cognito AdminInitiateAuth refresh failed")
		return nil, &ProviderError{Operation: "AdminInitiateAuth", Err: err}
	}

	outcome := toAuthOutcome(output)
	outcome.RefreshToken = ""

	dao.Logger.WithField("operation", "RefreshToken").Debug("Cognito token refresh completed")

	return outcome, nil
}

// SignOut calls GlobalSignOut, which invalidates every token issued to the user
func (dao *CognitoDao) SignOut(ctx context.Context, accessToken string) error {
	_, err := dao.Cognito.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"operation": "SignOut",
			"error":     err.Error(),
		}).Error("Cognito GlobalSignOut failed")
		return &ProviderError{Operation: "GlobalSignOut", Err: err}
	}

	dao.Logger.WithField("operation", "SignOut").Debug("Cognito GlobalSignOut completed")
	return nil
}

// toAuthOutcome copies the token material out of the provider output, defaulting
// anything the provider omitted to the zero value
func toAuthOutcome(output *cognitoidentityprovider.AdminInitiateAuthOutput) *models.AuthOutcome {
	outcome := &models.AuthOutcome{}
	if output == nil {
		return outcome
	}

	outcome.ChallengeName = string(output.ChallengeName)
	if outcome.ChallengeName != "" {
		return outcome
	}

	if result := output.AuthenticationResult; result != nil {
		outcome.AccessToken = aws.ToString(result.AccessToken)
		outcome.RefreshToken = aws.ToString(result.RefreshToken)
		outcome.ExpiresIn = result.ExpiresIn
	}
	return outcome
}
