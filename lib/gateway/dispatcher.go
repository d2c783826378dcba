// Package gateway classifies inbound authentication requests, forwards them to the
// identity provider and normalizes every outcome into the response envelope.
//
// Request flow:
//  1. Reject the request with 500 if the user pool or client id is missing
//  2. Parse and validate the body into a models.AuthRequest (400 on failure)
//  3. Run the operation handler for the grant type (one provider call)
//  4. Map the payload or *api.Failure onto the envelope through lib/api
package gateway

import (
	"context"

	"authentication/lib/api"
	"authentication/lib/config"
	"authentication/lib/constants"
	"authentication/lib/data"
	"authentication/lib/models"
	"authentication/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// Dispatcher holds the dependencies shared by every request.
// None of its fields are modified after construction.
type Dispatcher struct {
	Repository  data.AuthRepository
	Credentials config.ProviderCredentials
	Logger      *logrus.Logger
}

// Dispatch handles one request body and always returns a well-formed JSON response
func (d *Dispatcher) Dispatch(ctx context.Context, rawBody string) events.APIGatewayProxyResponse {
	correlationID := util.CorrelationID(ctx)

	if err := d.Credentials.Validate(); err != nil {
		failure := api.WrapFailure(api.ConfigurationMissing, constants.MSG_CONFIGURATION_ERROR, err)
		d.logFailure(correlationID, "", failure)
		return api.FailureResponse(failure, d.Logger)
	}

	request, failure := ParseRequest(rawBody)
	if failure != nil {
		d.logFailure(correlationID, "", failure)
		return api.FailureResponse(failure, d.Logger)
	}

	payload, failure := d.route(ctx, request)
	if failure != nil {
		d.logFailure(correlationID, request.GrantType, failure)
		return api.FailureResponse(failure, d.Logger)
	}

	d.Logger.WithFields(logrus.Fields{
		"operation":      "Dispatch",
		"correlation_id": correlationID,
		"grant_type":     request.GrantType,
	}).Info("Request completed")

	return api.SuccessResponse(payload, d.Logger)
}

// route invokes the handler matching the request variant
func (d *Dispatcher) route(ctx context.Context, request *models.AuthRequest) (interface{}, *api.Failure) {
	switch {
	case request.Authentication != nil:
		return d.authenticate(ctx, request.Authentication)
	case request.RefreshToken != nil:
		return d.refresh(ctx, request.RefreshToken)
	case request.SignOut != nil:
		return d.signOut(ctx, request.SignOut)
	default:
		return nil, api.NewFailure(api.ValidationFailed, constants.MSG_INVALID_GRANT_TYPE)
	}
}

func (d *Dispatcher) logFailure(correlationID, grantType string, failure *api.Failure) {
	entry := d.Logger.WithFields(logrus.Fields{
		"operation":      "Dispatch",
		"correlation_id": correlationID,
		"grant_type":     grantType,
		"kind":           failure.Kind.String(),
		"status":         failure.StatusCode(),
	})
	if failure.Err != nil {
		entry = entry.WithError(failure.Err)
	}

	switch failure.Kind {
	case api.ConfigurationMissing, api.ProviderFailure:
		entry.Error(failure.Message)
	default:
		entry.Warn(failure.Message)
	}
}
