// Package main implements the authentication gateway Lambda behind API Gateway (POST /auth).
//
// The function accepts one of three grant types and forwards it to the Cognito user pool:
//   - authentication: AdminInitiateAuth with ADMIN_NO_SRP_AUTH (userName, password)
//   - refresh_token:  AdminInitiateAuth with REFRESH_TOKEN_AUTH (refreshToken)
//   - sign_out:       GlobalSignOut (accessToken)
//
// Every outcome, including provider failures and configuration faults, is answered with
// the same JSON envelope and CORS header set. See lib/gateway for the request pipeline.
//
// Configuration (read once during cold start):
//   - AWS_REGION, USER_POOL_ID, COGNITO_CLIENT_ID, COGNITO_CLIENT_SECRET (optional)
//   - SSM_PARAMETER_PATH: when set, missing values are read from Parameter Store
//   - LOG_LEVEL, IS_LOCAL
//
// A missing user pool or client id does not stop the function from starting; each request
// gets a 500 instead so the error channel stays available.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"authentication/lib/api"
	"authentication/lib/clients"
	"authentication/lib/config"
	"authentication/lib/constants"
	"authentication/lib/data"
	"authentication/lib/gateway"
	"authentication/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Global variables for Lambda cold start optimization
var (
	logger      *logrus.Logger             // Structured logger
	isLocal     bool                       // Development/local execution flag
	credentials config.ProviderCredentials // Cognito pool/client, immutable after init
	dispatcher  *gateway.Dispatcher        // Request pipeline shared by every invocation
)

func LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := requestCorrelationID(ctx)
	ctx = util.WithCorrelationID(ctx, correlationID)

	logger.WithFields(logrus.Fields{
		"operation":      "LambdaHandler",
		"correlation_id": correlationID,
		"method":         request.HTTPMethod,
		"path":           request.Path,
		"source_ip":      request.RequestContext.Identity.SourceIP,
	}).Info("Authentication request received")

	// CORS preflight never reaches the dispatcher
	if request.HTTPMethod == http.MethodOptions {
		return api.PreflightResponse(), nil
	}

	body, err := decodeBody(request)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation":      "LambdaHandler",
			"correlation_id": correlationID,
			"error":          err.Error(),
		}).Warn("Failed to decode base64 request body")
		return api.ErrorResponse(http.StatusBadRequest, constants.MSG_MALFORMED_BODY, logger), nil
	}

	return dispatcher.Dispatch(ctx, body), nil
}

// requestCorrelationID prefers the Lambda request id so log lines match CloudWatch's
func requestCorrelationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}

// decodeBody returns the request body, decoding it when API Gateway delivered it base64 encoded
func decodeBody(request events.APIGatewayProxyRequest) (string, error) {
	if !request.IsBase64Encoded {
		return request.Body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(request.Body)
	if err != nil {
		return "", fmt.Errorf("invalid base64 body: %w", err)
	}
	return string(decoded), nil
}

func main() {
	lambda.Start(LambdaHandler)
}

func init() {
	ctx := context.Background()

	isLocal = parseIsLocal()

	// Local runs read their settings from a .env file
	if isLocal {
		_ = godotenv.Load()
	}

	logger = setupLogger(isLocal)

	credentials = loadCredentials(ctx)

	cognitoClient, err := clients.NewCognitoIdentityProviderClient(ctx, isLocal, credentials.Region)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error creating Cognito client")
	}

	dispatcher = &gateway.Dispatcher{
		Repository: &data.CognitoDao{
			Cognito:      cognitoClient,
			UserPoolID:   credentials.UserPoolID,
			ClientID:     credentials.ClientID,
			ClientSecret: credentials.ClientSecret,
			Logger:       logger,
		},
		Credentials: credentials,
		Logger:      logger,
	}

	logger.WithFields(logrus.Fields{
		"operation":  "init",
		"region":     credentials.Region,
		"endpoint":   util.ConditionalString(isLocal, constants.LOCALSTACK_ENDPOINT, "aws"),
		"configured": credentials.Complete(),
	}).Info("Authentication Gateway Lambda initialization completed")
}

func parseIsLocal() bool {
	isLocal, _ := strconv.ParseBool(os.Getenv(constants.ENV_IS_LOCAL))
	return isLocal
}

func setupLogger(isLocal bool) *logrus.Logger {
	logger := logrus.New()
	util.SetLogLevel(logger, os.Getenv(constants.ENV_LOG_LEVEL))
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: isLocal})
	return logger
}

// loadCredentials reads the Cognito identifiers from the environment and, when
// SSM_PARAMETER_PATH is set, fills whatever is missing from Parameter Store.
// Failures are logged and left for Dispatch to report as 500s.
func loadCredentials(ctx context.Context) config.ProviderCredentials {
	creds := config.FromEnvironment(os.Getenv)

	path := os.Getenv(constants.ENV_SSM_PARAMETER_PATH)
	if !creds.Complete() && path != "" {
		params, err := fetchParameters(ctx, creds.Region, path)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"operation": "loadCredentials",
				"path":      path,
				"error":     err.Error(),
			}).Error("Error while getting SSM params from parameter store")
		} else {
			creds = creds.WithParameters(params)
		}
	}

	if err := creds.Validate(); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "loadCredentials",
			"error":     err.Error(),
		}).Error("Cognito configuration is incomplete, requests will be answered with 500")
	}

	return creds
}

func fetchParameters(ctx context.Context, region, path string) (map[string]string, error) {
	ssmClient, err := clients.NewSSMClient(ctx, isLocal, region)
	if err != nil {
		return nil, fmt.Errorf("error creating SSM client: %w", err)
	}

	ssmRepository := &data.SSMDao{
		SSM:    ssmClient,
		Path:   path,
		Logger: logger,
	}
	return ssmRepository.GetParameters(ctx)
}
