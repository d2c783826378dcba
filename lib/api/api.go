package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"authentication/lib/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// marshalFailureBody is returned when a payload cannot be serialized
const marshalFailureBody = `{"error":{"code":500,"message":"Internal server error"}}`

// responseHeaders returns a fresh copy of the fixed header set.
// Error responses also advertise Content-Type as an allowed request header.
func responseHeaders(withAllowHeaders bool) map[string]string {
	headers := map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "OPTIONS,POST,GET",
	}
	if withAllowHeaders {
		headers["Access-Control-Allow-Headers"] = "Content-Type"
	}
	return headers
}

// Build creates the API Gateway response for a status and a payload.
// A 200 serializes the payload as-is, any other status wraps it into the error envelope.
func Build(statusCode int, body interface{}, logger *logrus.Logger) events.APIGatewayProxyResponse {
	if statusCode == http.StatusOK {
		return SuccessResponse(body, logger)
	}

	message, ok := body.(string)
	if !ok {
		message = fmt.Sprint(body)
	}
	return ErrorResponse(statusCode, message, logger)
}

// SuccessResponse creates a 200 response with the payload serialized as JSON
func SuccessResponse(data interface{}, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "SuccessResponse",
			"error":     err.Error(),
		}).Error("Failed to marshal response data")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       marshalFailureBody,
			Headers:    responseHeaders(true),
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers:    responseHeaders(false),
	}
}

// ErrorResponse creates an error response with the {error:{code,message}} body
func ErrorResponse(statusCode int, message string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(models.ErrorEnvelope{
		Error: models.ErrorDetail{
			Code:    statusCode,
			Message: message,
		},
	})
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "ErrorResponse",
			"error":     err.Error(),
		}).Error("Failed to marshal error response")
		statusCode = http.StatusInternalServerError
		body = []byte(marshalFailureBody)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    responseHeaders(true),
	}
}

// FailureResponse creates the error response for a classified failure
func FailureResponse(failure *Failure, logger *logrus.Logger) events.APIGatewayProxyResponse {
	return ErrorResponse(failure.StatusCode(), failure.Message, logger)
}

// PreflightResponse answers a CORS preflight request with an empty body
func PreflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    responseHeaders(true),
	}
}
