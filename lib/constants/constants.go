package constants

// Grant types accepted in the "grantType" field of the request body
const (
	GRANT_TYPE_AUTHENTICATION = "authentication"
	GRANT_TYPE_REFRESH_TOKEN  = "refresh_token"
	GRANT_TYPE_SIGN_OUT       = "sign_out"
)

// Cognito AuthParameters keys
const (
	AUTH_PARAM_USERNAME      = "USERNAME"
	AUTH_PARAM_PASSWORD      = "PASSWORD"
	AUTH_PARAM_REFRESH_TOKEN = "REFRESH_TOKEN"
	AUTH_PARAM_SECRET_HASH   = "SECRET_HASH"
)

// Environment variables read during cold start
const (
	ENV_AWS_REGION            = "AWS_REGION"
	ENV_USER_POOL_ID          = "USER_POOL_ID"
	ENV_COGNITO_CLIENT_ID     = "COGNITO_CLIENT_ID"
	ENV_COGNITO_CLIENT_SECRET = "COGNITO_CLIENT_SECRET"
	ENV_SSM_PARAMETER_PATH    = "SSM_PARAMETER_PATH"
	ENV_LOG_LEVEL             = "LOG_LEVEL"
	ENV_IS_LOCAL              = "IS_LOCAL"
)

// SSM parameter names, relative to SSM_PARAMETER_PATH
const (
	SSM_USER_POOL_ID          = "USER_POOL_ID"
	SSM_COGNITO_CLIENT_ID     = "COGNITO_CLIENT_ID"
	SSM_COGNITO_CLIENT_SECRET = "COGNITO_CLIENT_SECRET"
)

const (
	DEFAULT_REGION      = "us-east-1"
	LOCALSTACK_ENDPOINT = "http://docker.for.mac.host.internal:4566"
)

// Messages returned in the error envelope
const (
	MSG_MISSING_BODY           = "Request body is missing"
	MSG_MALFORMED_BODY         = "Request body is not valid JSON"
	MSG_INVALID_GRANT_TYPE     = "Invalid grant type"
	MSG_MISSING_CREDENTIALS    = "Username or password were not found in body"
	MSG_MISSING_REFRESH_TOKEN  = "Refresh token not found in body"
	MSG_MISSING_ACCESS_TOKEN   = "Access token not found in body"
	MSG_NEW_PASSWORD_REQUIRED  = "New password is required"
	MSG_CONFIGURATION_ERROR    = "Internal configuration error"
	MSG_SIGN_OUT_SUCCESSFUL    = "Sign out successful"
	MSG_UNKNOWN_PROVIDER_ERROR = "Unknown error"
)
