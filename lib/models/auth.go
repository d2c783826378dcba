package models

// AuthRequest is the parsed and validated body of a request to the gateway.
// Exactly one of the variant pointers is set, matching GrantType.
type AuthRequest struct {
	GrantType      string                 // One of the constants.GRANT_TYPE_* values
	Authentication *AuthenticationRequest // Set when GrantType is "authentication"
	RefreshToken   *RefreshTokenRequest   // Set when GrantType is "refresh_token"
	SignOut        *SignOutRequest        // Set when GrantType is "sign_out"
}

// AuthenticationRequest carries the credentials for a password grant
type AuthenticationRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries the refresh token to exchange.
// UserName is optional and only used to compute SECRET_HASH for app clients with a secret.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
	UserName     string `json:"userName,omitempty"`
}

// SignOutRequest carries the access token whose sessions are revoked
type SignOutRequest struct {
	AccessToken string `json:"accessToken"`
}

// AuthOutcome is what the identity provider answered to an AdminInitiateAuth call.
// When ChallengeName is set the token fields are empty and must not be returned to the caller.
type AuthOutcome struct {
	AccessToken   string
	RefreshToken  string
	ExpiresIn     int32
	ChallengeName string
}

// HasChallenge reports whether the provider asked for another step instead of issuing tokens
func (o *AuthOutcome) HasChallenge() bool {
	return o.ChallengeName != ""
}

// AuthenticationResponse is the success payload of the "authentication" grant.
// Every key is always present, with zero values when the provider omitted a field.
type AuthenticationResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
}

// RefreshTokenResponse is the success payload of the "refresh_token" grant.
// Cognito does not rotate the refresh token here, callers keep the one they sent.
type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int32  `json:"expiresIn"`
}

// MessageResponse is a plain acknowledgement payload
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorDetail is the inner object of the error envelope
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the body of every non-200 response
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}
