package config

import (
	"errors"
	"strings"

	"authentication/lib/constants"
	"authentication/lib/util"
)

var (
	ErrMissingUserPoolID = errors.New("user pool id is not configured")
	ErrMissingClientID   = errors.New("cognito client id is not configured")
)

// ProviderCredentials identifies the Cognito user pool and app client the gateway talks to.
// It is loaded once during cold start and never modified afterwards.
type ProviderCredentials struct {
	Region       string
	UserPoolID   string
	ClientID     string
	ClientSecret string // Optional, only set for app clients generated with a secret
}

// FromEnvironment reads the credentials through lookup (os.Getenv in production)
func FromEnvironment(lookup func(string) string) ProviderCredentials {
	return ProviderCredentials{
		Region:       util.FirstNonBlank(lookup(constants.ENV_AWS_REGION), constants.DEFAULT_REGION),
		UserPoolID:   strings.TrimSpace(lookup(constants.ENV_USER_POOL_ID)),
		ClientID:     strings.TrimSpace(lookup(constants.ENV_COGNITO_CLIENT_ID)),
		ClientSecret: lookup(constants.ENV_COGNITO_CLIENT_SECRET),
	}
}

// WithParameters returns a copy where blank values are filled from SSM parameters.
// Values already set from the environment take precedence.
func (c ProviderCredentials) WithParameters(params map[string]string) ProviderCredentials {
	c.UserPoolID = strings.TrimSpace(util.FirstNonBlank(c.UserPoolID, params[constants.SSM_USER_POOL_ID]))
	c.ClientID = strings.TrimSpace(util.FirstNonBlank(c.ClientID, params[constants.SSM_COGNITO_CLIENT_ID]))
	c.ClientSecret = util.FirstNonBlank(c.ClientSecret, params[constants.SSM_COGNITO_CLIENT_SECRET])
	return c
}

// Complete reports whether both required identifiers are present
func (c ProviderCredentials) Complete() bool {
	return c.Validate() == nil
}

// Validate returns every missing required identifier joined into one error
func (c ProviderCredentials) Validate() error {
	var errs []error
	if c.UserPoolID == "" {
		errs = append(errs, ErrMissingUserPoolID)
	}
	if c.ClientID == "" {
		errs = append(errs, ErrMissingClientID)
	}
	return errors.Join(errs...)
}
