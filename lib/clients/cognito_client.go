package clients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// NewCognitoIdentityProviderClient creates a Cognito User Pools client for the given region.
// The client is safe for concurrent use and is meant to be built once per cold start.
func NewCognitoIdentityProviderClient(ctx context.Context, isLocal bool, region string) (*cognitoidentityprovider.Client, error) {
	cfg, err := loadConfig(ctx, isLocal, region)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cognitoidentityprovider.NewFromConfig(cfg), nil
}
