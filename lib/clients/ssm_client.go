package clients

import (
	"context"

	"authentication/lib/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// NewSSMClient creates an SSM Parameter Store client for the given region
func NewSSMClient(ctx context.Context, isLocal bool, region string) (*ssm.Client, error) {
	cfg, err := loadConfig(ctx, isLocal, region)
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(cfg), nil
}

// loadConfig loads the default AWS configuration, pointing at LocalStack when running locally
func loadConfig(ctx context.Context, isLocal bool, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if isLocal {
		cfg.BaseEndpoint = aws.String(constants.LOCALSTACK_ENDPOINT)
	}

	return cfg, nil
}
