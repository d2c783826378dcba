package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/sirupsen/logrus"
)

type SSMRepository interface {
	// GetParameters returns every parameter under the configured path, keyed by its
	// name relative to that path (e.g. "/authentication/USER_POOL_ID" -> "USER_POOL_ID")
	GetParameters(ctx context.Context) (map[string]string, error)
}

type SSMClientInterface interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

type SSMDao struct {
	SSM    SSMClientInterface
	Path   string
	Logger *logrus.Logger
}

func (client *SSMDao) GetParameters(ctx context.Context) (map[string]string, error) {
	params := map[string]string{}
	prefix := strings.TrimSuffix(client.Path, "/") + "/"
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(client.Path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	for {
		output, err := client.SSM.GetParametersByPath(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get parameters under %s: %w", client.Path, err)
		}

		for _, param := range output.Parameters {
			name := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			params[name] = aws.ToString(param.Value)
		}

		// If there's no NextToken, we've got all parameters
		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	client.Logger.WithFields(logrus.Fields{
		"operation":    "GetParameters",
		"path":         client.Path,
		"params_count": len(params),
	}).Debug("Retrieved SSM parameters")

	return params, nil
}
