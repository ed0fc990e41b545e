// utils/s3.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var statementClient *s3.Client
var statementBucket string
var statementBaseURL string

// InitStatementStore configures the S3-compatible client used for monthly
// ledger statement archives. Returns false when STATEMENT_BUCKET is unset;
// archiving is optional and the service runs without it.
func InitStatementStore() (bool, error) {
	statementBucket = os.Getenv("STATEMENT_BUCKET")
	if statementBucket == "" {
		return false, nil
	}

	endpoint := os.Getenv("STATEMENT_S3_ENDPOINT")
	region := os.Getenv("STATEMENT_S3_REGION")
	if region == "" {
		region = "auto"
	}
	accessKeyID := os.Getenv("STATEMENT_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("STATEMENT_ACCESS_KEY_SECRET")
	statementBaseURL = os.Getenv("STATEMENT_BASE_URL")
	if statementBaseURL == "" && endpoint != "" {
		statementBaseURL = fmt.Sprintf("%s/%s", endpoint, statementBucket)
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)))
	}
	if endpoint != "" {
		opts = append(opts, config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return false, fmt.Errorf("failed to load statement store config: %w", err)
	}

	statementClient = s3.NewFromConfig(cfg)
	return true, nil
}

// StatementStoreEnabled reports whether statement archiving is configured.
func StatementStoreEnabled() bool {
	return statementClient != nil
}

// UploadStatement puts one statement object and returns its public URL.
func UploadStatement(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if statementClient == nil {
		return "", fmt.Errorf("statement store not configured")
	}

	_, err := statementClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(statementBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload statement: %w", err)
	}

	return fmt.Sprintf("%s/%s", statementBaseURL, key), nil
}
