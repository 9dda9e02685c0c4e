package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// discordSecret mirrors the JSON document stored under the Discord secret
// ARN. Field names match the document, not Go conventions.
type discordSecret struct {
	Token     string `json:"token"`
	AppID     string `json:"appId"`
	PublicKey string `json:"publicKey"`
}

// googleSecret mirrors the JSON document stored under the Google secret ARN.
type googleSecret struct {
	APIKey string `json:"GOOGLE_MAPS_API_KEY"`
}

// secretsAPI is the slice of the Secrets Manager client the overlay needs.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// loadSecrets builds a Secrets Manager client and applies the configured
// secret documents. Explicit access keys take precedence over the default
// credential chain so local runs can point at a sandbox account.
func (c *Config) loadSecrets(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, SecretsFetchTimeout)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWSAccessKeyID, c.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	return c.applySecrets(ctx, secretsmanager.NewFromConfig(awsCfg))
}

// applySecrets fetches each configured secret and fills credential fields
// the environment left empty. Environment values always win so a deployment
// can override a single credential without touching the secret.
func (c *Config) applySecrets(ctx context.Context, client secretsAPI) error {
	if c.DiscordSecretARN != "" {
		raw, err := fetchSecret(ctx, client, c.DiscordSecretARN)
		if err != nil {
			return fmt.Errorf("discord secret: %w", err)
		}

		var secret discordSecret
		if err := json.Unmarshal(raw, &secret); err != nil {
			return fmt.Errorf("discord secret: decode: %w", err)
		}

		if c.DiscordBotToken == "" {
			c.DiscordBotToken = secret.Token
		}
		if c.DiscordAppID == "" {
			c.DiscordAppID = secret.AppID
		}
		if c.DiscordPublicKey == "" {
			c.DiscordPublicKey = secret.PublicKey
		}
	}

	if c.GoogleSecretARN != "" {
		raw, err := fetchSecret(ctx, client, c.GoogleSecretARN)
		if err != nil {
			return fmt.Errorf("google secret: %w", err)
		}

		var secret googleSecret
		if err := json.Unmarshal(raw, &secret); err != nil {
			return fmt.Errorf("google secret: decode: %w", err)
		}

		if c.GoogleMapsAPIKey == "" {
			c.GoogleMapsAPIKey = secret.APIKey
		}
	}

	return nil
}

// fetchSecret retrieves one secret value, preferring the string form over
// the binary form. Service error codes are surfaced so a misconfigured ARN
// is recognizable from the startup log alone.
func fetchSecret(ctx context.Context, client secretsAPI, arn string) ([]byte, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(arn),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("get %q: %s: %w", arn, apiErr.ErrorCode(), err)
		}
		return nil, fmt.Errorf("get %q: %w", arn, err)
	}

	if out.SecretString != nil {
		return []byte(*out.SecretString), nil
	}
	if len(out.SecretBinary) > 0 {
		return out.SecretBinary, nil
	}
	return nil, fmt.Errorf("get %q: secret value is empty", arn)
}
