package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

type fakeSecretsClient struct {
	secrets map[string]string
	binary  map[string][]byte
	err     error
	calls   []string
}

func (f *fakeSecretsClient) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	arn := aws.ToString(params.SecretId)
	f.calls = append(f.calls, arn)

	if f.err != nil {
		return nil, f.err
	}
	if value, ok := f.secrets[arn]; ok {
		return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
	}
	if value, ok := f.binary[arn]; ok {
		return &secretsmanager.GetSecretValueOutput{SecretBinary: value}, nil
	}
	return &secretsmanager.GetSecretValueOutput{}, nil
}

func TestApplySecrets_FillsEmptyFields(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{secrets: map[string]string{
		"arn:discord": `{"token":"secret-token","appId":"42","publicKey":"` + validPublicKey + `"}`,
		"arn:google":  `{"GOOGLE_MAPS_API_KEY":"secret-maps-key"}`,
	}}

	cfg := &Config{
		DiscordSecretARN: "arn:discord",
		GoogleSecretARN:  "arn:google",
	}
	if err := cfg.applySecrets(context.Background(), client); err != nil {
		t.Fatalf("applySecrets() error = %v", err)
	}

	if cfg.DiscordBotToken != "secret-token" {
		t.Errorf("DiscordBotToken = %q, want %q", cfg.DiscordBotToken, "secret-token")
	}
	if cfg.DiscordAppID != "42" {
		t.Errorf("DiscordAppID = %q, want %q", cfg.DiscordAppID, "42")
	}
	if cfg.DiscordPublicKey != validPublicKey {
		t.Errorf("DiscordPublicKey = %q, want configured key", cfg.DiscordPublicKey)
	}
	if cfg.GoogleMapsAPIKey != "secret-maps-key" {
		t.Errorf("GoogleMapsAPIKey = %q, want %q", cfg.GoogleMapsAPIKey, "secret-maps-key")
	}
	if len(client.calls) != 2 {
		t.Errorf("calls = %v, want both ARNs fetched", client.calls)
	}
}

func TestApplySecrets_EnvironmentWins(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{secrets: map[string]string{
		"arn:discord": `{"token":"secret-token","appId":"42","publicKey":"ffff"}`,
	}}

	cfg := &Config{
		DiscordSecretARN: "arn:discord",
		DiscordBotToken:  "env-token",
		DiscordPublicKey: validPublicKey,
	}
	if err := cfg.applySecrets(context.Background(), client); err != nil {
		t.Fatalf("applySecrets() error = %v", err)
	}

	if cfg.DiscordBotToken != "env-token" {
		t.Errorf("DiscordBotToken = %q, want env value kept", cfg.DiscordBotToken)
	}
	if cfg.DiscordPublicKey != validPublicKey {
		t.Errorf("DiscordPublicKey = %q, want env value kept", cfg.DiscordPublicKey)
	}
	if cfg.DiscordAppID != "42" {
		t.Errorf("DiscordAppID = %q, want empty field filled from secret", cfg.DiscordAppID)
	}
}

func TestApplySecrets_NoARNs(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{}
	cfg := &Config{}
	if err := cfg.applySecrets(context.Background(), client); err != nil {
		t.Fatalf("applySecrets() error = %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("calls = %v, want none", client.calls)
	}
}

func TestApplySecrets_FetchErrorIncludesCode(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{
		err: &types.ResourceNotFoundException{Message: aws.String("no such secret")},
	}
	cfg := &Config{DiscordSecretARN: "arn:missing"}

	err := cfg.applySecrets(context.Background(), client)
	if err == nil {
		t.Fatal("applySecrets() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "ResourceNotFoundException") {
		t.Errorf("error = %q, want service error code included", err)
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		t.Error("original service error should remain unwrappable")
	}
}

func TestApplySecrets_BadJSON(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{secrets: map[string]string{
		"arn:google": "not json",
	}}
	cfg := &Config{GoogleSecretARN: "arn:google"}

	err := cfg.applySecrets(context.Background(), client)
	if err == nil {
		t.Fatal("applySecrets() error = nil, want decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error = %q, want decode failure", err)
	}
}

func TestFetchSecret_BinaryFallback(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{binary: map[string][]byte{
		"arn:bin": []byte(`{"token":"t"}`),
	}}

	raw, err := fetchSecret(context.Background(), client, "arn:bin")
	if err != nil {
		t.Fatalf("fetchSecret() error = %v", err)
	}
	if string(raw) != `{"token":"t"}` {
		t.Errorf("raw = %q, want binary payload", raw)
	}
}

func TestFetchSecret_EmptyValue(t *testing.T) {
	t.Parallel()

	client := &fakeSecretsClient{}
	if _, err := fetchSecret(context.Background(), client, "arn:empty"); err == nil {
		t.Fatal("fetchSecret() error = nil, want error for empty secret")
	}
}
