package dialogflow

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	dfv2 "google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/option"
)

// loadCredentials turns a service-account key file into a client option.
var loadCredentials = func(ctx context.Context, path string) (option.ClientOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, dfv2.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}

	return option.WithCredentials(creds), nil
}
