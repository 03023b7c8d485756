package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const datastoreScope = "https://www.googleapis.com/auth/datastore"

// emulatorHostEnv is read by the client library itself; credentials must not
// be passed alongside it.
const emulatorHostEnv = "FIRESTORE_EMULATOR_HOST"

func NewClient(ctx context.Context, projectID string, credentialsJSON []byte) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	var opts []option.ClientOption
	if os.Getenv(emulatorHostEnv) == "" {
		creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, datastoreScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
