// Package credentials locates and loads the service account key used to
// authenticate against Firestore.
package credentials

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/jwalitptl/patient-seeder/pkg/errors"
)

const (
	// EnvVar overrides the credential path when set and non-empty.
	EnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	// DefaultFileName is looked up next to the executable.
	DefaultFileName = "serviceAccountKey.json"
)

// Env is a snapshot of the environment variables this package reads.
type Env struct {
	CredentialsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// EnvFromProcess captures Env from the current process environment.
func EnvFromProcess() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// ExecutableDir returns the directory holding the running binary, or "." if
// it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolvePath returns the override from env verbatim, else the default file
// inside baseDir.
func ResolvePath(env Env, baseDir string) string {
	if env.CredentialsPath != "" {
		return env.CredentialsPath
	}
	return filepath.Join(baseDir, DefaultFileName)
}

// Check reports ErrCredentialNotFound when nothing can be stat'ed at path.
func Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.CredentialNotFound(path, err)
	}
	return nil
}

// WriteRemediation prints the missing-credential diagnostic.
func WriteRemediation(w io.Writer, path string) {
	fmt.Fprintln(w, "ERROR: service account JSON not found.")
	fmt.Fprintf(w, "Tried path: %s\n", path)
	fmt.Fprintln(w, "Fixes:")
	fmt.Fprintf(w, "- Place your %s in the same folder as the seed-patients binary\n", DefaultFileName)
	fmt.Fprintf(w, "- OR set the environment variable %s to the absolute path of the JSON file\n", EnvVar)
	fmt.Fprintf(w, "Example (bash): export %s=\"/full/path/%s\"\n", EnvVar, DefaultFileName)
}

// ServiceAccount holds the fields of a Google service account key that the
// seeder relies on.
type ServiceAccount struct {
	Type         string `json:"type" validate:"required,eq=service_account"`
	ProjectID    string `json:"project_id" validate:"required"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key" validate:"required"`
	ClientEmail  string `json:"client_email" validate:"required,email"`
	TokenURI     string `json:"token_uri"`
}

// Credential is a loaded key file. Raw keeps the unparsed bytes for the
// client library.
type Credential struct {
	Path    string
	Account ServiceAccount
	Raw     []byte
}

func (c *Credential) ProjectID() string {
	return c.Account.ProjectID
}

var validate = validator.New()

// Load reads and validates the key file at path.
func Load(path string) (*Credential, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.CredentialInvalid(path, err)
	}

	var account ServiceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, errors.CredentialInvalid(path, err)
	}
	if err := validate.Struct(&account); err != nil {
		return nil, errors.CredentialInvalid(path, err)
	}

	return &Credential{
		Path:    path,
		Account: account,
		Raw:     raw,
	}, nil
}
