package repository

import (
	"context"

	"github.com/jwalitptl/patient-seeder/internal/model"
)

// PatientRepository writes patient documents into a single collection.
type PatientRepository interface {
	Collection() string
	NewBatch() PatientBatch
	Close() error
}

// PatientBatch stages inserts and commits them atomically. Stage returns the
// identifier allocated for the new document; nothing is written before Commit.
type PatientBatch interface {
	Stage(patient *model.Patient) (string, error)
	Commit(ctx context.Context) (int, error)
}
