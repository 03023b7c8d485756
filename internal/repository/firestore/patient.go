package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/jwalitptl/patient-seeder/internal/model"
	"github.com/jwalitptl/patient-seeder/internal/repository"
)

type patientRepository struct {
	client     *firestore.Client
	collection string
}

func NewPatientRepository(client *firestore.Client, collection string) repository.PatientRepository {
	return &patientRepository{client: client, collection: collection}
}

func (r *patientRepository) Collection() string {
	return r.collection
}

func (r *patientRepository) NewBatch() repository.PatientBatch {
	return &patientBatch{
		batch: r.client.Batch(),
		coll:  r.client.Collection(r.collection),
	}
}

func (r *patientRepository) Close() error {
	return r.client.Close()
}

type patientBatch struct {
	batch  *firestore.WriteBatch
	coll   *firestore.CollectionRef
	staged int
}

func (b *patientBatch) Stage(patient *model.Patient) (string, error) {
	if patient == nil {
		return "", fmt.Errorf("patient is nil")
	}

	doc := patient.ForInsert()

	ref := b.coll.NewDoc()
	b.batch.Set(ref, &doc)
	b.staged++
	return ref.ID, nil
}

func (b *patientBatch) Commit(ctx context.Context) (int, error) {
	results, err := b.batch.Commit(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to commit patient batch of %d: %w", b.staged, err)
	}
	return len(results), nil
}
