package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-seeder/internal/model"
	"github.com/jwalitptl/patient-seeder/internal/repository"
	"github.com/jwalitptl/patient-seeder/pkg/errors"
	"github.com/jwalitptl/patient-seeder/pkg/logger"
	"github.com/jwalitptl/patient-seeder/pkg/messaging"
	"github.com/jwalitptl/patient-seeder/pkg/metrics"
)

// MaxBatchSize is the most writes a single Firestore batch accepts.
const MaxBatchSize = 500

const SeededEventType = "patients.seeded"

type SeedService interface {
	Seed(ctx context.Context, patients []model.Patient) (*Result, error)
}

// Result describes one committed seed run.
type Result struct {
	RunID       uuid.UUID
	Collection  string
	DocumentIDs []string
	Duration    time.Duration
}

// SeededEvent is published after a successful commit.
type SeededEvent struct {
	RunID       string    `json:"run_id"`
	Collection  string    `json:"collection"`
	Count       int       `json:"count"`
	DocumentIDs []string  `json:"document_ids"`
	SeededAt    time.Time `json:"seeded_at"`
}

type Service struct {
	repo      repository.PatientRepository
	metrics   *metrics.Metrics
	logger    *logger.Logger
	publisher messaging.Publisher
	channel   string
}

func NewService(repo repository.PatientRepository, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		logger:  log,
	}
}

// WithPublisher announces committed runs on channel.
func (s *Service) WithPublisher(p messaging.Publisher, channel string) *Service {
	s.publisher = p
	s.channel = channel
	return s
}

// Seed writes patients in one atomic batch. It neither retries nor checks for
// existing documents; every call adds len(patients) new documents.
func (s *Service) Seed(ctx context.Context, patients []model.Patient) (*Result, error) {
	if len(patients) == 0 {
		return nil, errors.BadRequest("no patients to seed", nil)
	}
	if len(patients) > MaxBatchSize {
		return nil, errors.BadRequest(fmt.Sprintf("%d patients exceed the batch limit of %d", len(patients), MaxBatchSize), nil)
	}

	runID := uuid.New()
	log := s.logger.WithFields(map[string]interface{}{
		"run_id":     runID.String(),
		"collection": s.repo.Collection(),
	})

	batch := s.repo.NewBatch()
	ids := make([]string, 0, len(patients))
	for i := range patients {
		id, err := batch.Stage(&patients[i])
		if err != nil {
			return nil, errors.Internal(fmt.Errorf("failed to stage patient %d: %w", i, err))
		}
		s.metrics.DocumentsStaged.Inc()
		log.Debug("Staged patient", "document_id", id, "name", patients[i].Name)
		ids = append(ids, id)
	}

	start := time.Now()
	written, err := batch.Commit(ctx)
	elapsed := time.Since(start)
	s.metrics.BatchCommitDuration.Observe(elapsed.Seconds())
	if err != nil {
		s.metrics.BatchCommits.WithLabelValues("failure").Inc()
		return nil, errors.SeedFailed(err)
	}
	s.metrics.BatchCommits.WithLabelValues("success").Inc()
	s.metrics.DocumentsWritten.Add(float64(written))

	log.Info("Committed patient batch", "documents", written, "duration", elapsed.String())

	result := &Result{
		RunID:       runID,
		Collection:  s.repo.Collection(),
		DocumentIDs: ids,
		Duration:    elapsed,
	}
	s.announce(ctx, log, result)
	return result, nil
}

// announce is best-effort: the batch is already committed.
func (s *Service) announce(ctx context.Context, log *logger.Logger, result *Result) {
	if s.publisher == nil {
		return
	}
	evt := SeededEvent{
		RunID:       result.RunID.String(),
		Collection:  result.Collection,
		Count:       len(result.DocumentIDs),
		DocumentIDs: result.DocumentIDs,
		SeededAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.channel, messaging.NewMessage(SeededEventType, evt)); err != nil {
		log.Warn(err, "Failed to publish seeded event", "channel", s.channel)
	}
}
