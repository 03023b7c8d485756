package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jwalitptl/patient-seeder/internal/config"
	"github.com/jwalitptl/patient-seeder/internal/credentials"
	"github.com/jwalitptl/patient-seeder/internal/model"
	"github.com/jwalitptl/patient-seeder/internal/repository"
	fsrepo "github.com/jwalitptl/patient-seeder/internal/repository/firestore"
	"github.com/jwalitptl/patient-seeder/internal/service/seed"
	"github.com/jwalitptl/patient-seeder/pkg/errors"
	"github.com/jwalitptl/patient-seeder/pkg/logger"
	"github.com/jwalitptl/patient-seeder/pkg/messaging"
	"github.com/jwalitptl/patient-seeder/pkg/messaging/redis"
	"github.com/jwalitptl/patient-seeder/pkg/metrics"
)

type repoOpener func(ctx context.Context, cfg *config.Config, cred *credentials.Credential) (repository.PatientRepository, error)

type eventsOpener func(ctx context.Context, cfg *config.Config, log *logger.Logger) (messaging.Publisher, error)

type runner struct {
	cfg        *config.Config
	env        credentials.Env
	baseDir    string
	stdout     io.Writer
	stderr     io.Writer
	logger     *logger.Logger
	patients   []model.Patient
	openRepo   repoOpener
	openEvents eventsOpener
}

// run returns 0 when the batch committed and 1 on any failure.
func (r *runner) run(ctx context.Context) int {
	path := credentials.ResolvePath(r.env, r.baseDir)
	if err := credentials.Check(path); err != nil {
		credentials.WriteRemediation(r.stderr, path)
		return errors.ExitCode(err)
	}

	m := metrics.New("patient")
	err := r.seed(ctx, path, m)
	r.pushMetrics(ctx, m)

	if err != nil {
		r.logger.Debug("Seed run failed", "credentials", path, "error", err.Error())
		fmt.Fprintf(r.stderr, "Seeding failed: %v\n", err)
		return errors.ExitCode(err)
	}

	fmt.Fprintln(r.stdout, "Seeded patients")
	return 0
}

func (r *runner) seed(ctx context.Context, path string, m *metrics.Metrics) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Seed.Timeout)
	defer cancel()

	cred, err := credentials.Load(path)
	if err != nil {
		return err
	}

	repo, err := r.openRepo(ctx, r.cfg, cred)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc := seed.NewService(repo, m, r.logger)
	if r.cfg.Events.RedisURL != "" && r.openEvents != nil {
		pub, err := r.openEvents(ctx, r.cfg, r.logger)
		if err != nil {
			r.logger.Warn(err, "Seeded event publishing disabled")
		} else {
			defer pub.Close()
			svc.WithPublisher(pub, r.cfg.Events.Channel)
		}
	}

	result, err := svc.Seed(ctx, r.patients)
	if err != nil {
		return err
	}
	r.logger.Info("Seed run complete",
		"run_id", result.RunID.String(),
		"collection", result.Collection,
		"documents", len(result.DocumentIDs),
		"duration", result.Duration.String(),
	)
	return nil
}

func (r *runner) pushMetrics(ctx context.Context, m *metrics.Metrics) {
	if r.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := m.Push(ctx, r.cfg.Metrics.PushgatewayURL, r.cfg.Metrics.Job); err != nil {
		r.logger.Warn(err, "Failed to push metrics", "gateway", r.cfg.Metrics.PushgatewayURL)
	}
}

func openFirestore(ctx context.Context, cfg *config.Config, cred *credentials.Credential) (repository.PatientRepository, error) {
	projectID := cfg.Firestore.ProjectID
	if projectID == "" {
		projectID = cred.ProjectID()
	}
	client, err := fsrepo.NewClient(ctx, projectID, cred.Raw)
	if err != nil {
		return nil, err
	}
	return fsrepo.NewPatientRepository(client, cfg.Firestore.Collection), nil
}

func openRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) (messaging.Publisher, error) {
	return redis.NewRedisPublisher(ctx, redis.DefaultConfig(cfg.Events.RedisURL), log)
}
