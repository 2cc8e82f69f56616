package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dododo1295/keepnotes/repository"
	"github.com/dododo1295/keepnotes/usecase"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	DefaultRetentionDays = 7
	DefaultSweepSchedule = "0 0 * * *"
	DefaultSweepTimeout  = time.Minute
)

type SweeperOptions struct {
	RetentionDays int
	// Schedule is a standard five field cron expression.
	Schedule string
	Timeout  time.Duration
	Location *time.Location
	Clock    utils.Clock
}

// RetentionSweeper hard-deletes notes that have sat in the trash longer than
// the retention window. It is the only path that removes notes for good.
type RetentionSweeper struct {
	notes     repository.NoteStore
	retention time.Duration
	timeout   time.Duration
	clock     utils.Clock
	log       zerolog.Logger
	cron      *cron.Cron
}

func NewRetentionSweeper(notes repository.NoteStore, opts SweeperOptions, log zerolog.Logger) (*RetentionSweeper, error) {
	if opts.RetentionDays == 0 {
		opts.RetentionDays = DefaultRetentionDays
	}
	if opts.RetentionDays < 1 {
		return nil, fmt.Errorf("retention days must be at least 1, got %d", opts.RetentionDays)
	}
	if opts.Schedule == "" {
		opts.Schedule = DefaultSweepSchedule
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSweepTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = utils.RealTime{}
	}

	log = log.With().Str("component", "retention_sweeper").Logger()
	s := &RetentionSweeper{
		notes:     notes,
		retention: time.Duration(opts.RetentionDays) * 24 * time.Hour,
		timeout:   opts.Timeout,
		clock:     opts.Clock,
		log:       log,
	}

	cronLog := cronLogger{log: log}
	s.cron = cron.New(
		cron.WithLocation(opts.Location),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := s.cron.AddFunc(opts.Schedule, s.run); err != nil {
		return nil, errors.Wrapf(err, "invalid sweep schedule %q", opts.Schedule)
	}
	return s, nil
}

// Start launches the scheduler in its own goroutine.
func (s *RetentionSweeper) Start() {
	s.cron.Start()
	s.log.Info().Dur("retention", s.retention).Msg("Retention sweeper started")
}

// Stop halts scheduling and waits for a running sweep to finish or ctx to expire.
func (s *RetentionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Retention sweeper stopped before the running sweep finished")
	}
}

func (s *RetentionSweeper) Cutoff() time.Time {
	return s.clock.Now().Add(-s.retention)
}

// Sweep runs one purge cycle. The cutoff predicate is evaluated by the store,
// so a note restored before the delete executes is left alone.
func (s *RetentionSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.Cutoff()
	purged, err := s.notes.DeleteMany(ctx, usecase.PurgeFilter(cutoff))
	if err != nil {
		return 0, errors.Wrap(err, "retention sweep failed")
	}
	return purged, nil
}

func (s *RetentionSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	purged, err := s.Sweep(ctx)
	utils.TrackSweep(purged, err)
	if err != nil {
		s.log.Error().Stack().Err(err).Msg("Retention sweep failed")
		return
	}
	s.log.Info().
		Int64("purged", purged).
		Dur("took", time.Since(start)).
		Msg("Retention sweep completed")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
