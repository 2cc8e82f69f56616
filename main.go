package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dododo1295/keepnotes/config"
	"github.com/dododo1295/keepnotes/handler"
	"github.com/dododo1295/keepnotes/logger"
	"github.com/dododo1295/keepnotes/repository"
	"github.com/dododo1295/keepnotes/services"
	"github.com/dododo1295/keepnotes/usecase"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type stores struct {
	notes     repository.NoteStore
	reminders repository.ReminderStore
	health    map[string]handler.Pinger
	close     func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("Using in-memory stores, data will not survive a restart")
		notes := repository.NewMemoryNotesRepo()
		return &stores{
			notes:     notes,
			reminders: repository.NewMemoryRemindersRepo(),
			health:    map[string]handler.Pinger{"store": notes},
			close:     func(context.Context) error { return nil },
		}, nil
	}

	client, err := utils.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.DatabaseName)
	if err := repository.SetupIndexes(ctx, db, cfg.Mongo.NotesCollection, cfg.Mongo.RemindersCollection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to create indexes")
	}
	log.Info().Str("database", cfg.Mongo.DatabaseName).Msg("Connected to MongoDB")

	notes := repository.GetNotesRepo(db, cfg.Mongo.NotesCollection, cfg.StoreTimeout)
	return &stores{
		notes:     notes,
		reminders: repository.GetRemindersRepo(db, cfg.Mongo.RemindersCollection, cfg.StoreTimeout),
		health:    map[string]handler.Pinger{"mongo": notes},
		close:     client.Disconnect,
	}, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	gin.SetMode(cfg.GinMode)

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	var sessions services.SessionChecker = services.AnonymousSessions{}
	if cfg.RedisURL != "" {
		cache, err := services.NewSessionCache(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer cache.Close()
		sessions = cache
		st.health["redis"] = cache
	} else if cfg.RequireSession {
		return errors.New("REQUIRE_SESSION needs REDIS_URL")
	}

	clock := utils.RealTime{}
	notesService := usecase.NewNotesService(st.notes, clock)
	remindersService := usecase.NewRemindersService(st.reminders, clock, utils.NewValidator())

	sweeper, err := services.NewRetentionSweeper(st.notes, services.SweeperOptions{
		RetentionDays: cfg.RetentionDays,
		Schedule:      cfg.SweepCron,
		Timeout:       cfg.SweepTimeout,
		Clock:         clock,
	}, log)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
		defer cancel()
		sweeper.Stop(stopCtx)
	}()

	router := handler.NewRouter(handler.RouterDeps{
		Notes:          notesService,
		Reminders:      remindersService,
		Sessions:       sessions,
		Health:         st.health,
		Log:            log,
		CORSOrigin:     cfg.CORSOrigin,
		CookieName:     cfg.SessionCookie,
		RequireSession: cfg.RequireSession,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(ctx, srv, log)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("keepnotes", "info")
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.New("keepnotes", cfg.LogLevel).With().Str("env", cfg.Environment).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Stack().Err(err).Msg("Server exited with error")
		stop()
		os.Exit(1)
	}
}
