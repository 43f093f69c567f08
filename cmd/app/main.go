package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gevornos/Life-is-RPG/internal/activity"
	"github.com/gevornos/Life-is-RPG/internal/authority"
	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/config"
	"github.com/gevornos/Life-is-RPG/internal/database"
	"github.com/gevornos/Life-is-RPG/internal/database/postgres"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/handler"
	"github.com/gevornos/Life-is-RPG/internal/monster"
	"github.com/gevornos/Life-is-RPG/internal/repository"
	"github.com/gevornos/Life-is-RPG/internal/reward"
	"github.com/gevornos/Life-is-RPG/internal/rollover"
	"github.com/gevornos/Life-is-RPG/internal/scheduler"
	"github.com/gevornos/Life-is-RPG/internal/server"
	"github.com/gevornos/Life-is-RPG/internal/storage"
	"github.com/gevornos/Life-is-RPG/internal/worker"
)

// Database pool tuning.
const (
	dbMaxConns    = 10
	dbMaxIdleTime = 30 * time.Minute
	dbMaxLifetime = time.Hour
)

const shutdownTimeout = 10 * time.Second

// repos bundles the repository set so both storage backends wire
// identically from here on.
type repos struct {
	characters repository.Character
	activities repository.Activity
	monsters   repository.Monster
	markers    repository.ResetMarker
	sessions   repository.Sessions
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	rewardCfg, err := reward.Load(cfg.RewardsConfigPath)
	if err != nil {
		log.Fatalf("Failed to load reward config: %v", err)
	}
	table := reward.NewTable(rewardCfg)

	monsterCfg, err := monster.Load(cfg.MonstersConfigPath)
	if err != nil {
		log.Fatalf("Failed to load monster config: %v", err)
	}

	var (
		dbPool database.Pool
		rep    repos
	)
	switch cfg.StorageBackend {
	case "file":
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open data directory: %v", err)
		}
		store := storage.NewStore(kv)
		if cfg.LocalUserID == "" || cfg.LocalToken == "" {
			log.Fatal("File storage requires LOCAL_USER_ID and LOCAL_TOKEN")
		}
		rep = repos{
			characters: store,
			activities: store,
			monsters:   store,
			markers:    store,
			sessions:   staticSessions{token: cfg.LocalToken, userID: cfg.LocalUserID},
		}
	default:
		pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		dbPool = pool
		rep = repos{
			characters: postgres.NewCharacterRepository(pool),
			activities: postgres.NewActivityRepository(pool),
			monsters:   postgres.NewMonsterRepository(pool),
			markers:    postgres.NewMarkerRepository(pool),
			sessions:   postgres.NewSessionRepository(pool),
		}
	}

	charSvc := character.NewService(rep.characters, character.NewRules(table))
	authoritySvc := authority.NewService(rep.characters, rep.activities, table)
	monsterSvc := monster.NewService(rep.monsters, charSvc, monsterCfg)
	reconciler := rollover.NewReconciler(rep.activities, rep.markers, charSvc, table)
	activityOpts := []activity.Option{
		activity.WithDayCloser(reconciler),
		activity.WithMonsterTarget(monsterSvc),
	}
	if cfg.StorageBackend == "file" && cfg.AuthorityURL != "" {
		client := authority.NewClient(cfg.AuthorityURL, cfg.LocalToken, cfg.AuthorityTimeout)
		activityOpts = append(activityOpts, activity.WithAuthority(client))
	}
	activitySvc := activity.NewService(rep.activities, charSvc, table, activityOpts...)

	// Nightly rollover sweep: marker-gated per user, so an hourly cadence
	// just bounds how late after midnight the penalties land.
	pool := worker.NewPool(2, 16)
	pool.Start()
	defer pool.Stop()

	sweep := worker.NewRolloverSweepJob(rep.characters, reconciler)
	sched := scheduler.New(pool)
	sched.Schedule(time.Hour, sweep)
	defer sched.Stop()

	// Close out any stale day immediately on boot.
	pool.Enqueue(sweep)

	srv := server.NewServer(cfg.Port, nil, dbPool, server.Services{
		Sessions:  rep.sessions,
		Character: charSvc,
		Activity:  activitySvc,
		Authority: authoritySvc,
		Monster:   monsterSvc,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Default().Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Default().Error("Graceful shutdown failed", "error", err)
	}
}

// staticSessions serves the single-user file mode: exactly one token maps
// to exactly one user.
type staticSessions struct {
	token  string
	userID string
}

func (s staticSessions) UserIDForToken(_ context.Context, token string) (string, error) {
	if token != s.token {
		return "", domain.ErrSessionInvalid
	}
	return s.userID, nil
}
