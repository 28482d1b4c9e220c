package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	web "tigerlee/internal/adapters/http"
	"tigerlee/internal/adapters/http/perf"
	"tigerlee/internal/adapters/storage"
	activityStore "tigerlee/internal/adapters/storage/activity"
	blockedDateStore "tigerlee/internal/adapters/storage/blockeddate"
	"tigerlee/internal/adapters/storage/kv"
	scheduleStore "tigerlee/internal/adapters/storage/schedulepdf"
	"tigerlee/internal/config"
)

// sqlitePragmas are applied on every pooled connection.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// app holds the opened storage shared by every command.
type app struct {
	cfg       config.Config
	db        *sql.DB
	collector *perf.Collector
	stores    *web.Stores
	closers   []func() error
}

// openApp opens the SQLite database, migrates it and builds the stores for
// the configured key-value backend. The activity log always lives in SQLite.
// POST: caller must call Close
func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	db, err := sql.Open("sqlite", cfg.DBPath+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	a := &app{cfg: cfg, db: db, closers: []func() error{db.Close}}
	if err := db.PingContext(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.InitDB(db); err != nil {
		a.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	a.collector = perf.NewCollector(cfg.PerfRingSize)
	timedDB := storage.NewTimedDB(db, a.collector, time.Duration(cfg.SlowQueryMs)*time.Millisecond)

	backend, err := a.openKV(ctx, timedDB)
	if err != nil {
		a.Close()
		return nil, err
	}
	store := kv.NewTimed(backend, cfg.StoreBackend, a.collector)
	a.stores = &web.Stores{
		BlockedDates: blockedDateStore.NewKVStore(store),
		Schedule:     scheduleStore.NewKVStore(store),
		Activity:     activityStore.NewSQLiteStore(timedDB),
	}
	return a, nil
}

func (a *app) openKV(ctx context.Context, db storage.SQLDB) (kv.Store, error) {
	switch a.cfg.StoreBackend {
	case config.BackendRedis:
		opts, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis_url: %w", err)
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return kv.NewRedisStore(client, a.cfg.RedisPrefix), nil
	case config.BackendMemory:
		slog.Warn("store_backend_memory", "detail", "blocked dates and schedule uploads are lost on restart")
		return kv.NewMemoryStore(), nil
	default:
		return kv.NewSQLiteStore(db), nil
	}
}

// Close releases every opened resource in reverse order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
