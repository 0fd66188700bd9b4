package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"liquidgov/config"
	"liquidgov/core/genesis"
	"liquidgov/crypto"
	"liquidgov/observability/logging"
	telemetry "liquidgov/observability/otel"
	"liquidgov/storage"
)

// Open assembles a runtime from configuration: the store under DataDir (or
// memory when empty), the commitment hasher, telemetry exporters and, for a
// fresh store, genesis from GenesisFile or the configured default depth.
// When logger is nil a JSON logger is built from cfg.Logging, writing to the
// rotated log file if one is configured and to stderr otherwise.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("core: config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hasher, err := crypto.HasherByName(cfg.Governance.Hasher)
	if err != nil {
		return nil, err
	}

	closeLog := func() error { return nil }
	if logger == nil {
		logger, closeLog = newLogger(cfg.Logging)
	}

	db, err := openDatabase(cfg.DataDir)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.Logging.Service,
		Environment: cfg.Logging.Environment,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		Headers:     telemetry.ParseHeaders(cfg.Telemetry.Headers),
		Traces:      cfg.Telemetry.Traces,
		Metrics:     cfg.Telemetry.Metrics,
	})
	if err != nil {
		db.Close()
		_ = closeLog()
		return nil, err
	}

	rt := NewRuntime(db)
	rt.SetLogger(logger)
	rt.SetHasher(hasher)
	rt.shutdown = shutdown
	rt.closeLog = closeLog

	if err := rt.bootstrap(ctx, cfg); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	logger.Info("governance runtime ready",
		slog.String("data_dir", cfg.DataDir),
		slog.String("hasher", hasher.Name()))
	return rt, nil
}

// newLogger tags every record with a fresh run id so log lines from separate
// processes sharing a file can be told apart.
func newLogger(cfg config.Logging) (*slog.Logger, func() error) {
	out, closeLog := logging.Output(logging.FileOptions{
		Path:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}, os.Stderr)
	logger := logging.SetupWriter(out, cfg.Service, cfg.Environment, cfg.Level).
		With(slog.String("run_id", uuid.NewString()))
	return logger, closeLog
}

func openDatabase(dataDir string) (storage.Database, error) {
	dataDir = strings.TrimSpace(dataDir)
	if dataDir == "" {
		return storage.NewMemDB(), nil
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("core: prepare data directory: %w", err)
	}
	db, err := storage.NewLevelDB(filepath.Join(dataDir, "state"))
	if err != nil {
		return nil, fmt.Errorf("core: open state database: %w", err)
	}
	return db, nil
}

func (r *Runtime) bootstrap(ctx context.Context, cfg *config.Config) error {
	if err := r.state.EnsureStateVersion(); err != nil {
		return err
	}
	initialized, err := r.Initialized()
	if err != nil {
		return err
	}
	if !initialized {
		spec := genesis.Default(cfg.Governance.DelegationDepth)
		if path := strings.TrimSpace(cfg.GenesisFile); path != "" {
			spec, err = genesis.Load(path)
			if err != nil {
				return err
			}
		}
		if err := r.InitGenesis(ctx, spec); err != nil {
			return err
		}
	}
	count, err := r.VoteRecordCount()
	if err != nil {
		return err
	}
	r.metrics.SetVoteRecords(count)
	return nil
}
