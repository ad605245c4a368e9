package cli

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/raygarage/garage/internal/config"
	"github.com/raygarage/garage/internal/logging"
	"github.com/raygarage/garage/internal/notify"
	"github.com/raygarage/garage/internal/store"
)

// env bundles the opened database, the garage over it, and the alert queue
// sharing its connection. Every command opens one, runs, and closes it.
type env struct {
	garage *store.Garage
	alerts *notify.AlertLog
	log    *zap.Logger
	now    func() time.Time

	st *store.Store
}

// openEnv resolves config and flags, opens the database (creating its
// directory if needed), and wires the garage to the local alert queue.
func openEnv(opts *RootOptions) (*env, error) {
	cfgPath := opts.Config
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	dbPath := cfg.DBPath
	if opts.DBPath != "" {
		dbPath = opts.DBPath
	}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log := logging.New(level, cfg.Log.Format)

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	now := time.Now
	alerts := notify.NewAlertLog(st.DB(), log, now)
	garage := store.NewGarage(st, alerts, log, now)

	return &env{garage: garage, alerts: alerts, log: log, now: now, st: st}, nil
}

// close releases the database. Logger sync errors are ignored; stderr does
// not support fsync on every platform.
func (e *env) close() {
	_ = e.log.Sync()
	if err := e.st.Close(); err != nil {
		e.log.Error("close database", zap.Error(err))
	}
}

// reportSaveError surfaces a swallowed persistence failure as a warning on
// the formatter's diagnostic writer. Mutations still report success; the
// in-memory state is ahead of the database.
func (e *env) reportSaveError(f *OutputFormatter) {
	if err := e.garage.LastSaveError(); err != nil {
		f.VerboseLog("warning: changes not persisted: %v", err)
		e.log.Warn("changes not persisted", zap.Error(err))
	}
}
