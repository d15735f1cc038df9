package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/catalog"
	"github.com/amixedcolor/aws-identity-gift/internal/config"
	"github.com/amixedcolor/aws-identity-gift/internal/diagnostic"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/giftcard"
	"github.com/amixedcolor/aws-identity-gift/internal/llm"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
	"github.com/amixedcolor/aws-identity-gift/internal/store"
)

// env is what every data command shares: the database, the result
// archive on its configured medium, and a logger.
type env struct {
	cfg     config.Config
	dbPath  string
	store   *store.Store
	archive *archive.Store
	logger  *zap.Logger

	// watchPath is the file the archive lives in, empty for redis.
	watchPath string
	closers   []func() error
}

// openEnv loads configuration and opens the store and archive medium.
// newLogger receives the resolved database path.
func openEnv(cmd *cobra.Command, newLogger func(dbPath string) *zap.Logger) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger := newLogger(dbPath)

	e := &env{cfg: cfg, dbPath: dbPath, store: st, logger: logger}
	e.closers = append(e.closers, st.Close)

	var medium archive.Medium
	switch cfg.Archive.Backend {
	case config.BackendRedis:
		rm, err := store.NewRedisMedium(cfg.Archive.RedisURL)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, rm.Close)
		if err := rm.Ping(cmd.Context()); err != nil {
			// The archive degrades to empty reads and failed saves.
			logger.Warn("redis unreachable", zap.Error(err))
		}
		medium = rm
	default:
		medium = st.KV()
		e.watchPath = dbPath
	}
	e.archive = archive.New(medium, archive.WithLogger(logger))
	return e, nil
}

// openCLIEnv is openEnv logging to stderr.
func openCLIEnv(cmd *cobra.Command) (*env, error) {
	return openEnv(cmd, func(string) *zap.Logger { return cliLogger(cmd) })
}

// Close releases everything openEnv acquired, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.logger.Debug("close", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

func (e *env) services() ([]gift.Service, error) {
	return catalog.Load(e.cfg.CatalogPath)
}

// textProvider builds the diagnostic model. A missing key is reported and
// yields nil so commands that do not diagnose still run.
func (e *env) textProvider(ctx context.Context) llm.Provider {
	if err := e.cfg.LLM.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Diagnosis will be unavailable.")
		return nil
	}
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		return nil
	}
	return provider
}

// cardGenerator builds the gift card generator, or nil when images are off.
func (e *env) cardGenerator(ctx context.Context) (*giftcard.Generator, error) {
	images, err := llm.NewImageProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
	if err != nil {
		return nil, err
	}
	if images == nil {
		return nil, nil
	}
	return giftcard.New(images, giftcard.WithLogger(e.logger)), nil
}

// runner wires diagnosis, the archive and gift cards into a session runner.
func (e *env) runner(ctx context.Context) (*session.Runner, error) {
	services, err := e.services()
	if err != nil {
		return nil, err
	}

	d := diagnostic.New(e.textProvider(ctx), diagnostic.WithLogger(e.logger))

	var cards session.CardMaker
	gen, err := e.cardGenerator(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Gift card images disabled:", err)
	} else if gen != nil {
		cards = gen
	}

	return session.NewRunner(d, e.archive, cards, services, e.logger), nil
}
