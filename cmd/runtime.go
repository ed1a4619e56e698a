package cmd

import (
	"fmt"

	"tablediff/core/config"
	"tablediff/core/database"
	"tablediff/core/logger"
	"tablediff/core/source"
	"tablediff/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the configuration and logger shared by every command.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &runtime{cfg: cfg, logger: l}, nil
}

// backends are the optional connections a resolver was built with.
type backends struct {
	storage storage.Client
	db      *gorm.DB
}

// newResolver builds a resolver that can read every location given.
// Storage and database connections are only opened when a location needs them.
func (r *runtime) newResolver(comma rune, locations ...string) (*source.Resolver, *backends, error) {
	resolver := source.NewResolver(source.NewFileSource(comma))
	b := &backends{}

	needs := make(map[string]bool)
	for _, loc := range locations {
		needs[source.Scheme(loc)] = true
	}

	if needs[source.SchemeObject] {
		client, err := r.storageClient()
		if err != nil {
			return nil, nil, err
		}
		b.storage = client
		resolver.Register(source.SchemeObject, source.NewObjectSource(client, r.cfg.Storage.Bucket, comma))
	}

	if needs[source.SchemeSQL] {
		db, err := database.Connect(r.cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.db = db
		resolver.Register(source.SchemeSQL, source.NewSQLSource(db))
	}

	return resolver, b, nil
}

func (r *runtime) storageClient() (storage.Client, error) {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return client, nil
}
