package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/msgboard/backend/internal/handler"
	"github.com/itchan-dev/msgboard/backend/internal/markdown"
	"github.com/itchan-dev/msgboard/backend/internal/service"
	"github.com/itchan-dev/msgboard/backend/internal/storage/pg"
	redisstore "github.com/itchan-dev/msgboard/backend/internal/storage/redis"
	"github.com/itchan-dev/msgboard/backend/internal/utils"
	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/middleware/ratelimiter"
)

// Storage is what both adapters provide.
type Storage interface {
	service.ThreadStorage
	service.ReplyStorage
	Ping(ctx context.Context) error
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config      *config.Config
	Storage     Storage
	Handler     *handler.Handler
	RateLimiter *ratelimiter.ClientRateLimiter // nil when rate limiting is off
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps, err := NewDependencies(cfg, storage)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}
	return deps, nil
}

// NewDependencies builds services and handler on top of an open storage.
func NewDependencies(cfg *config.Config, storage Storage) (*Dependencies, error) {
	var passwords service.PasswordHasher = service.PlainPasswords{}
	if cfg.Public.HashDeletePasswords {
		passwords = service.BcryptPasswords{}
	}
	textValidator := &utils.TextValidator{MaxLength: cfg.Public.MaxTextLength}

	thread := service.NewThread(storage, &utils.BoardNameValidator{}, textValidator, passwords, cfg.Public)
	reply := service.NewReply(storage, textValidator, passwords)

	h, err := handler.New(thread, reply, storage, markdown.New())
	if err != nil {
		return nil, fmt.Errorf("failed to build handler: %w", err)
	}

	var limiter *ratelimiter.ClientRateLimiter
	if rl := cfg.Public.RateLimit; rl.Rps > 0 {
		burst := float64(rl.Burst)
		if burst < 1 {
			burst = 1
		}
		limiter = ratelimiter.New(rl.Rps, burst, time.Hour)
	}

	return &Dependencies{
		Config:      cfg,
		Storage:     storage,
		Handler:     h,
		RateLimiter: limiter,
	}, nil
}

// NewStorage opens the adapter selected by cfg. Postgres gets its schema
// applied on the way.
func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage {
	case config.StorageRedis:
		storage, err := redisstore.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.StoragePostgres:
		storage, err := pg.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Cleanup()
			return nil, err
		}
		return storage, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
}

// Close releases everything SetupDependencies opened.
func (d *Dependencies) Close() error {
	if d.RateLimiter != nil {
		d.RateLimiter.Stop()
	}
	return d.Storage.Cleanup()
}
