package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "freefortalk"
)

// Config holds the user store connection settings.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and the startup ping.
	Timeout time.Duration
}

func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(c.Timeout)
}

// Connect opens the user store and fails unless the primary answers a ping.
// An empty URI or database name is a ConfigError.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	switch {
	case cfg.URI == "":
		return nil, nil, domain.ConfigError("MONGO_URI is not configured")
	case cfg.Database == "":
		return nil, nil, domain.ConfigError("MONGO_DB is not configured")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := Pinger(client)(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// Pinger returns the readiness check for client.
func Pinger(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
