package testkit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver registration
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// container is a started testcontainer, or nil when an external instance is used.
type container struct {
	ctr testcontainers.Container
}

// Terminate stops the container, if one was started.
func (c container) Terminate(ctx context.Context) error {
	if c.ctr == nil {
		return nil
	}
	return c.ctr.Terminate(ctx)
}

// PostgresModule is the test Postgres instance.
type PostgresModule struct {
	container
	dsn string
}

// DSN returns the connection string for the Postgres instance.
func (p *PostgresModule) DSN() string { return p.dsn }

// RedisModule is the test Redis instance; one database serves the rate cache,
// the token deny-list and the asynq queue.
type RedisModule struct {
	container
	addr string
}

// Addr returns the host:port string for the Redis instance.
func (r *RedisModule) Addr() string { return r.addr }

// StartPostgres starts a Postgres container or uses an external DSN from config.
func StartPostgres(ctx context.Context, cfg *Config) (*PostgresModule, error) {
	if cfg.PGDSN != "" {
		return &PostgresModule{dsn: cfg.PGDSN}, nil
	}

	ctr, err := postgres.Run(ctx,
		cfg.PGImage,
		postgres.WithDatabase(randomDBName()),
		postgres.WithUsername("jewelstore"),
		postgres.WithPassword("jewelstore"),
		testcontainers.WithWaitStrategyAndDeadline(cfg.StartupTimeout,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable", "timezone="+cfg.Timezone)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("get postgres connection string: %w", err)
	}
	return &PostgresModule{container: container{ctr: ctr}, dsn: dsn}, nil
}

// StartRedis starts a Redis container or uses an external addr from config.
func StartRedis(ctx context.Context, cfg *Config) (*RedisModule, error) {
	if cfg.RedisAddr != "" {
		return &RedisModule{addr: cfg.RedisAddr}, nil
	}

	ctr, err := tcredis.Run(ctx, cfg.RedisImage)
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("get redis connection string: %w", err)
	}

	// Clients take host:port, not redis:// URLs.
	u, err := url.Parse(connStr)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("parse redis connection string %q: %w", connStr, err)
	}
	return &RedisModule{container: container{ctr: ctr}, addr: u.Host}, nil
}

// randomDBName generates a random database name like "jewelstore_a1b2c3d4".
func randomDBName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "jewelstore_test"
	}
	return "jewelstore_" + hex.EncodeToString(b)
}
