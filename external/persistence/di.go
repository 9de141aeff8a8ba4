package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/mojiokoshin-worker/external/rpc"
	"github.com/foxseedlab/mojiokoshin-worker/internal/config"
	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (persistence.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		switch cfg.PersistenceDriver {
		case config.PersistenceDriverPostgres:
			return newPostgresFromConfig(cfg)
		case config.PersistenceDriverNone:
			return NoopClient{}, nil
		default:
			conn, err := rpc.NewClientConn(cfg.PersistenceAddress)
			if err != nil {
				return nil, err
			}
			return NewGRPCClient(conn), nil
		}
	})
}

// newPostgresFromConfig fails only on an unusable DATABASE_URL. An
// unreachable database is logged and retried on the first write.
func newPostgresFromConfig(cfg *config.Config) (*PostgresClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
	defer cancel()

	p, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	client := NewPostgresClient(p)
	if err := p.Ping(ctx); err != nil {
		slog.Warn("database unreachable at startup, persistence is degraded until it recovers", "error", err)
		return client, nil
	}
	if err := client.ensureSchema(ctx); err != nil {
		slog.Warn("failed to run migration at startup", "error", err)
	}
	return client, nil
}
