package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Collection names shared with every engine. Records inside a
// collection are a flat JSON array of the pkg/entity shapes.
const (
	CollectionUsers      = "registeredUsers"
	CollectionCategories = "categories"
	CollectionSchedules  = "schedules"
	CollectionTasks      = "tasks"
	CollectionPlans      = "plans"
	CollectionReviews    = "reviews"
)

type CollectionStore interface {
	// GetCollection returns the raw serialized records of the named
	// collection. An absent collection yields nil data, never an error.
	GetCollection(ctx context.Context, name string) ([]byte, error)
	// SaveCollection overwrites the named collection in one write.
	SaveCollection(ctx context.Context, name string, data []byte) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
