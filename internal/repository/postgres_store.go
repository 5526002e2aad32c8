package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/tempo/pkg/cleanup"
)

// PostgresStore keeps every collection as one jsonb row, so a save is
// a single atomic upsert.
type PostgresStore struct {
	conn PgConnection
}

func NewPostgresStore(cfg DBConfig) *PostgresStore {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for collection store error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for collection store: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	store := &PostgresStore{
		conn: pool,
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatal("preparing collections table error: " + err.Error())
	}
	return store
}

func NewPostgresStoreWithConn(conn PgConnection) *PostgresStore {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for collection store: " + err.Error())
	}
	return &PostgresStore{
		conn: conn,
	}
}

func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := ps.conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS collections (name TEXT PRIMARY KEY, data JSONB NOT NULL);`)
	if err != nil {
		return errors.New("creating collections table error: " + err.Error())
	}
	return nil
}

func (ps *PostgresStore) GetCollection(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	row := ps.conn.QueryRow(ctx, `SELECT data FROM collections WHERE name = $1;`, name)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.New("getting collection " + name + " error: " + err.Error())
	}
	return data, nil
}

func (ps *PostgresStore) SaveCollection(ctx context.Context, name string, data []byte) error {
	_, err := ps.conn.Exec(ctx, `INSERT INTO collections (name, data) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data;`,
		name,
		data,
	)
	if err != nil {
		return errors.New("saving collection " + name + " error: " + err.Error())
	}
	return nil
}
