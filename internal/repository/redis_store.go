package repository

import (
	"context"
	"errors"
	"log"

	"github.com/limbo/tempo/pkg/cleanup"
	"github.com/redis/go-redis/v9"
)

// RedisStore maps each collection onto one key holding its whole
// serialized record array.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("error while pinging redis for collection store: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return &RedisStore{
		client: client,
	}
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (rs *RedisStore) GetCollection(ctx context.Context, name string) ([]byte, error) {
	data, err := rs.client.Get(ctx, name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.New("getting collection " + name + " error: " + err.Error())
	}
	return data, nil
}

func (rs *RedisStore) SaveCollection(ctx context.Context, name string, data []byte) error {
	if err := rs.client.Set(ctx, name, data, 0).Err(); err != nil {
		return errors.New("saving collection " + name + " error: " + err.Error())
	}
	return nil
}
