package store

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisStore keeps the document as a single Redis string with no expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int, key string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, "redis connection failed")
	}
	return NewRedisStoreFromClient(rdb, key), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DocumentKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Get(ctx context.Context) (*Document, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return Decode(val)
}

func (s *RedisStore) Set(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return errors.Wrap(s.client.Set(ctx, s.key, data, 0).Err(), "redis set")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
