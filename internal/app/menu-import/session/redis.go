package menu_import_session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/init-pkg/menu-import/domain/app"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "menu-import:session:"

// RedisStore keeps preview sessions in Redis with a TTL. Take uses GETDEL so a
// session can be confirmed only once even with several replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ app.ImportSessionStore = &RedisStore{}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (this *RedisStore) Save(ctx context.Context, s *app.ImportSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := this.client.Set(ctx, key(s.ID), data, this.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (this *RedisStore) Take(ctx context.Context, id string) (*app.ImportSession, error) {
	data, err := this.client.GetDel(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, app.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("take session %s: %w", id, err)
	}

	var s app.ImportSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (this *RedisStore) Drop(ctx context.Context, id string) error {
	n, err := this.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("drop session %s: %w", id, err)
	}
	if n == 0 {
		return app.ErrSessionNotFound
	}
	return nil
}
