package overrides

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/festafacil/app-busca-fornecedores/internal/models"
	redis "github.com/redis/go-redis/v9"
)

// RedisKey é o hash que guarda os overrides (campo = provider_id, valor = JSON)
const RedisKey = "festafacil:overrides"

// NewRedisClient cria o cliente Redis
// addr example: "localhost:6379"
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisPersister persiste overrides num hash do Redis
type RedisPersister struct {
	rdb *redis.Client
	key string
}

func NewRedisPersister(rdb *redis.Client) *RedisPersister {
	return &RedisPersister{rdb: rdb, key: RedisKey}
}

func (p *RedisPersister) Load(ctx context.Context) ([]models.Override, error) {
	values, err := p.rdb.HGetAll(ctx, p.key).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.Override, 0, len(values))
	for field, raw := range values {
		var o models.Override
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("override %s inválido no redis: %w", field, err)
		}
		if o.ProviderID == "" {
			o.ProviderID = field
		}
		out = append(out, o)
	}
	return out, nil
}

func (p *RedisPersister) Save(ctx context.Context, o models.Override) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.rdb.HSet(ctx, p.key, o.ProviderID, b).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, providerID string) error {
	return p.rdb.HDel(ctx, p.key, providerID).Err()
}

func (p *RedisPersister) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close fecha a conexão
func (p *RedisPersister) Close() error { return p.rdb.Close() }
