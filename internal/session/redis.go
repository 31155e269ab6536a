package session

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/voice_agent/internal/config"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "voice_agent:session:"

// RedisStore - по списку на сессию, элементы - JSON реплик. Нужен, когда реплик сервиса несколько.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

var _ domain.TranscriptStore = (*RedisStore)(nil)

func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Transcript(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	raw, err := s.rdb.LRange(ctx, Key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange: %w", err)
	}
	return DecodeTurns(raw)
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values, err := EncodeTurns(turns)
	if err != nil {
		return err
	}
	// один RPUSH: пара реплик попадает в список целиком
	if err := s.rdb.RPush(ctx, Key(sessionID), values...).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	return nil
}

func EncodeTurns(turns []domain.Turn) ([]any, error) {
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encode turn: %w", err)
		}
		values = append(values, string(b))
	}
	return values, nil
}

func DecodeTurns(raw []string) ([]domain.Turn, error) {
	turns := make([]domain.Turn, 0, len(raw))
	for _, r := range raw {
		var t domain.Turn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
