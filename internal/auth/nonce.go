// Package auth implements wallet sign-in: a single-use nonce, an EIP-191
// signature over a challenge message, and a bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"nardchat/internal/utils"
)

const NonceTTL = 5 * time.Minute

var ErrNonceNotFound = errors.New("auth: nonce not found or expired")

// NonceStore keeps one pending nonce per address.
type NonceStore interface {
	Put(ctx context.Context, addr, nonce string, ttl time.Duration) error
	// Take returns the nonce and deletes it. ErrNonceNotFound when absent.
	Take(ctx context.Context, addr string) (string, error)
}

// GenerateNonce stores a fresh nonce keyed by address.
func GenerateNonce(ctx context.Context, ns NonceStore, addr string) (string, error) {
	nonce := uuid.NewString()
	if err := ns.Put(ctx, addr, nonce, NonceTTL); err != nil {
		return "", fmt.Errorf("auth: store nonce: %w", err)
	}
	return nonce, nil
}

type RedisNonceStore struct {
	rdb *redis.Client
}

func NewRedisNonceStore(rdb *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{rdb: rdb}
}

func (s *RedisNonceStore) Put(ctx context.Context, addr, nonce string, ttl time.Duration) error {
	return s.rdb.Set(ctx, "nonce:"+addr, nonce, ttl).Err()
}

func (s *RedisNonceStore) Take(ctx context.Context, addr string) (string, error) {
	nonce, err := s.rdb.GetDel(ctx, "nonce:"+addr).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNonceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("auth: take nonce: %w", err)
	}
	return nonce, nil
}

// MemoryNonceStore serves single-instance deployments without Redis.
type MemoryNonceStore struct {
	cache *utils.TTLCache[string, string]
}

func NewMemoryNonceStore(size int) (*MemoryNonceStore, error) {
	cache, err := utils.NewTTLCache[string, string](size)
	if err != nil {
		return nil, err
	}
	return &MemoryNonceStore{cache: cache}, nil
}

func (s *MemoryNonceStore) Put(_ context.Context, addr, nonce string, ttl time.Duration) error {
	s.cache.Set(addr, nonce, ttl)
	return nil
}

func (s *MemoryNonceStore) Take(_ context.Context, addr string) (string, error) {
	nonce, ok := s.cache.Take(addr)
	if !ok {
		return "", ErrNonceNotFound
	}
	return nonce, nil
}
