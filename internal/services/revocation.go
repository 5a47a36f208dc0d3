// internal/services/revocation.go
package services

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gophershop/backend/internal/middleware"
	"github.com/gophershop/backend/internal/utils"
)

const revocationKeyPrefix = "auth:epoch:"

// RevocationStore keeps a per-user revocation epoch in redis. Tokens issued
// before the epoch are rejected during session resolution, which bounds the
// exposure of a compromised stateless token. Entries expire after the token
// validity window since older tokens are dead anyway.
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	if rdb == nil {
		return nil
	}
	return &RevocationStore{rdb: rdb}
}

// AsRevoker adapts the store for session resolution. A nil store yields a nil
// interface, which disables the revocation check instead of wrapping a typed
// nil pointer.
func (s *RevocationStore) AsRevoker() middleware.TokenRevoker {
	if s == nil {
		return nil
	}
	return s
}

func (s *RevocationStore) Revoke(ctx context.Context, userID string) error {
	now := time.Now().Unix()
	return s.rdb.Set(ctx, revocationKeyPrefix+userID, strconv.FormatInt(now, 10), utils.TokenValidity).Err()
}

// RevokedAfter implements middleware.TokenRevoker. The zero time means no
// revocation is recorded.
func (s *RevocationStore) RevokedAfter(ctx context.Context, userID string) (time.Time, error) {
	value, err := s.rdb.Get(ctx, revocationKeyPrefix+userID).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	epoch, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(epoch, 0), nil
}
