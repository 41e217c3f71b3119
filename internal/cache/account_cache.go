package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hubex/account-service/internal/domain"
	"github.com/hubex/account-service/internal/repository"
)

const accountKeyPrefix = "account:"

// CachedAccountRepository decorates an AccountRepository with a best-effort
// read-through cache on public-id lookups. Cache errors are logged and the
// call falls through to storage. Update and Delete invalidate after the
// storage write commits: a reader racing the write can repopulate the cache
// with the pre-write row, and the trailing invalidation clears it, so a
// stale entry never outlives the write that obsoleted it.
type CachedAccountRepository struct {
	inner  repository.AccountRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAccountRepository wraps inner with the redis cache. A nil client
// returns inner unchanged.
func NewCachedAccountRepository(inner repository.AccountRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.AccountRepository {
	if client == nil {
		return inner
	}
	return &CachedAccountRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *CachedAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.inner.Create(ctx, account)
}

func (r *CachedAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if err := r.inner.Update(ctx, account); err != nil {
		return err
	}
	r.invalidate(ctx, account.PublicID)
	return nil
}

func (r *CachedAccountRepository) Delete(ctx context.Context, publicID string) error {
	if err := r.inner.Delete(ctx, publicID); err != nil {
		return err
	}
	r.invalidate(ctx, publicID)
	return nil
}

func (r *CachedAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.inner.GetByEmail(ctx, email)
}

func (r *CachedAccountRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Account, error) {
	key := accountKeyPrefix + publicID

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var account domain.Account
		if err := json.Unmarshal(raw, &account); err == nil {
			return &account, nil
		}
		r.invalidate(ctx, publicID)
	} else if err != redis.Nil {
		r.logger.Warn("account cache read failed", zap.Error(err))
	}

	account, err := r.inner.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(account); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("account cache write failed", zap.Error(err))
		}
	}
	return account, nil
}

// GetByVerificationToken is never cached: the stored token changes on every
// reissue and is cleared on consumption.
func (r *CachedAccountRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.inner.GetByVerificationToken(ctx, token)
}

func (r *CachedAccountRepository) List(ctx context.Context, page, size int) ([]domain.Account, error) {
	return r.inner.List(ctx, page, size)
}

func (r *CachedAccountRepository) invalidate(ctx context.Context, publicID string) {
	if err := r.client.Del(ctx, accountKeyPrefix+publicID).Err(); err != nil {
		r.logger.Warn("account cache invalidation failed", zap.Error(err))
	}
}
