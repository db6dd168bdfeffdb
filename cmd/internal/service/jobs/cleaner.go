package jobs

import (
	"context"
	"time"

	"notehub/cmd/internal/service"
	"notehub/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

type TokenStore interface {
	DeleteExpired(now int64) (int64, error)
	DeleteStaleResets(cutoff int64) (int64, error)
}

// TokenCleaner purges revoked tokens whose natural expiry has passed
// and password resets that can no longer be redeemed.
type TokenCleaner struct {
	tokenStore TokenStore
}

func NewTokenCleaner(tokenStore TokenStore) *TokenCleaner {
	return &TokenCleaner{tokenStore: tokenStore}
}

func (c *TokenCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	log.Info("Token cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping token cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *TokenCleaner) cleanup() {
	now := utils.NowUTC()

	tokens, err := c.tokenStore.DeleteExpired(now)
	if err != nil {
		log.Errorf("Cleaner: failed to purge expired tokens: %v", err)
	}

	resets, err := c.tokenStore.DeleteStaleResets(now - service.PasswordResetTTL.Milliseconds())
	if err != nil {
		log.Errorf("Cleaner: failed to purge stale password resets: %v", err)
	}

	if tokens > 0 || resets > 0 {
		log.Infof("Cleaner: purged %d expired tokens and %d stale resets", tokens, resets)
	}
}
