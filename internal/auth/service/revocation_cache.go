package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	apperrors "github.com/allisson/vending/internal/errors"
)

// memoryRevocationCache keeps watermarks in process memory. They are lost on restart and
// are not shared between instances.
type memoryRevocationCache struct {
	mu            sync.RWMutex
	revokedBefore map[uuid.UUID]time.Time
	clock         Clock
	ttl           time.Duration
}

// NewMemoryRevocationCache creates an in-process RevocationCache. ttl must be the access
// token lifetime.
func NewMemoryRevocationCache(clock Clock, ttl time.Duration) RevocationCache {
	return &memoryRevocationCache{
		revokedBefore: make(map[uuid.UUID]time.Time),
		clock:         clock,
		ttl:           ttl,
	}
}

func (c *memoryRevocationCache) Revoke(ctx context.Context, userID uuid.UUID) error {
	watermark := c.clock.Now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.revokedBefore[userID] = watermark
	return nil
}

func (c *memoryRevocationCache) IsRevoked(ctx context.Context, userID uuid.UUID, tokenExpiry time.Time) (bool, error) {
	c.mu.RLock()
	watermark, ok := c.revokedBefore[userID]
	c.mu.RUnlock()

	return ok && watermark.After(tokenExpiry), nil
}

func (c *memoryRevocationCache) Prune(ctx context.Context) (int, error) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for userID, watermark := range c.revokedBefore {
		// Every token still accepted expires after now, so a past watermark rejects nothing.
		if !watermark.After(now) {
			delete(c.revokedBefore, userID)
			removed++
		}
	}
	return removed, nil
}

// RevocationRepository persists watermarks for the shared revocation cache.
type RevocationRepository interface {
	// Upsert stores the watermark, keeping the later one if the account already has one.
	Upsert(ctx context.Context, revocation *authDomain.Revocation) error

	// Get returns the watermark of the account, or nil if there is none.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.Revocation, error)

	// DeleteBefore removes watermarks earlier than or equal to t and returns how many.
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
}

// databaseRevocationCache keeps watermarks in a table shared by every instance.
type databaseRevocationCache struct {
	repo  RevocationRepository
	clock Clock
	ttl   time.Duration
}

// NewDatabaseRevocationCache creates a RevocationCache backed by repo. Every lookup reads
// the table, so a lookup that starts after Revoke returns observes the new watermark.
func NewDatabaseRevocationCache(repo RevocationRepository, clock Clock, ttl time.Duration) RevocationCache {
	return &databaseRevocationCache{
		repo:  repo,
		clock: clock,
		ttl:   ttl,
	}
}

func (c *databaseRevocationCache) Revoke(ctx context.Context, userID uuid.UUID) error {
	revocation := &authDomain.Revocation{
		UserID:        userID,
		RevokedBefore: c.clock.Now().Add(c.ttl),
	}
	if err := c.repo.Upsert(ctx, revocation); err != nil {
		return apperrors.Wrap(err, "failed to store revocation")
	}
	return nil
}

func (c *databaseRevocationCache) IsRevoked(
	ctx context.Context,
	userID uuid.UUID,
	tokenExpiry time.Time,
) (bool, error) {
	revocation, err := c.repo.Get(ctx, userID)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to load revocation")
	}
	if revocation == nil {
		return false, nil
	}
	return revocation.RevokedBefore.After(tokenExpiry), nil
}

func (c *databaseRevocationCache) Prune(ctx context.Context) (int, error) {
	removed, err := c.repo.DeleteBefore(ctx, c.clock.Now())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to prune revocations")
	}
	return int(removed), nil
}
