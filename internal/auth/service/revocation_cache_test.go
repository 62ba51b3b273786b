package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	"github.com/allisson/vending/internal/auth/service/mocks"
)

var revocationEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryRevocationCache(t *testing.T) {
	ctx := context.Background()
	ttl := 10 * time.Minute

	t.Run("Success_UnknownAccountIsNotRevoked", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)

		revoked, err := cache.IsRevoked(ctx, uuid.Must(uuid.NewV7()), revocationEpoch.Add(ttl))
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Success_TokensIssuedBeforeRevokeAreRejected", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)
		userID := uuid.Must(uuid.NewV7())

		oldExpiry := clock.Now().Add(ttl)
		clock.Advance(time.Second)
		require.NoError(t, cache.Revoke(ctx, userID))

		revoked, err := cache.IsRevoked(ctx, userID, oldExpiry)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success_TokensIssuedAfterRevokeAreAccepted", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)
		userID := uuid.Must(uuid.NewV7())

		require.NoError(t, cache.Revoke(ctx, userID))
		clock.Advance(time.Second)

		revoked, err := cache.IsRevoked(ctx, userID, clock.Now().Add(ttl))
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Success_OtherAccountsAreUnaffected", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)
		expiry := clock.Now().Add(ttl)

		clock.Advance(time.Second)
		require.NoError(t, cache.Revoke(ctx, uuid.Must(uuid.NewV7())))

		revoked, err := cache.IsRevoked(ctx, uuid.Must(uuid.NewV7()), expiry)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Success_PruneDropsStaleWatermarks", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)
		stale := uuid.Must(uuid.NewV7())
		fresh := uuid.Must(uuid.NewV7())

		require.NoError(t, cache.Revoke(ctx, stale))
		clock.Advance(5 * time.Minute)
		require.NoError(t, cache.Revoke(ctx, fresh))
		clock.Advance(6 * time.Minute)

		removed, err := cache.Prune(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		revoked, err := cache.IsRevoked(ctx, fresh, revocationEpoch.Add(ttl))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success_ConcurrentAccess", func(t *testing.T) {
		clock := mocks.NewFakeClock(revocationEpoch)
		cache := NewMemoryRevocationCache(clock, ttl)
		userID := uuid.Must(uuid.NewV7())

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = cache.Revoke(ctx, userID)
			}()
			go func() {
				defer wg.Done()
				_, _ = cache.IsRevoked(ctx, userID, revocationEpoch)
			}()
		}
		wg.Wait()

		revoked, err := cache.IsRevoked(ctx, userID, revocationEpoch)
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}

func TestDatabaseRevocationCache(t *testing.T) {
	ctx := context.Background()
	ttl := 10 * time.Minute

	t.Run("Success_Revoke", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		clock := mocks.NewFakeClock(revocationEpoch)
		userID := uuid.Must(uuid.NewV7())

		repo.On("Upsert", ctx, &authDomain.Revocation{
			UserID:        userID,
			RevokedBefore: revocationEpoch.Add(ttl),
		}).Return(nil).Once()

		cache := NewDatabaseRevocationCache(repo, clock, ttl)
		assert.NoError(t, cache.Revoke(ctx, userID))
		repo.AssertExpectations(t)
	})

	t.Run("Error_RevokeRepositoryFailure", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		repoErr := errors.New("connection refused")
		repo.On("Upsert", ctx, mock.Anything).Return(repoErr).Once()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)
		err := cache.Revoke(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, repoErr)
	})

	t.Run("Success_IsRevokedComparesWatermark", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		userID := uuid.Must(uuid.NewV7())
		watermark := revocationEpoch.Add(ttl)

		repo.On("Get", ctx, userID).
			Return(&authDomain.Revocation{UserID: userID, RevokedBefore: watermark}, nil).
			Twice()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)

		revoked, err := cache.IsRevoked(ctx, userID, watermark.Add(-time.Second))
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = cache.IsRevoked(ctx, userID, watermark)
		require.NoError(t, err)
		assert.False(t, revoked)
		repo.AssertExpectations(t)
	})

	t.Run("Success_RevokeVisibleToLaterLookupDuringSlowRead", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		userID := uuid.Must(uuid.NewV7())
		tokenExpiry := revocationEpoch.Add(time.Minute)
		started := make(chan struct{})
		release := make(chan struct{})

		repo.On("Get", ctx, userID).Return(nil, nil).Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Once()
		repo.On("Upsert", ctx, mock.Anything).Return(nil).Once()
		repo.On("Get", ctx, userID).
			Return(&authDomain.Revocation{UserID: userID, RevokedBefore: revocationEpoch.Add(ttl)}, nil).
			Once()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)

		var wg sync.WaitGroup
		var earlyErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, earlyErr = cache.IsRevoked(ctx, userID, tokenExpiry)
		}()
		<-started

		require.NoError(t, cache.Revoke(ctx, userID))

		var revoked bool
		var err error
		done := make(chan struct{})
		go func() {
			defer close(done)
			revoked, err = cache.IsRevoked(ctx, userID, tokenExpiry)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		close(release)
		<-done
		wg.Wait()

		require.NoError(t, earlyErr)
		require.NoError(t, err)
		assert.True(t, revoked)
		repo.AssertExpectations(t)
	})

	t.Run("Success_NoWatermark", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		userID := uuid.Must(uuid.NewV7())
		repo.On("Get", ctx, userID).Return(nil, nil).Once()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)
		revoked, err := cache.IsRevoked(ctx, userID, revocationEpoch)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Error_IsRevokedRepositoryFailure", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		repoErr := errors.New("timeout")
		repo.On("Get", ctx, mock.Anything).Return(nil, repoErr).Once()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)
		revoked, err := cache.IsRevoked(ctx, uuid.Must(uuid.NewV7()), revocationEpoch)
		assert.ErrorIs(t, err, repoErr)
		assert.False(t, revoked)
	})

	t.Run("Success_Prune", func(t *testing.T) {
		repo := &mocks.MockRevocationRepository{}
		repo.On("DeleteBefore", ctx, revocationEpoch).Return(int64(3), nil).Once()

		cache := NewDatabaseRevocationCache(repo, mocks.NewFakeClock(revocationEpoch), ttl)
		removed, err := cache.Prune(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, removed)
	})
}
