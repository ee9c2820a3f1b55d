package runlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerMutualExclusion(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different key is independent.
	_, ok, err = locker.TryLock(ctx, "allocation:FDR-002:2025-08", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLockerReleaseRequiresToken(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// Wrong token must not release the lock.
	require.NoError(t, locker.Release(ctx, "allocation:FDR-001:2025-08", "not-the-token"))
	_, ok, err = locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, locker.Release(ctx, "allocation:FDR-001:2025-08", token))
	_, ok, err = locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLockerTTLExpiry(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	_, ok, err := locker.TryLock(ctx, "allocation:FDR-001:2025-08", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok, err = locker.TryLock(ctx, "allocation:FDR-001:2025-08", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
