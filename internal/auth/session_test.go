package auth

import (
	"context"
	"testing"
	"time"

	"github.com/anoixa/photo-frame/cache/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	provider, err := memory.NewMemory(memory.Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return NewSessionStore(provider)
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	session := &Session{
		GoogleID:    "google-1",
		Name:        "Alice",
		AccessToken: "ya29.access",
		Expiry:      time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, "google-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", loaded.Name)
	assert.Equal(t, "ya29.access", loaded.AccessToken)
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store := newTestSessionStore(t)

	_, err := store.Load(context.Background(), "nobody")
	assert.Error(t, err)
}

// 同一用户重新登录覆盖旧会话
func TestSessionStore_SaveOverwrites(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{GoogleID: "google-1", AccessToken: "old"}))
	require.NoError(t, store.Save(ctx, &Session{GoogleID: "google-1", AccessToken: "new"}))

	loaded, err := store.Load(ctx, "google-1")
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.AccessToken)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{GoogleID: "google-1", AccessToken: "tok"}))
	require.NoError(t, store.Delete(ctx, "google-1"))

	_, err := store.Load(ctx, "google-1")
	assert.Error(t, err)
}
