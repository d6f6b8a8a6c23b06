package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	s := Session{
		GUID:       "abc-123",
		VideoPath:  "/tmp/video.mp4",
		ClientName: "Acme",
		SpeechSegments: []SpeechSegment{
			{Timestamp: 1.5, Text: "hello"},
		},
	}
	require.NoError(t, store.Put(ctx, s))
	require.True(t, store.Contains(ctx, "abc-123"))

	got, err := store.Get(ctx, "abc-123")
	require.NoError(t, err)
	require.Equal(t, "Acme", got.ClientName)
	require.Equal(t, "/tmp/video.mp4", got.VideoPath)
	require.Len(t, got.SpeechSegments, 1)
	require.False(t, got.CreatedAt.IsZero())
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore(0)

	_, err := store.Get(context.Background(), "not-real")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "not-real")
	require.False(t, store.Contains(context.Background(), "not-real"))
}

func TestMemoryStoreRejectsDuplicate(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	first := Session{GUID: "dup", VideoPath: "/a.mp4", ClientName: "A"}
	require.NoError(t, store.Put(ctx, first))

	err := store.Put(ctx, Session{GUID: "dup", VideoPath: "/b.mp4", ClientName: "B"})
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := store.Get(ctx, "dup")
	require.NoError(t, err)
	require.Equal(t, "/a.mp4", got.VideoPath, "original entry must be untouched")
}

func TestMemoryStoreConcurrentPuts(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := Session{GUID: fmt.Sprintf("g-%d", i), VideoPath: "/v.mp4", ClientName: "c"}
			if err := store.Put(ctx, s); err != nil {
				t.Errorf("put %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, store.Len())
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	old := Session{GUID: "old", VideoPath: "/v.mp4", ClientName: "c", CreatedAt: time.Now().Add(-2 * time.Minute)}
	fresh := Session{GUID: "fresh", VideoPath: "/v.mp4", ClientName: "c", CreatedAt: time.Now()}
	require.NoError(t, store.Put(ctx, old))
	require.NoError(t, store.Put(ctx, fresh))

	store.sweep(time.Now())

	require.False(t, store.Contains(ctx, "old"))
	require.True(t, store.Contains(ctx, "fresh"))
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	store := NewMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, Session{GUID: "x", VideoPath: "/v", ClientName: "c"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
