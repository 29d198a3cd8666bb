package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/menara-digital/menara/internal/model"
)

func TestDedupKey(t *testing.T) {
	event := model.EdgeEvent{Kind: model.EdgeAdzan, Prayer: model.PrayerMaghrib, Day: "2026-03-10"}
	assert.Equal(t, "al-falah|Maghrib|2026-03-10", DedupKey("al-falah", event))

	imsak := model.EdgeEvent{Kind: model.EdgeImsak, Day: "2026-03-10"}
	assert.Equal(t, "al-falah|Imsak|2026-03-10", DedupKey("al-falah", imsak))
}

func TestMemoryLedger_MarkIfAbsent(t *testing.T) {
	l := NewMemoryLedger()

	first, err := l.MarkIfAbsent(context.Background(), "k")
	assert.NoError(t, err)
	assert.True(t, first)

	second, err := l.MarkIfAbsent(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, second)
	assert.Equal(t, 1, l.Len())
}

func TestMemoryLedger_ConcurrentMarksExactlyOneWinner(t *testing.T) {
	l := NewMemoryLedger()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if fresh, _ := l.MarkIfAbsent(context.Background(), "same-key"); fresh {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestMemoryLedger_PurgeDropsOnlyStaleEntries(t *testing.T) {
	l := NewMemoryLedger()
	l.MarkIfAbsent(context.Background(), "old")
	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	l.MarkIfAbsent(context.Background(), "fresh")

	l.Purge(cutoff)
	assert.Equal(t, 1, l.Len())

	fresh, _ := l.MarkIfAbsent(context.Background(), "old")
	assert.True(t, fresh)
}
