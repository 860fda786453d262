package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hputnam/oddsboard/internal/pkg/models"
)

func result(week int) *models.ScrapeResult {
	return &models.ScrapeResult{Season: "2025", Week: week}
}

func TestPutGet(t *testing.T) {
	c := New(4, time.Minute)

	c.Put("odds_2025_week3_espn", result(3))
	got, ok := c.Get("odds_2025_week3_espn")
	require.True(t, ok)
	assert.Equal(t, 3, got.Week)

	_, ok = c.Get("odds_2025_week4_espn")
	assert.False(t, ok)
}

func TestReplaceIsPointerSwap(t *testing.T) {
	c := New(4, time.Minute)

	first := result(3)
	c.Put("k", first)
	second := result(3)
	c.Put("k", second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, second, got)
	// The superseded result is untouched, so readers holding it are safe.
	assert.Equal(t, 3, first.Week)
}

func TestSizeBoundEviction(t *testing.T) {
	c := New(2, time.Minute)

	c.Put("a", result(1))
	c.Put("b", result(2))
	c.Put("c", result(3))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
}

func TestTTLExpiry(t *testing.T) {
	c := New(4, 20*time.Millisecond)

	c.Put("k", result(3))
	time.Sleep(50 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry should have expired")
}

func TestPurge(t *testing.T) {
	c := New(4, time.Minute)
	c.Put("a", result(1))
	c.Put("b", result(2))
	c.Purge()
	assert.Zero(t, c.Len())
}
