package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok, err := c.Get(ctx, "学习")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "学习", []string{"XUE", "XI"}))

	got, ok, err := c.Get(ctx, "学习")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"XUE", "XI"}, got)

	// Mutating the returned slice must not corrupt the cached value.
	got[0] = "corrupted"
	again, _, _ := c.Get(ctx, "学习")
	assert.Equal(t, []string{"XUE", "XI"}, again)
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "pinyin.db")

	s, err := OpenSQLite(dsn)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "长大")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "长大", []string{"ZHANG", "DA"}))

	got, ok, err := s.Get(ctx, "长大")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"ZHANG", "DA"}, got)

	// Last write wins.
	require.NoError(t, s.Put(ctx, "长大", []string{"CHANG", "DA"}))
	got, _, _ = s.Get(ctx, "长大")
	assert.Equal(t, []string{"CHANG", "DA"}, got)
}

func TestTieredPromotesSecondaryHits(t *testing.T) {
	ctx := context.Background()
	primary := NewMemory()
	secondary := NewMemory()
	c := NewTiered(primary, secondary)

	require.NoError(t, secondary.Put(ctx, "你好", []string{"NI", "HAO"}))

	got, ok, err := c.Get(ctx, "你好")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"NI", "HAO"}, got)

	// The hit must now be served by the primary as well.
	got, ok, _ = primary.Get(ctx, "你好")
	require.True(t, ok)
	assert.Equal(t, []string{"NI", "HAO"}, got)
}

func TestTieredWritesBothLevels(t *testing.T) {
	ctx := context.Background()
	primary := NewMemory()
	secondary := NewMemory()
	c := NewTiered(primary, secondary)

	require.NoError(t, c.Put(ctx, "朋友", []string{"PENG", "YOU"}))

	_, ok, _ := primary.Get(ctx, "朋友")
	assert.True(t, ok)
	_, ok, _ = secondary.Get(ctx, "朋友")
	assert.True(t, ok)
}
