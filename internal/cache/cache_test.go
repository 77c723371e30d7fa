package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKey(t *testing.T) {
	now := time.Now()
	key := FileKey("/evidence/img.png", 1024, now)
	assert.True(t, strings.HasPrefix(key, "casebinder:v1:"))

	// Identical identity gives an identical key
	assert.Equal(t, key, FileKey("/evidence/img.png", 1024, now))

	// Any change in path, size, or mtime invalidates
	assert.NotEqual(t, key, FileKey("/evidence/other.png", 1024, now))
	assert.NotEqual(t, key, FileKey("/evidence/img.png", 1025, now))
	assert.NotEqual(t, key, FileKey("/evidence/img.png", 1024, now.Add(time.Nanosecond)))
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k1", []byte("deadbeef"), 0))
	val, found := c.Get("k1")
	require.True(t, found)
	assert.Equal(t, []byte("deadbeef"), val)

	require.NoError(t, c.Delete("k1"))
	_, found = c.Get("k1")
	assert.False(t, found)

	// Deleting a missing key is not an error
	require.NoError(t, c.Delete("k1"))
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	require.NoError(t, c.Set("k1", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, found := c.Get("k1")
	assert.False(t, found)
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	require.NoError(t, c.Set("k1", []byte("a"), 0))
	require.NoError(t, c.Set("k2", []byte("b"), 0))

	require.NoError(t, c.Clear())
	_, found := c.Get("k1")
	assert.False(t, found)
	_, found = c.Get("k2")
	assert.False(t, found)
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Hour, dir, time.Hour)

	// Seed only the disk layer, as a prior run would have
	require.NoError(t, NewDiskCache(dir, time.Hour).Set("k1", []byte("cached"), 0))

	val, found := c.Get("k1")
	require.True(t, found)
	assert.Equal(t, []byte("cached"), val)

	// The hit is now served from memory even after the disk copy goes away
	require.NoError(t, NewDiskCache(dir, time.Hour).Delete("k1"))
	val, found = c.Get("k1")
	require.True(t, found)
	assert.Equal(t, []byte("cached"), val)
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Hour, dir, time.Hour)
	require.NoError(t, c.Set("k1", []byte("v"), 0))

	// A fresh disk view sees the value, so it survives process restarts
	val, found := NewDiskCache(dir, time.Hour).Get("k1")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)
}
