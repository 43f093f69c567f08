package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kvBackends(t *testing.T) map[string]KV {
	t.Helper()
	fileKV, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", []byte(`{"a":1}`)))
			got, ok, err := kv.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte(`{"a":1}`), got)

			require.NoError(t, kv.Set("k", []byte(`{"a":2}`)))
			got, _, err = kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":2}`), got)
		})
	}
}

func TestKVDelete(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("k", []byte("v")))
			require.NoError(t, kv.Delete("k"))
			_, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting a missing key is not an error.
			require.NoError(t, kv.Delete("k"))
		})
	}
}

func TestKVClear(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("a", []byte("1")))
			require.NoError(t, kv.Set("b", []byte("2")))
			require.NoError(t, kv.Clear())

			for _, key := range []string{"a", "b"} {
				_, ok, err := kv.Get(key)
				require.NoError(t, err)
				assert.False(t, ok)
			}
		})
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte("original")
	require.NoError(t, kv.Set("k", value))

	value[0] = 'X'
	got, _, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestFileKVSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set("k", []byte("persisted")))

	reopened, err := NewFileKV(dir)
	require.NoError(t, err)
	got, ok, err := reopened.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}
