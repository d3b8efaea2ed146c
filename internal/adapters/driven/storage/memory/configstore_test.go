package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.backend", "file"))
	require.NoError(t, store.Set("storage.backend", "redis"))

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "redis", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("autosave.delay_ms", 1500))
	require.NoError(t, store.Set("images.rate_per_second", 2.5))
	require.NoError(t, store.Set("storage.redis_db", int64(3)))
	require.NoError(t, store.Set("flag", true))
	require.NoError(t, store.Set("name", "admin"))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", store.GetInt("autosave.delay_ms"), 1500},
		{"int from int64", store.GetInt("storage.redis_db"), 3},
		{"int from float", store.GetInt("images.rate_per_second"), 2},
		{"float", store.GetFloat("images.rate_per_second"), 2.5},
		{"float from int", store.GetFloat("autosave.delay_ms"), 1500.0},
		{"bool", store.GetBool("flag"), true},
		{"string", store.GetString("name"), "admin"},
		{"string wrong type", store.GetString("flag"), ""},
		{"int wrong type", store.GetInt("name"), 0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"bool wrong type", store.GetBool("name"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("session.window_minutes", 120))
	require.NoError(t, store.Set("auth.username", "admin"))

	assert.Equal(t, []string{"auth.username", "session.window_minutes"}, store.Keys())
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("k")
		}()
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}
