package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		headers := New().Add("Upgrade", "websocket")

		assert.True(t, headers.Has("upgrade"))
		assert.True(t, headers.Has("UPGRADE"))
		assert.Equal(t, "websocket", headers.Value("uPgRaDe"))

		_, found := headers.Get("connection")
		assert.False(t, found)
		assert.Empty(t, headers.Value("connection"))
	})

	t.Run("values preserves insertion order", func(t *testing.T) {
		headers := New().
			Add("Accept", "text/html").
			Add("Host", "localhost").
			Add("accept", "application/json")

		assert.Equal(t, []string{"text/html", "application/json"}, headers.Values("accept"))
		assert.Nil(t, headers.Values("absent"))
	})

	t.Run("from map", func(t *testing.T) {
		headers := NewFromMap(map[string][]string{
			"Accept": {"text/html", "application/json"},
		})

		assert.Equal(t, 2, headers.Len())
		assert.Len(t, headers.Values("accept"), 2)
	})

	t.Run("expose preserves insertion order", func(t *testing.T) {
		headers := New().
			Add("a", "1").
			Add("b", "2")

		pairs := headers.Expose()
		require.Len(t, pairs, 2)
		assert.Equal(t, Pair{"a", "1"}, pairs[0])
		assert.Equal(t, Pair{"b", "2"}, pairs[1])
	})

	t.Run("clear keeps the allocation", func(t *testing.T) {
		headers := NewPrealloc(5).Add("key", "value")
		headers.Clear()

		assert.Zero(t, headers.Len())
		assert.Empty(t, headers.Expose())
	})
}
