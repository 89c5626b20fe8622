package http

import (
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/syshttp/config"
	"github.com/indigo-web/syshttp/kv"
	"github.com/indigo-web/syshttp/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(headers *kv.Storage) (*Request, *stream.Pipe) {
	pipe := stream.NewPipe(1024)
	request := NewRequest(config.Default(), "POST", "/upload", headers)
	request.Subscribe(pipe)

	return request, pipe
}

func TestRequestBody(t *testing.T) {
	t.Run("incomplete until end-of-body", func(t *testing.T) {
		request, pipe := newRequest(kv.New())
		pipe.Push([]byte("partial"))

		_, err := request.Body().Bytes()
		assert.ErrorIs(t, err, ErrIncompleteBody)
		assert.False(t, request.Body().Done())
	})

	t.Run("accumulates chunks", func(t *testing.T) {
		request, pipe := newRequest(kv.New())

		first, second := uniuri.NewLen(16), uniuri.NewLen(16)
		pipe.Push([]byte(first))
		pipe.Push([]byte(second))
		pipe.End()

		body, err := request.Body().String()
		require.NoError(t, err)
		assert.Equal(t, first+second, body)
		assert.True(t, request.Body().Done())
	})

	t.Run("callback mode receives chunks live", func(t *testing.T) {
		request, pipe := newRequest(kv.New())

		var chunks int
		request.Body().Callback(func(chunk []byte) { chunks++ })

		pipe.Push([]byte("one"))
		pipe.Push([]byte("two"))
		pipe.End()
		assert.Equal(t, 2, chunks)
	})

	t.Run("json", func(t *testing.T) {
		request, pipe := newRequest(kv.New().Add("Content-Type", "application/json"))
		pipe.Push([]byte(`{"answer": 42}`))
		pipe.End()

		model := struct {
			Answer int `json:"answer"`
		}{}
		require.NoError(t, request.Body().JSON(&model))
		assert.Equal(t, 42, model.Answer)
	})

	t.Run("stream failure surfaces on accessors", func(t *testing.T) {
		request, pipe := newRequest(kv.New())
		pipe.Error(assert.AnError)
		pipe.Close(true)

		_, err := request.Body().Bytes()
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorIs(t, request.Body().Error(), assert.AnError)
	})
}

func TestRequestHeaders(t *testing.T) {
	request, _ := newRequest(kv.New().Add("Upgrade", "websocket").Add("Host", "localhost"))

	assert.True(t, request.Headers.Has("upgrade"))
	assert.Equal(t, "localhost", request.Headers.Value("HOST"))
	assert.Equal(t, "POST", request.Method)
	assert.Equal(t, "/upload", request.Path)
}
