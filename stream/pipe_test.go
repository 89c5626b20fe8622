package stream

import (
	"errors"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeDelivery(t *testing.T) {
	t.Run("direct delivery with a consumer attached", func(t *testing.T) {
		pipe := NewPipe(64)

		var received []byte
		pipe.OnData(func(chunk []byte) { received = append(received, chunk...) })

		payload := uniuri.NewLen(32)
		pipe.Push([]byte(payload))
		assert.Equal(t, payload, string(received))
		assert.Zero(t, pipe.Buffered())
		assert.False(t, pipe.Paused())
	})

	t.Run("buffers without a consumer and pauses at the watermark", func(t *testing.T) {
		pipe := NewPipe(64)

		pipe.Push([]byte(uniuri.NewLen(32)))
		assert.False(t, pipe.Paused())
		assert.Equal(t, 32, pipe.Buffered())

		pipe.Push([]byte(uniuri.NewLen(32)))
		assert.True(t, pipe.Paused())
		assert.Equal(t, 64, pipe.Buffered())
	})

	t.Run("resume replays buffered data in order", func(t *testing.T) {
		pipe := NewPipe(8)
		pipe.Push([]byte("hello, "))
		pipe.Push([]byte("world"))
		require.True(t, pipe.Paused())

		var received []byte
		pipe.OnData(func(chunk []byte) { received = append(received, chunk...) })
		pipe.Resume()

		assert.Equal(t, "hello, world", string(received))
		assert.Zero(t, pipe.Buffered())
		assert.False(t, pipe.Paused())
	})

	t.Run("buffers while paused even with a consumer", func(t *testing.T) {
		pipe := NewPipe(64)

		var received []byte
		pipe.OnData(func(chunk []byte) { received = append(received, chunk...) })
		pipe.Pause()

		pipe.Push([]byte("deferred"))
		assert.Empty(t, received)

		pipe.Resume()
		assert.Equal(t, "deferred", string(received))
	})
}

func TestPipeEnd(t *testing.T) {
	t.Run("fires once the buffer is drained", func(t *testing.T) {
		pipe := NewPipe(8)
		pipe.Push([]byte("pending data"))
		require.True(t, pipe.Paused())

		var ended bool
		pipe.OnEnd(func() { ended = true })
		pipe.End()
		assert.False(t, ended, "end must wait for the buffered data")

		pipe.OnData(func([]byte) {})
		pipe.Resume()
		assert.True(t, ended)
	})

	t.Run("fires immediately on a drained pipe", func(t *testing.T) {
		pipe := NewPipe(64)

		var ended int
		pipe.OnEnd(func() { ended++ })
		pipe.End()
		pipe.End()
		assert.Equal(t, 1, ended)
	})
}

func TestPipeFailure(t *testing.T) {
	pipe := NewPipe(64)

	var gotErr error
	var abnormal bool
	pipe.OnError(func(err error) { gotErr = err })
	pipe.OnClose(func(ab bool) { abnormal = ab })

	cause := errors.New("connection reset")
	pipe.Error(cause)
	pipe.Close(true)

	assert.Same(t, cause, gotErr)
	assert.Same(t, cause, pipe.Err())
	assert.True(t, abnormal)

	// the pipe is dead, further completions are ignored
	var closes int
	pipe.OnClose(func(bool) { closes++ })
	pipe.Close(false)
	pipe.Push([]byte("late"))
	assert.Zero(t, closes)
	assert.Zero(t, pipe.Buffered())
}

func TestPipeFlush(t *testing.T) {
	pipe := NewPipe(64)

	var flushes int
	pipe.OnFlush(func() { flushes++ })
	pipe.Flushed()
	pipe.Flushed()
	assert.Equal(t, 2, flushes)
}
