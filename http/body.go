package http

import (
	"errors"

	"github.com/indigo-web/syshttp/config"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// ErrIncompleteBody is returned on whole-body accessors until the engine has
// reported the end of the request body.
var ErrIncompleteBody = errors.New("request body is not yet fully received")

type BodyCallback func(chunk []byte)

// Body accumulates request body chunks as they arrive from the stream. Unlike a
// socket-backed body, it cannot block waiting for more data: whole-body accessors
// report ErrIncompleteBody until the end-of-body completion was dispatched.
type Body struct {
	buff []byte
	cb   BodyCallback
	done bool
	err  error
	cfg  *config.Config
}

func NewBody(cfg *config.Config) *Body {
	return &Body{
		cfg: cfg,
	}
}

// Callback invokes the callback on every received chunk, instead of accumulating
// them. Chunks received before the callback was installed stay accumulated and are
// not replayed.
func (b *Body) Callback(cb BodyCallback) {
	b.cb = cb
}

// Bytes returns the whole body at once in a byte representation.
func (b *Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	if !b.done {
		return nil, ErrIncompleteBody
	}

	return b.buff, nil
}

// String returns the whole body at once in a string representation.
func (b *Body) String() (string, error) {
	bytes, err := b.Bytes()
	return uf.B2S(bytes), err
}

// JSON convoys the request's body to a json unmarshaller automatically and behaves
// in a similar manner.
func (b *Body) JSON(model any) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// Done tells whether the body was fully received.
func (b *Body) Done() bool {
	return b.done
}

// Error returns a previously encountered error, otherwise nil.
func (b *Body) Error() error {
	return b.err
}

func (b *Body) push(chunk []byte) {
	if b.cb != nil {
		b.cb(chunk)
		return
	}

	if b.buff == nil {
		b.buff = make([]byte, 0, b.cfg.Body.BufferPrealloc)
	}

	b.buff = append(b.buff, chunk...)
}

func (b *Body) end() {
	b.done = true
}

func (b *Body) fail(err error) {
	b.err = err
}
