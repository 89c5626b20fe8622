package http

import (
	"github.com/indigo-web/syshttp/config"
	"github.com/indigo-web/syshttp/kv"
	"github.com/indigo-web/syshttp/stream"
)

type Headers = *kv.Storage

// Request represents an HTTP request, as delivered by the engine. Header keys and
// values arrive already parsed, so no wire-format concerns leak in here.
type Request struct {
	// Method is the request method verbatim.
	Method string
	// Path is the decoded request path.
	Path string
	// Headers holds non-normalized header pairs, even though lookup is
	// case-insensitive.
	Headers Headers

	body *Body
}

func NewRequest(cfg *config.Config, method, path string, headers Headers) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Headers: headers,
		body:    NewBody(cfg),
	}
}

// Body provides access to the message body.
func (r *Request) Body() *Body {
	return r.body
}

// Subscribe takes the stream's subscriber seats, so the body flows through the
// request object instead of the raw stream. Called once per ordinary request;
// upgraded connections are read directly off the stream instead.
func (r *Request) Subscribe(s stream.Duplex) {
	s.OnData(r.body.push)
	s.OnEnd(r.body.end)
	s.OnError(r.body.fail)
}
