package syshttp

import (
	"github.com/indigo-web/syshttp/http"
	"github.com/indigo-web/syshttp/http/status"
	"github.com/indigo-web/syshttp/kv"
	"github.com/indigo-web/syshttp/stream"
)

// Direction distinguishes the two halves of a connection an asynchronous native
// operation may belong to.
type Direction uint8

const (
	DirRequest Direction = iota
	DirResponse
)

func (d Direction) String() string {
	if d == DirRequest {
		return "request"
	}

	return "response"
}

// Conn is the per-request connection context. The engine allocates it and fills
// the exported head fields before dispatching a new-request event; all the managed
// state is owned exclusively by the dispatcher for the connection's lifetime.
type Conn struct {
	// Method, Path and Headers carry the already parsed request head.
	Method  string
	Path    string
	Headers *kv.Storage
	// Stream is the duplex stream associated with the connection.
	Stream stream.Duplex
	// Status and Disconnect are consumed by Engine.WriteHeaders.
	Status     status.Code
	Disconnect bool

	upgrade    bool
	started    bool
	reqPending bool
	resPending bool
	request    *http.Request
	response   *http.Response
}

// Pending tells whether an asynchronous native operation is currently outstanding
// for the direction.
func (c *Conn) Pending(d Direction) bool {
	if d == DirRequest {
		return c.reqPending
	}

	return c.resPending
}

// Upgraded reports whether the connection was switched to another protocol.
func (c *Conn) Upgraded() bool {
	return c.upgrade
}

// Request returns the request object, once the new-request event was dispatched.
func (c *Conn) Request() *http.Request {
	return c.request
}

// Response returns the response object. Upgraded connections carry none.
func (c *Conn) Response() *http.Response {
	return c.response
}

// setPending records the in-flight state of a direction. On ordinary requests both
// directions are coupled into a single "the request has one in-flight operation"
// flag, so they always move together; after an upgrade the halves are driven by
// separate half-duplex streams and move independently.
func (c *Conn) setPending(d Direction, value bool) {
	if !c.upgrade {
		c.reqPending, c.resPending = value, value
		return
	}

	if d == DirRequest {
		c.reqPending = value
	} else {
		c.resPending = value
	}
}
