package syshttp

import (
	"fmt"

	"github.com/indigo-web/syshttp/http"
	"github.com/indigo-web/syshttp/http/status"
)

// Decision tells the engine whether to arm the next asynchronous body read for the
// connection the event belonged to. The engine must not issue one on its own: a
// paused stream stays unarmed until the consumer resumes it.
type Decision struct {
	Rearm bool
}

// Dispatch routes a single completion event to its handler and advances the
// connection's pending flags accordingly.
//
// Errors returned from Dispatch are listener-scoped: ErrUnrecoverable aborts event
// processing for the whole listener, ErrUnknownEvent and ErrProtocolViolation
// indicate a defect in the engine. Per-connection failures never surface here,
// they're converted into stream-level events instead, so the application observes
// them per-connection.
func (s *Server) Dispatch(ev Event) (Decision, error) {
	switch ev.Type {
	case EventNewRequest, EventRequestBody, EventEndRequest, EventWritten,
		EventErrorInitializingReadBody, EventErrorReadBody, EventErrorWriting:
		if ev.Conn == nil {
			return Decision{}, fmt.Errorf(
				"%w: %s event with no connection context", ErrProtocolViolation, ev.Type,
			)
		}
	}

	switch ev.Type {
	case EventErrorInitializingRequest:
		// swallowing this would leave the listener with no armed accept,
		// permanently starving it
		if ev.Err == nil {
			return Decision{}, ErrUnrecoverable
		}

		return Decision{}, fmt.Errorf("%w: %w", ErrUnrecoverable, ev.Err)
	case EventErrorNewRequest:
		// no context exists yet and the engine has already re-armed its own
		// pending read, so there's nothing to clean up
		err := nativeErr("accept", ev.Err)
		s.log.Warn().
			Err(err).
			Msg("client error")

		for _, cb := range s.onClientError {
			cb(err)
		}

		return Decision{}, nil
	case EventNewRequest:
		return s.newRequest(ev.Conn)
	case EventRequestBody:
		return s.requestBody(ev.Conn, ev.Chunk), nil
	case EventEndRequest:
		ev.Conn.setPending(DirRequest, false)
		ev.Conn.Stream.End()
		return Decision{}, nil
	case EventErrorInitializingReadBody, EventErrorReadBody:
		s.dispose(ev.Conn, DirRequest, nativeErr("read", ev.Err))
		return Decision{}, nil
	case EventErrorWriting:
		s.dispose(ev.Conn, DirResponse, nativeErr("write", ev.Err))
		return Decision{}, nil
	case EventWritten:
		ev.Conn.setPending(DirResponse, false)
		ev.Conn.Stream.Flushed()
		return Decision{}, nil
	default:
		return Decision{}, fmt.Errorf("%w: %d", ErrUnknownEvent, ev.Type)
	}
}

// newRequest initializes the connection context and branches on the presence of
// an upgrade header. In all the branches, the returned Decision carries the
// resulting request-side pending flag.
func (s *Server) newRequest(c *Conn) (Decision, error) {
	if c.started || c.Pending(DirRequest) {
		// the engine guarantees at most one outstanding operation per direction,
		// so a second new-request on a live context is a defect on its side
		return Decision{}, fmt.Errorf("%w: new-request on a live context", ErrProtocolViolation)
	}

	c.started = true
	c.request = http.NewRequest(s.cfg, c.Method, c.Path, c.Headers)

	if c.Headers.Has("upgrade") {
		if len(s.onUpgrade) == 0 {
			return s.rejectUpgrade(c)
		}

		c.upgrade = true
		for _, cb := range s.onUpgrade {
			cb(c.request, c.Stream, []byte{})
		}

		// the subscriber may have paused the stream right away
		c.setPending(DirRequest, !c.Stream.Paused())

		return Decision{Rearm: c.Pending(DirRequest)}, nil
	}

	c.response = http.NewResponse(s.cfg)
	c.request.Subscribe(c.Stream)

	for _, cb := range s.onRequest {
		cb(c.request, c.response)
	}

	c.setPending(DirRequest, !c.Stream.Paused())

	return Decision{Rearm: c.Pending(DirRequest)}, nil
}

// rejectUpgrade refuses to switch protocols when nobody is subscribed to upgrades.
// Reading further body data is suppressed, and the 400 head is pushed to the wire
// synchronously with the connection marked for disconnect, so the client is dropped
// without waiting for any application input.
func (s *Server) rejectUpgrade(c *Conn) (Decision, error) {
	c.setPending(DirRequest, false)
	c.Status = status.BadRequest
	c.Disconnect = true

	if err := s.engine.WriteHeaders(c); err != nil {
		// the connection is going down either way
		s.log.Warn().
			Err(err).
			Msg("rejecting upgrade")
	}

	return Decision{}, nil
}

// requestBody forwards a received chunk to the stream. The pending flag is cleared
// first and re-set only if the stream didn't pause itself during the forwarding,
// which is exactly what the engine needs to know to arm (or hold off) the next
// body read.
func (s *Server) requestBody(c *Conn, chunk []byte) Decision {
	c.setPending(DirRequest, false)
	c.Stream.Push(chunk)

	if !c.Stream.Paused() {
		c.setPending(DirRequest, true)
	}

	return Decision{Rearm: c.Pending(DirRequest)}
}

// dispose is the single give-up point for mid-flight failures: by the time such an
// event arrives, the engine has already released the native resources of the failed
// direction, so only the managed state is cleared and the application notified via
// the stream.
func (s *Server) dispose(c *Conn, d Direction, err *NativeError) {
	c.setPending(d, false)
	s.log.Debug().
		Err(err).
		Str("direction", d.String()).
		Msg("disposing connection")

	c.Stream.Error(fmt.Errorf("connection aborted: %w", err))
	c.Stream.Close(true)
}
