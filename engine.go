package syshttp

// Handle is an opaque reference to a native listener, as issued by the engine.
type Handle uintptr

// Engine is the boundary to the native event source: a kernel-level HTTP listener
// that accepts connections, performs the actual asynchronous reads and writes, and
// reports their completions back via Server.Dispatch. The engine parses the wire
// format itself; the dispatcher never sees raw bytes besides body chunks.
//
// The engine guarantees at most one outstanding asynchronous operation per
// connection direction, and arms the next one only when a Decision instructs it to.
type Engine interface {
	// Listen acquires a native listener for the address.
	Listen(addr Address) (Handle, error)
	// StopListen releases a native listener. No events for it are delivered
	// afterwards, regardless of the returned error.
	StopListen(handle Handle) error
	// WriteHeaders synchronously pushes the response head of the connection to the
	// wire, honoring the Status and Disconnect fields. Used by the dispatcher on
	// upgrade rejection only.
	WriteHeaders(c *Conn) error
}

// EventType tags a completion delivered by the engine. The set is closed: Dispatch
// enumerates it exhaustively and treats anything else as ErrUnknownEvent.
type EventType uint8

const (
	// EventErrorInitializingRequest reports a failure to arm the accept of a new
	// request. Fatal for the whole listener.
	EventErrorInitializingRequest EventType = iota
	// EventErrorNewRequest reports a connection that failed before a context was
	// created for it.
	EventErrorNewRequest
	// EventNewRequest delivers a freshly accepted request with its head parsed.
	EventNewRequest
	// EventErrorInitializingReadBody reports a failure to arm a body read.
	EventErrorInitializingReadBody
	// EventEndRequest reports that the request body was fully consumed.
	EventEndRequest
	// EventErrorReadBody reports a failure of an armed body read.
	EventErrorReadBody
	// EventRequestBody delivers a received body chunk.
	EventRequestBody
	// EventErrorWriting reports a failed response write.
	EventErrorWriting
	// EventWritten reports that a queued write has completed.
	EventWritten
)

func (t EventType) String() string {
	switch t {
	case EventErrorInitializingRequest:
		return "error-initializing-request"
	case EventErrorNewRequest:
		return "error-new-request"
	case EventNewRequest:
		return "new-request"
	case EventErrorInitializingReadBody:
		return "error-initializing-read-body"
	case EventEndRequest:
		return "end-request"
	case EventErrorReadBody:
		return "error-read-body"
	case EventRequestBody:
		return "request-body"
	case EventErrorWriting:
		return "error-writing"
	case EventWritten:
		return "written"
	default:
		return "unknown"
	}
}

// Event is a single completion. Conn is set on connection-scoped events, Err on
// failure reports, Chunk on EventRequestBody only.
type Event struct {
	Type  EventType
	Conn  *Conn
	Err   error
	Chunk []byte
}
