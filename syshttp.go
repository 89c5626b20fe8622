package syshttp

import (
	"github.com/indigo-web/syshttp/config"
	"github.com/indigo-web/syshttp/http"
	"github.com/indigo-web/syshttp/stream"
	"github.com/rs/zerolog"
)

type (
	// RequestCallback is invoked on every ordinary request with both message
	// objects attached.
	RequestCallback func(request *http.Request, response *http.Response)
	// UpgradeCallback is invoked on a request asking to switch protocols. The
	// application reads directly off the stream; initial carries body bytes that
	// arrived along with the head, which is always empty as of now.
	UpgradeCallback func(request *http.Request, s stream.Duplex, initial []byte)
	// ClientErrorCallback is invoked on connections that failed before a context
	// was created for them.
	ClientErrorCallback func(err error)
)

// Server is a single-listener dispatcher. It routes completion events arriving
// from the engine to per-request handlers, keeps the per-connection pending-flag
// bookkeeping, and exposes the resulting lifecycle to the application via
// callbacks.
//
// All methods must be called from the single event-processing thread.
type Server struct {
	engine   Engine
	registry *Registry
	cfg      *config.Config
	log      zerolog.Logger

	id        int
	handle    Handle
	listening bool

	onListening   []func()
	onClose       []func()
	onRequest     []RequestCallback
	onUpgrade     []UpgradeCallback
	onClientError []ClientErrorCallback
}

// New returns a new Server instance, dispatching events of the given engine. The
// registry is injected rather than ambient, so a fresh one can be constructed per
// test; production setups share a single registry between all servers.
func New(engine Engine, registry *Registry) *Server {
	return &Server{
		engine:   engine,
		registry: registry,
		cfg:      config.Default(),
		log:      zerolog.Nop(),
	}
}

// Tune replaces the default config.
func (s *Server) Tune(cfg *config.Config) *Server {
	s.cfg = cfg
	return s
}

// Log attaches a logger. By default the server is silent.
func (s *Server) Log(log zerolog.Logger) *Server {
	s.log = log
	return s
}

// OnRequest subscribes to ordinary requests.
func (s *Server) OnRequest(cb RequestCallback) *Server {
	s.onRequest = append(s.onRequest, cb)
	return s
}

// OnUpgrade subscribes to protocol upgrades. With no subscription present,
// upgrade requests are rejected with 400 and disconnected.
func (s *Server) OnUpgrade(cb UpgradeCallback) *Server {
	s.onUpgrade = append(s.onUpgrade, cb)
	return s
}

// OnClientError subscribes to failures of connections no context exists for yet.
func (s *Server) OnClientError(cb ClientErrorCallback) *Server {
	s.onClientError = append(s.onClientError, cb)
	return s
}

// OnListening calls the callback once the native listener is acquired.
func (s *Server) OnListening(cb func()) *Server {
	s.onListening = append(s.onListening, cb)
	return s
}

// OnClose calls the callback once the native listener is released.
func (s *Server) OnClose(cb func()) *Server {
	s.onClose = append(s.onClose, cb)
	return s
}

// ID returns the listener id the server is registered under. Valid only while
// listening.
func (s *Server) ID() int {
	return s.id
}

// Listening tells whether the server currently holds a native listener.
func (s *Server) Listening() bool {
	return s.listening
}

// Listen acquires a native listener on the address, registers the server in the
// registry under a fresh listener id and announces the listening lifecycle event.
// The optional callback is equivalent to subscribing via OnListening beforehand.
//
// Returns ErrAlreadyListening if a native listener is already held,
// ErrInvalidArgument on a malformed address, or a NativeError if the engine
// refused the registration.
func (s *Server) Listen(addr Address, callback ...func()) error {
	if s.listening {
		return ErrAlreadyListening
	}

	addr, err := addr.normalize()
	if err != nil {
		return err
	}

	handle, err := s.engine.Listen(addr)
	if err != nil {
		return nativeErr("listen", err)
	}

	s.handle = handle
	s.listening = true
	s.id = s.registry.add(s)
	s.log.Info().
		Int("id", s.id).
		Str("addr", addr.String()).
		Msg("listening")

	for _, cb := range callback {
		if cb != nil {
			cb()
		}
	}
	for _, cb := range s.onListening {
		cb()
	}

	return nil
}

// Close releases the native listener. A no-op if none is held. Even if the native
// stop call fails, the registry entry and the handle are dropped and the close
// lifecycle event is announced, as the engine delivers no events for the listener
// anymore; the failure is still reported as a NativeError.
func (s *Server) Close() error {
	if !s.listening {
		return nil
	}

	stopErr := s.engine.StopListen(s.handle)

	s.registry.remove(s.id)
	s.handle = 0
	s.listening = false
	s.log.Info().
		Int("id", s.id).
		Msg("closed")

	for _, cb := range s.onClose {
		cb()
	}

	if stopErr != nil {
		return nativeErr("close", stopErr)
	}

	return nil
}
