package stream

// Duplex is the request-side stream abstraction the dispatcher drives. The dispatcher
// only feeds completions into it (Push, End, Error, Close, Flushed) and reads the
// paused state back to decide whether the next body read may be armed. Pausing and
// resuming is owned by the consumer, never by the dispatcher.
//
// Each event carries a single subscriber seat. On ordinary requests the seats are
// taken by the request object, on upgraded connections the application reads the
// stream directly.
type Duplex interface {
	Paused() bool
	Pause()
	Resume()

	OnData(cb func(chunk []byte))
	OnEnd(cb func())
	OnError(cb func(err error))
	OnClose(cb func(abnormal bool))
	OnFlush(cb func())

	// Push forwards a received body chunk. The stream is free to pause itself
	// synchronously during the call.
	Push(chunk []byte)
	// End signals that the body was fully consumed.
	End()
	// Error reports a mid-flight failure. It is always followed by Close(true).
	Error(err error)
	// Close terminates the stream. abnormal is true when the connection went down
	// due to an error rather than a drained body.
	Close(abnormal bool)
	// Flushed signals that previously queued output has been written out.
	Flushed()
}
