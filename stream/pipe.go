package stream

// Pipe is the inbuilt Duplex implementation. Received chunks are handed to the
// attached consumer directly; with no consumer attached (or while paused) they are
// buffered instead, and once the buffered amount reaches the high watermark, the
// pipe pauses itself until the consumer drains it via Resume.
type Pipe struct {
	highWatermark int
	buff          []byte
	paused        bool
	ended         bool
	endDelivered  bool
	closed        bool
	err           error

	onData  func([]byte)
	onEnd   func()
	onError func(error)
	onClose func(abnormal bool)
	onFlush func()
}

// NewPipe returns a pipe, pausing itself at highWatermark buffered bytes. Zero or
// negative watermark pauses the pipe on the first unconsumed chunk.
func NewPipe(highWatermark int) *Pipe {
	return &Pipe{
		highWatermark: highWatermark,
	}
}

// OnData attaches the chunk consumer. Previously buffered data isn't replayed
// implicitly, call Resume for that.
func (p *Pipe) OnData(cb func(chunk []byte)) {
	p.onData = cb
}

func (p *Pipe) OnEnd(cb func()) {
	p.onEnd = cb
	p.finish()
}

func (p *Pipe) OnError(cb func(err error)) {
	p.onError = cb
}

func (p *Pipe) OnClose(cb func(abnormal bool)) {
	p.onClose = cb
}

func (p *Pipe) OnFlush(cb func()) {
	p.onFlush = cb
}

func (p *Pipe) Paused() bool {
	return p.paused
}

func (p *Pipe) Pause() {
	p.paused = true
}

// Resume unpauses the pipe and replays buffered data through the consumer, if any
// is attached.
func (p *Pipe) Resume() {
	p.paused = false
	p.drain()
}

func (p *Pipe) Push(chunk []byte) {
	if p.closed {
		return
	}

	if p.onData != nil && !p.paused && len(p.buff) == 0 {
		p.onData(chunk)
		return
	}

	p.buff = append(p.buff, chunk...)
	if len(p.buff) >= p.highWatermark {
		p.paused = true
	}
}

func (p *Pipe) End() {
	p.ended = true
	p.finish()
}

func (p *Pipe) Error(err error) {
	p.err = err

	if p.onError != nil {
		p.onError(err)
	}
}

// Err returns the last reported error, otherwise nil.
func (p *Pipe) Err() error {
	return p.err
}

func (p *Pipe) Close(abnormal bool) {
	if p.closed {
		return
	}

	p.closed = true
	if p.onClose != nil {
		p.onClose(abnormal)
	}
}

func (p *Pipe) Flushed() {
	if p.onFlush != nil {
		p.onFlush()
	}
}

// Buffered returns the amount of bytes received but not yet consumed.
func (p *Pipe) Buffered() int {
	return len(p.buff)
}

func (p *Pipe) drain() {
	if p.onData != nil && len(p.buff) > 0 {
		// hand off the buffer instead of truncating it, as the consumer may
		// retain the slice
		data := p.buff
		p.buff = nil
		p.onData(data)
	}

	p.finish()
}

func (p *Pipe) finish() {
	if p.ended && !p.endDelivered && len(p.buff) == 0 && p.onEnd != nil {
		p.endDelivered = true
		p.onEnd()
	}
}
