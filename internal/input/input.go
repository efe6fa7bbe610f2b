// Package input turns raw terminal bytes into game events.
package input

import (
	"bufio"
	"sync"

	"github.com/tomz197/snake/internal/grid"
)

// EventType identifies what a key press means to the game.
type EventType int

const (
	EventDirection EventType = iota // A movement key
	EventQuit                       // Quit request
)

// Event is one decoded key press.
type Event struct {
	Type      EventType
	Direction grid.Direction // Set for EventDirection
}

// Input is everything pressed since the previous tick, in arrival order.
type Input struct {
	Events []Event
	Quit   bool // A quit key was pressed or the stream closed
}

// Directions returns the direction events in order.
func (in Input) Directions() []grid.Direction {
	var dirs []grid.Direction
	for _, ev := range in.Events {
		if ev.Type == EventDirection {
			dirs = append(dirs, ev.Direction)
		}
	}
	return dirs
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch        chan byte
	done      chan struct{} // Closed by Close; stops the reader goroutine
	exited    chan struct{} // Closed when the reader goroutine returns
	closeOnce sync.Once
	closed    bool
	pending   []byte // Incomplete escape sequence carried to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Call Close once the stream is no longer drained.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. The reader goroutine returns at its next
// byte instead of blocking on a full buffer.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream without blocking
// and decodes them into events.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	s.pending = rest
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf into events. A trailing partial escape sequence is
// returned in rest so the caller can prepend it to the next read.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, complete := escapeLength(buf[i:])
			if !complete {
				return in, append([]byte(nil), buf[i:]...)
			}
			if n > 1 {
				if d, ok := arrowDirection(buf[i+n-1]); ok {
					in.Events = append(in.Events, Event{Type: EventDirection, Direction: d})
				}
				i += n - 1
				continue
			}
		}

		if ev, ok := keyEvent(b); ok {
			in.Events = append(in.Events, ev)
			if ev.Type == EventQuit {
				in.Quit = true
			}
		}
	}
	return in, nil
}

// escapeLength returns the length of the escape sequence at the start of seq.
// CSI (ESC [ params final) and SS3 (ESC O final) sequences are consumed
// whole; any other ESC is a single byte. complete is false when seq ends
// before the final byte.
func escapeLength(seq []byte) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	switch seq[1] {
	case 'O':
		if len(seq) < 3 {
			return 0, false
		}
		return 3, true
	case '[':
		// Parameter and intermediate bytes are 0x20-0x3F.
		for j := 2; j < len(seq); j++ {
			if seq[j] < 0x20 || seq[j] > 0x3F {
				return j + 1, true
			}
		}
		return 0, false
	}
	return 1, true
}

// arrowDirection maps the final byte of an arrow-key CSI or SS3 sequence.
func arrowDirection(code byte) (grid.Direction, bool) {
	switch code {
	case 'A':
		return grid.Up, true
	case 'B':
		return grid.Down, true
	case 'C':
		return grid.Right, true
	case 'D':
		return grid.Left, true
	}
	return 0, false
}

// keyEvent maps a single byte to an event.
func keyEvent(b byte) (Event, bool) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl-C arrives as a byte in raw mode
		return Event{Type: EventQuit}, true
	case 'a', 'A', 'j', 'J':
		return Event{Type: EventDirection, Direction: grid.Left}, true
	case 'd', 'D', 'l', 'L':
		return Event{Type: EventDirection, Direction: grid.Right}, true
	case 'w', 'W', 'i', 'I':
		return Event{Type: EventDirection, Direction: grid.Up}, true
	case 's', 'S', 'k', 'K':
		return Event{Type: EventDirection, Direction: grid.Down}, true
	}
	return Event{}, false
}
