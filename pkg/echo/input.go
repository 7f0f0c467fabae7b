package echo

import (
	"bufio"
	"io"
	"sync"
)

// Input yields console bytes without blocking, the way a UART exposes its
// receive buffer: callers poll for pending bytes and back off when there are
// none.
type Input interface {
	// ReadByte returns the next pending byte. ok is false when no input is
	// pending. err is io.EOF once the stream has ended and all pending
	// bytes were consumed.
	ReadByte() (b byte, ok bool, err error)
}

// Ensure ReaderInput implements Input.
var _ Input = (*ReaderInput)(nil)

// ReaderInput adapts a blocking io.Reader into a pollable Input by pumping
// it through a goroutine into a buffered channel.
type ReaderInput struct {
	bytes chan byte
	mu    sync.Mutex
	err   error
}

// NewReaderInput starts pumping r and returns the pollable input.
func NewReaderInput(r io.Reader) *ReaderInput {
	in := &ReaderInput{
		bytes: make(chan byte, 256),
	}
	go in.pump(r)
	return in
}

// ReadByte performs a non-blocking read of the next pending byte.
func (in *ReaderInput) ReadByte() (byte, bool, error) {
	select {
	case b, ok := <-in.bytes:
		if !ok {
			return 0, false, in.readErr()
		}
		return b, true, nil
	default:
		return 0, false, nil
	}
}

func (in *ReaderInput) pump(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			in.mu.Lock()
			in.err = err
			in.mu.Unlock()
			close(in.bytes)
			return
		}
		in.bytes <- b
	}
}

func (in *ReaderInput) readErr() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.err
}
