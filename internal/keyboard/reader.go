package keyboard

import (
	"context"
	"errors"
	"io"
	"os"

	"git.sr.ht/~spc/go-log"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("not a terminal")

// ReadKeys forwards key names read from in until ctx is done or in fails.
// The channel is closed on return.
func ReadKeys(ctx context.Context, in io.Reader, keys chan<- string) {
	defer close(keys)

	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)
		for _, name := range KeyNames(buf[:n]) {
			select {
			case keys <- name:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Errorf("cannot read keyboard input: %v", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Terminal puts a tty in raw mode so single key presses are delivered
// without waiting for return.
type Terminal struct {
	fd    int
	state *term.State
}

func MakeRaw(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Terminal{fd: fd, state: state}, nil
}

func (t *Terminal) Restore() error {
	if t == nil {
		return nil
	}
	return term.Restore(t.fd, t.state)
}
