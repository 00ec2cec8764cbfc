package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"golang.org/x/term"
)

// shortcuts maps single keys to controller events.
var shortcuts = map[rune]domain.Event{
	't': domain.EventHandTouched,
	'r': domain.EventHandReleased,
	'y': domain.EventResponseYes,
	'n': domain.EventResponseNo,
}

// Keyboard implements ports.EventSource over a reader. On a terminal it reads
// single keystrokes in raw mode; otherwise it reads one command per line.
// Pressing q or Ctrl-C ends the stream.
type Keyboard struct {
	in     io.Reader
	logger *slog.Logger
}

// NewKeyboard creates a keyboard reading from r (Stdin when nil).
func NewKeyboard(r io.Reader, logger *slog.Logger) *Keyboard {
	if r == nil {
		r = os.Stdin
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Keyboard{in: r, logger: logger}
}

// Events starts reading input. The channel is closed at EOF, on quit or when
// ctx is done; the terminal mode is restored at that point.
func (k *Keyboard) Events(ctx context.Context) (<-chan domain.Event, error) {
	restore := func() {}
	raw := false
	if f, ok := k.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return nil, err
		}
		raw = true
		restore = func() { _ = term.Restore(int(f.Fd()), state) }
	}

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		defer restore()

		var next func() (domain.Event, bool, error)
		if raw {
			next = k.keystrokes(bufio.NewReader(k.in))
		} else {
			next = k.lines(bufio.NewScanner(k.in))
		}

		for {
			ev, quit, err := next()
			if err != nil || quit {
				return
			}
			if ev == "" {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (k *Keyboard) keystrokes(r *bufio.Reader) func() (domain.Event, bool, error) {
	return func() (domain.Event, bool, error) {
		c, _, err := r.ReadRune()
		if err != nil {
			return "", true, err
		}
		c = unicode.ToLower(c)
		if c == 'q' || c == 0x03 {
			return "", true, nil
		}
		return shortcuts[c], false, nil
	}
}

func (k *Keyboard) lines(s *bufio.Scanner) func() (domain.Event, bool, error) {
	return func() (domain.Event, bool, error) {
		if !s.Scan() {
			return "", true, s.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(s.Text()))
		switch {
		case cmd == "":
			return "", false, nil
		case cmd == "q" || cmd == "quit":
			return "", true, nil
		}
		if ev, ok := ParseCommand(cmd); ok {
			return ev, false, nil
		}
		k.logger.Warn("unknown command", "input", cmd)
		return "", false, nil
	}
}

// ParseCommand maps a shortcut letter or a full event name to an event.
func ParseCommand(cmd string) (domain.Event, bool) {
	if r := []rune(cmd); len(r) == 1 {
		ev, ok := shortcuts[unicode.ToLower(r[0])]
		return ev, ok
	}
	ev, err := domain.ParseEvent(cmd)
	return ev, err == nil
}
