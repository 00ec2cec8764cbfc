package console

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Record is one line written by JSONLines.
type Record struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// JSONLines is a headless front end: it reads events as JSON lines and writes
// lifecycle notifications as JSON lines.
//
// An input line may be a JSON string ("hand_touched"), an object
// ({"event": "hand_touched"}) or a bare event name.
type JSONLines struct {
	in     io.Reader
	logger *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines creates a handler over r and w (Stdin and Stdout when nil).
func NewJSONLines(r io.Reader, w io.Writer, logger *slog.Logger) *JSONLines {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &JSONLines{in: r, logger: logger, enc: json.NewEncoder(w)}
}

// Events reads input until EOF or ctx is done.
func (j *JSONLines) Events(ctx context.Context) (<-chan domain.Event, error) {
	out := make(chan domain.Event)
	go func() {
		defer close(out)
		s := bufio.NewScanner(j.in)
		for s.Scan() {
			text := strings.TrimSpace(s.Text())
			if text == "" {
				continue
			}
			ev, err := decodeEvent(text)
			if err != nil {
				j.logger.Warn("invalid input line", "input", text, "error", err)
				j.write(Record{Type: "error", Error: err.Error()})
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

func decodeEvent(text string) (domain.Event, error) {
	var name string
	switch {
	case strings.HasPrefix(text, "{"):
		var msg struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal([]byte(text), &msg); err != nil {
			return "", err
		}
		name = msg.Event
	case strings.HasPrefix(text, `"`):
		if err := json.Unmarshal([]byte(text), &name); err != nil {
			return "", err
		}
	default:
		name = text
	}
	return domain.ParseEvent(name)
}

// Write emits a record of the given type.
func (j *JSONLines) Write(kind string, data any) {
	j.write(Record{Type: kind, Data: data})
}

func (j *JSONLines) write(r Record) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(r); err != nil {
		j.logger.Debug("failed to write record", "type", r.Type, "error", err)
	}
}

// Hooks writes every lifecycle notification as a record.
func (j *JSONLines) Hooks() domain.LifecycleHooks {
	state := func(_ context.Context, e *domain.StateEvent) {
		j.Write(string(e.Type), e)
	}
	return domain.LifecycleHooks{
		OnStateEnter:   state,
		OnStateExit:    state,
		OnEventIgnored: state,
		OnTimeout:      state,
		OnWaypoint: func(_ context.Context, e *domain.WaypointEvent) {
			j.Write("waypoint", e)
		},
	}
}
