package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/muesli/termenv"
)

// DefaultSpeed is the simulated walking speed in meters per second.
const DefaultSpeed = 0.5

// tick is the simulation step used while walking.
const tick = 20 * time.Millisecond

// Robot implements ports.Robot by narrating its actions on a terminal and
// simulating travel time from the walking speed.
type Robot struct {
	out    *termenv.Output
	table  *lang.Table
	speed  float64
	failer func(target domain.Coordinates) bool

	mu       sync.Mutex
	position domain.Coordinates
	raised   domain.Side
}

// RobotOption configures a Robot.
type RobotOption func(*Robot)

// WithSpeed sets the walking speed in m/s. Non-positive values teleport.
func WithSpeed(speed float64) RobotOption {
	return func(r *Robot) {
		r.speed = speed
	}
}

// WithStart sets the initial position.
func WithStart(pos domain.Coordinates) RobotOption {
	return func(r *Robot) {
		r.position = pos
	}
}

// WithFailures makes MoveToward fail whenever fail returns true for a target.
func WithFailures(fail func(target domain.Coordinates) bool) RobotOption {
	return func(r *Robot) {
		r.failer = fail
	}
}

// NewRobot creates a simulated robot writing to w (Stdout when nil).
func NewRobot(w io.Writer, table *lang.Table, opts ...RobotOption) *Robot {
	if w == nil {
		w = os.Stdout
	}
	r := &Robot{
		out:   termenv.NewOutput(w),
		table: table,
		speed: DefaultSpeed,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Robot) say(color, format string, args ...any) {
	line := r.out.String(fmt.Sprintf(format, args...)).Foreground(r.out.Color(color))
	fmt.Fprintln(r.out, line)
}

// Prompt speaks the translated sentence.
func (r *Robot) Prompt(ctx context.Context, key string) {
	r.say("#a78bfa", "[robot] %q", r.table.Lookup(key))
}

// RaiseLimb raises the hand offered to the user.
func (r *Robot) RaiseLimb(ctx context.Context, side domain.Side) {
	r.mu.Lock()
	r.raised = side
	r.mu.Unlock()
	r.say("#818cf8", "[robot] raising %s hand", side)
}

// ResetPosture lowers any raised limb.
func (r *Robot) ResetPosture(ctx context.Context) {
	r.mu.Lock()
	r.raised = ""
	r.mu.Unlock()
	r.say("#818cf8", "[robot] resetting posture")
}

// Raised returns the limb currently raised, or "".
func (r *Robot) Raised() domain.Side {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.raised
}

// MoveToward walks in a straight line to target, advancing the position every tick.
func (r *Robot) MoveToward(ctx context.Context, target domain.Coordinates, heading float64) bool {
	r.say("#f472b6", "[robot] moving to %s heading %.2f rad", target, heading)
	if r.failer != nil && r.failer(target) {
		r.say("#fb7185", "[robot] navigation to %s failed", target)
		return false
	}

	if r.speed <= 0 {
		if ctx.Err() != nil {
			return false
		}
		r.setPosition(target)
		return true
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	step := r.speed * tick.Seconds()

	for {
		r.mu.Lock()
		pos := r.position
		dist := pos.DistanceTo(target)
		if dist <= step {
			r.position = target
			r.mu.Unlock()
			return true
		}
		f := step / dist
		r.position = domain.Coordinates{
			X: pos.X + (target.X-pos.X)*f,
			Y: pos.Y + (target.Y-pos.Y)*f,
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// HaltMotion reports where the robot stopped.
func (r *Robot) HaltMotion(ctx context.Context) domain.Coordinates {
	pos := r.Position()
	r.say("#fb7185", "[robot] motion stopped at %s", pos)
	return pos
}

// Position returns the simulated position.
func (r *Robot) Position() domain.Coordinates {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

func (r *Robot) setPosition(pos domain.Coordinates) {
	r.mu.Lock()
	r.position = pos
	r.mu.Unlock()
}
