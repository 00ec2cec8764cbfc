package domain

import (
	"fmt"
	"math"
)

// Event is a named signal dispatched to the automaton.
type Event string

// Controller events. EventTimeElapsed is synthesized by timeout states only.
const (
	EventHandTouched      Event = "hand_touched"
	EventHandReleased     Event = "hand_released"
	EventTimeElapsed      Event = "time_elapsed"
	EventResponseYes      Event = "response_yes"
	EventResponseNo       Event = "response_no"
	EventArrived          Event = "arrived"
	EventNavigationFailed Event = "navigation_failed"
)

// ParseEvent maps an external event name to an Event.
// Internal events (timeouts, walker signals) are not accepted.
func ParseEvent(name string) (Event, error) {
	switch ev := Event(name); ev {
	case EventHandTouched, EventHandReleased, EventResponseYes, EventResponseNo:
		return ev, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

// Side identifies the limb offered to the user.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// PickSide chooses the hand to raise from the first waypoint:
// waypoints on the negative x half-plane get the right hand.
func PickSide(first Coordinates) Side {
	if first.X < 0 {
		return SideRight
	}
	return SideLeft
}

// Coordinates is a point in the robot's world frame, in meters.
type Coordinates struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// HeadingTo returns the angle in radians from c towards target.
func (c Coordinates) HeadingTo(target Coordinates) float64 {
	return math.Atan2(target.Y-c.Y, target.X-c.X)
}

// DistanceTo returns the euclidean distance between c and target.
func (c Coordinates) DistanceTo(target Coordinates) float64 {
	return math.Hypot(target.X-c.X, target.Y-c.Y)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
}
