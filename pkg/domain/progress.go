package domain

import "time"

// Progress is the snapshot of a route walk.
// Index is the next waypoint to reach; Index == len(waypoints) means arrived.
type Progress struct {
	SessionID string      `json:"session_id"`
	State     string      `json:"state"`
	Route     []string    `json:"route"`
	Index     int         `json:"index"`
	Position  Coordinates `json:"position"`
	Retries   int         `json:"retries"`
	Arrived   bool        `json:"arrived"`
	Failed    bool        `json:"failed"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Remaining returns the node ids not yet reached.
func (p Progress) Remaining() []string {
	if p.Index >= len(p.Route) {
		return nil
	}
	return p.Route[p.Index:]
}
