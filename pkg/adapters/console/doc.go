// Package console provides a simulated robot, a keyboard event source and a
// simulated yes/no responder so the guide can run without hardware.
package console
