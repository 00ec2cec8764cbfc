/*
Package domain contains the shared vocabulary of the Wayfinder guide.

It defines the events exchanged between the controller and the automaton, the
geometry used to describe waypoints, the progress snapshot of a walk and the
lifecycle hooks used for observability. This package is kept free of I/O and
persistence so every other package can depend on it.

# Key Entities

  - Event: A named signal fed into the automaton (touch, release, responses, timeouts).
  - Coordinates: A 2-D point in the robot's world frame.
  - Side: The hand offered to the user.
  - Progress: The walk snapshot (last reached waypoint, position, retries).
  - LifecycleHooks: Callbacks fired on state entry/exit, ignored events and timeouts.
*/
package domain
