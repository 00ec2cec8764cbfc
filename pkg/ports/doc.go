/*
Package ports defines the driven ports (interfaces) of the guide.

These interfaces decouple the guidance logic from the robot, the storage backends
and the configuration sources, so the same automaton runs against real hardware,
a simulated console robot or a test double.

# Key Interfaces

  - Robot: the controller collaborator that speaks, moves limbs and walks.
  - Responder: produces yes/no answers while the guide asks to cancel.
  - ProgressStore: persists the walk progress of a session.
  - DistributedLocker: keeps a session ID guided by a single process.
  - SiteLoader and LanguageLoader: load the static configuration.
*/
package ports
