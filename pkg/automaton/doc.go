/*
Package automaton implements a finite-state automaton with timeout-bearing states.

States are registered once with AddState and validated as a whole by Start: every
declared transition target must exist and every timeout event must be handled.
After Start exactly one state is current.

# Event intake

Dispatch is the single entry point for external events and may be called from any
goroutine, including from inside state hooks. Events are appended to a FIFO queue
and drained by one goroutine at a time, so the transition steps never interleave:

 1. disarm the current timer, bump the epoch and cancel the state context
 2. run the current state's Exit hook
 3. look up the next state
 4. make it current
 5. arm its timer (if it is a timeout state) and run its Enter hook

# Epochs

Every state entry gets a new epoch. Timer callbacks and the emitter handed to
Enter capture the epoch of their entry; an event carrying a stale epoch is dropped
both when it is enqueued and when it is processed. A timeout can therefore never
be observed after its state has been left, even if the timer had already fired.
*/
package automaton
