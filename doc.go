/*
Package wayfinder guides a person through a building with a humanoid robot.

The guide waits for the user to take the robot's hand, then walks a
precomputed route waypoint by waypoint. Letting go pauses the walk and asks
whether to cancel; taking the hand again resumes it. Every waiting state
gives up after a configurable timeout.

# Concept

Two subsystems carry the logic:

  - A timeout-aware state machine (pkg/automaton) sequencing the interaction
    steady → moving → ask → hold → quit. Timers are scoped to a state entry
    so a timeout can never fire after its state was left.
  - An accessibility-aware router (pkg/routing) computing the cheapest route
    that only uses edges the user's accessibility level unlocks.

Robot I/O lives behind ports.Robot. The console adapter simulates it in a
terminal; a real robot binding implements the same five methods.

# Usage

	site, err := file.NewSiteLoader("site.yaml").LoadSite(ctx)
	if err != nil {
		log.Fatal(err)
	}

	plan, err := wayfinder.PlanRoute(site, "A", "D", 1)
	if err != nil {
		log.Fatal(err) // *wayfinder.UnreachableError carries the level that would work
	}

	guide, err := wayfinder.New(plan, robot, wayfinder.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}
	if err := guide.Start(ctx); err != nil {
		log.Fatal(err)
	}

	// Feed touch sensor events.
	_ = guide.Dispatch(ctx, domain.EventHandTouched)
	<-guide.Done()
*/
package wayfinder
