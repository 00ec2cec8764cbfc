/*
Package observability provides tools for monitoring the guide.

It includes Prometheus metrics fed by lifecycle hooks and structured logging hooks
that audit every transition, timeout and waypoint. Both return
domain.LifecycleHooks values which can be combined with Merge.
*/
package observability
