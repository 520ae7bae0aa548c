/*
Package observability turns presentation lifecycle events into Prometheus metrics.

Metrics.Hooks returns domain.LifecycleHooks that count slide visits and walkthrough
steps; the HTTP adapter records renders and session commands directly.
*/
package observability
