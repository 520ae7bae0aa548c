// Package deck owns which slide is showing and mediates navigation.
//
// A Controller mounts one slide at a time. Every successful navigation bumps the render
// generation, closes the previous slide instance and builds a fresh one from its Factory,
// so re-entering a slide always restarts its walkthrough from idle. A settle delay guards
// against overlapping navigations: requests made while it runs are dropped, not queued.
package deck
