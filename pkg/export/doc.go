// Package export renders slide diagrams at a chosen walkthrough position.
//
// Slides are mounted on a still clock, moved to the requested mode, scenario, step or
// focus, and laid out once. The resulting scene is written as SVG, Mermaid or text.
package export
