/*
Package diagram lays out and renders declarative workflow diagrams.

Layout is a pure function of a domain.Diagram and a Highlight (the active set and current
step produced by a sequencer). Node positions are author-specified percentages; the
package only converts them to the 1000x560 canvas, routes edges as one or two axis-aligned
segments, and decides which nodes and edges are highlighted.

Authoring mistakes fail soft: an edge whose endpoint does not resolve is dropped from the
scene and an unknown category falls back to the io palette.

Renderers:
  - WriteSVG: standalone SVG document.
  - RenderText: a character grid for terminals, with per-cell kinds for styling.
*/
package diagram
