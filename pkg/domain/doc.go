/*
Package domain contains the core models shared by the showcase packages.

It defines the declarative diagram data (nodes, edges, zones, legends) that slides are
authored with, and the snapshot of a presenter session that the stores persist. This
package is kept pure and free of I/O, timers and rendering concerns.

# Key Entities

  - Diagram: author-positioned nodes and edges, plus decorative zones and a legend.
  - Node: a box in a diagram with percentage coordinates, a shape and a category.
  - Edge: a directed link between two node ids with an optional routing hint.
  - Snapshot: the serializable position of a presenter session (slide, mode, step).
*/
package domain
