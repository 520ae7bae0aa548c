package domain

// Shape is the outline drawn for a node.
type Shape string

const (
	ShapeRect    Shape = "rect"
	ShapeDiamond Shape = "diamond"
	ShapeCircle  Shape = "circle"
	ShapePill    Shape = "pill"
)

// Category selects the color palette of a node.
type Category string

const (
	CategoryReasoning Category = "reasoning"
	CategoryTool      Category = "tool"
	CategoryMemory    Category = "memory"
	CategoryIO        Category = "io"
	CategoryDecision  Category = "decision"
	CategoryData      Category = "data"
)

// Categories lists every known category in legend order.
var Categories = []Category{
	CategoryReasoning, CategoryTool, CategoryMemory, CategoryIO, CategoryDecision, CategoryData,
}

// Route is an optional hint for the bend of an orthogonal edge.
type Route string

const (
	RouteAuto   Route = ""
	RouteHFirst Route = "h-first"
	RouteVFirst Route = "v-first"
)

// Node is a box in a workflow diagram.
// X and Y are percentages of the diagram's width and height.
type Node struct {
	ID           string   `json:"id" yaml:"id" jsonschema:"required"`
	Label        string   `json:"label" yaml:"label" jsonschema:"required"`
	Sub          string   `json:"sub,omitempty" yaml:"sub,omitempty"`
	X            float64  `json:"x" yaml:"x" jsonschema:"minimum=0,maximum=100"`
	Y            float64  `json:"y" yaml:"y" jsonschema:"minimum=0,maximum=100"`
	Shape        Shape    `json:"shape,omitempty" yaml:"shape,omitempty" jsonschema:"enum=rect,enum=diamond,enum=circle,enum=pill"`
	Category     Category `json:"category,omitempty" yaml:"category,omitempty" jsonschema:"enum=reasoning,enum=tool,enum=memory,enum=io,enum=decision,enum=data"`
	SampleOutput string   `json:"sample_output,omitempty" yaml:"sample_output,omitempty"`
}

// ShapeOrDefault returns the node shape, falling back to a rectangle.
func (n Node) ShapeOrDefault() Shape {
	switch n.Shape {
	case ShapeDiamond, ShapeCircle, ShapePill:
		return n.Shape
	default:
		return ShapeRect
	}
}

// Edge is a directed link between two nodes.
// Animated is accepted for authoring compatibility and has no rendering effect.
type Edge struct {
	From     string `json:"from" yaml:"from" jsonschema:"required"`
	To       string `json:"to" yaml:"to" jsonschema:"required"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Dashed   bool   `json:"dashed,omitempty" yaml:"dashed,omitempty"`
	Animated bool   `json:"animated,omitempty" yaml:"animated,omitempty"`
	Route    Route  `json:"route,omitempty" yaml:"route,omitempty" jsonschema:"enum=,enum=h-first,enum=v-first"`
}

// Zone is a labeled, dashed rectangle drawn beneath the nodes.
type Zone struct {
	Label string  `json:"label" yaml:"label"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	W     float64 `json:"w" yaml:"w"`
	H     float64 `json:"h" yaml:"h"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// LegendEntry maps a caption to a category swatch.
type LegendEntry struct {
	Label    string   `json:"label" yaml:"label"`
	Category Category `json:"category" yaml:"category"`
}

// Diagram is the full declarative input of the renderer.
type Diagram struct {
	Nodes  []Node        `json:"nodes" yaml:"nodes"`
	Edges  []Edge        `json:"edges" yaml:"edges"`
	Zones  []Zone        `json:"zones,omitempty" yaml:"zones,omitempty"`
	Legend []LegendEntry `json:"legend,omitempty" yaml:"legend,omitempty"`
}

// NodeByID returns the node with the given id.
func (d Diagram) NodeByID(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
