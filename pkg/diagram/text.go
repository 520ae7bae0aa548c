package diagram

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/showcase/pkg/domain"
)

// CellKind tells a terminal renderer how to style a cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellZone
	CellEdge
	CellEdgeActive
	CellLabel
	CellNode
	CellNodeActive
	CellNodeCurrent
	CellBubble
)

// Cell is one character of a text canvas.
type Cell struct {
	Rune     rune
	Kind     CellKind
	NodeID   string
	Category domain.Category
}

// TextCanvas is a diagram rasterized onto a character grid.
type TextCanvas struct {
	Cols  int
	Rows  int
	Cells [][]Cell
}

const (
	bitUp uint8 = 1 << iota
	bitDown
	bitLeft
	bitRight
)

var lineRunes = map[uint8]rune{
	bitLeft | bitRight:                   '─',
	bitUp | bitDown:                      '│',
	bitRight | bitDown:                   '┌',
	bitLeft | bitDown:                    '┐',
	bitUp | bitRight:                     '└',
	bitUp | bitLeft:                      '┘',
	bitUp | bitDown | bitRight:           '├',
	bitUp | bitDown | bitLeft:            '┤',
	bitLeft | bitRight | bitDown:         '┬',
	bitLeft | bitRight | bitUp:           '┴',
	bitUp | bitDown | bitLeft | bitRight: '┼',
	bitLeft:                              '─',
	bitRight:                             '─',
	bitUp:                                '│',
	bitDown:                              '│',
}

type gridPoint struct{ col, row int }

type raster struct {
	c      *TextCanvas
	bits   [][]uint8
	active [][]bool
	dashed [][]bool
	owner  [][]string
}

// RenderText rasterizes s onto a cols x rows grid.
// Zones are drawn first, then edges, edge labels, nodes, arrows and the sample bubble.
func RenderText(s *Scene, cols, rows int) *TextCanvas {
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	r := &raster{c: &TextCanvas{Cols: cols, Rows: rows}}
	r.c.Cells = make([][]Cell, rows)
	r.bits = make([][]uint8, rows)
	r.active = make([][]bool, rows)
	r.dashed = make([][]bool, rows)
	r.owner = make([][]string, rows)
	for i := range rows {
		r.c.Cells[i] = make([]Cell, cols)
		for j := range r.c.Cells[i] {
			r.c.Cells[i][j] = Cell{Rune: ' '}
		}
		r.bits[i] = make([]uint8, cols)
		r.active[i] = make([]bool, cols)
		r.dashed[i] = make([]bool, cols)
		r.owner[i] = make([]string, cols)
	}

	for _, z := range s.Zones {
		r.zone(z)
	}
	for _, e := range s.Edges {
		r.edge(e)
	}
	r.flushEdges()
	for _, e := range s.Edges {
		if e.Label != "" {
			r.edgeLabel(e)
		}
	}
	for _, n := range s.Nodes {
		r.node(n)
	}
	for _, e := range s.Edges {
		r.arrow(e)
	}
	for _, n := range s.Nodes {
		if n.Current && n.SampleOutput != "" {
			r.bubble(n)
		}
	}
	return r.c
}

func (r *raster) grid(p Point) gridPoint {
	col := int(math.Round(p.X / Width * float64(r.c.Cols-1)))
	row := int(math.Round(p.Y / Height * float64(r.c.Rows-1)))
	return gridPoint{col: clamp(col, 0, r.c.Cols-1), row: clamp(row, 0, r.c.Rows-1)}
}

func (r *raster) in(col, row int) bool {
	return col >= 0 && col < r.c.Cols && row >= 0 && row < r.c.Rows
}

func (r *raster) set(col, row int, ch rune, kind CellKind) {
	if r.in(col, row) {
		r.c.Cells[row][col] = Cell{Rune: ch, Kind: kind}
	}
}

func (r *raster) zone(z PlacedZone) {
	tl := r.grid(Point{X: z.X, Y: z.Y})
	br := r.grid(Point{X: z.X + z.W, Y: z.Y + z.H})
	for col := tl.col; col <= br.col; col++ {
		r.set(col, tl.row, '┄', CellZone)
		r.set(col, br.row, '┄', CellZone)
	}
	for row := tl.row; row <= br.row; row++ {
		r.set(tl.col, row, '┆', CellZone)
		r.set(br.col, row, '┆', CellZone)
	}
	r.set(tl.col, tl.row, '╭', CellZone)
	r.set(br.col, tl.row, '╮', CellZone)
	r.set(tl.col, br.row, '╰', CellZone)
	r.set(br.col, br.row, '╯', CellZone)
	col := tl.col + 2
	for _, ch := range " " + z.Label + " " {
		if col >= br.col {
			break
		}
		r.set(col, tl.row, ch, CellZone)
		col++
	}
}

func (r *raster) edge(e PlacedEdge) {
	pts := make([]gridPoint, 0, len(e.Path.Points))
	for _, p := range e.Path.Points {
		pts = append(pts, r.grid(p))
	}
	for i := 1; i < len(pts); i++ {
		r.segment(pts[i-1], pts[i], e.Active, e.Dashed)
	}
}

// segment marks the connection bits of an axis-aligned run of cells.
// A straight edge that is not perfectly aligned is drawn as an L through its midpoint.
func (r *raster) segment(a, b gridPoint, active, dashed bool) {
	if a.row != b.row && a.col != b.col {
		mid := gridPoint{col: b.col, row: a.row}
		r.segment(a, mid, active, dashed)
		r.segment(mid, b, active, dashed)
		return
	}
	mark := func(col, row int, bits uint8) {
		if !r.in(col, row) {
			return
		}
		r.bits[row][col] |= bits
		r.active[row][col] = r.active[row][col] || active
		r.dashed[row][col] = r.dashed[row][col] || dashed
	}
	switch {
	case a.row == b.row && a.col != b.col:
		step, toward, back := 1, bitRight, bitLeft
		if b.col < a.col {
			step, toward, back = -1, bitLeft, bitRight
		}
		mark(a.col, a.row, toward)
		for col := a.col + step; col != b.col; col += step {
			mark(col, a.row, bitLeft|bitRight)
		}
		mark(b.col, b.row, back)
	case a.col == b.col && a.row != b.row:
		step, toward, back := 1, bitDown, bitUp
		if b.row < a.row {
			step, toward, back = -1, bitUp, bitDown
		}
		mark(a.col, a.row, toward)
		for row := a.row + step; row != b.row; row += step {
			mark(a.col, row, bitUp|bitDown)
		}
		mark(b.col, b.row, back)
	}
}

func (r *raster) flushEdges() {
	for row := range r.c.Rows {
		for col := range r.c.Cols {
			bits := r.bits[row][col]
			if bits == 0 {
				continue
			}
			ch := lineRunes[bits]
			if r.dashed[row][col] {
				switch bits {
				case bitLeft | bitRight:
					ch = '╌'
				case bitUp | bitDown:
					ch = '╎'
				}
			}
			kind := CellEdge
			if r.active[row][col] {
				kind = CellEdgeActive
			}
			r.set(col, row, ch, kind)
		}
	}
}

func (r *raster) edgeLabel(e PlacedEdge) {
	at := r.grid(e.Path.Label)
	text := []rune(e.Label)
	for _, row := range []int{at.row, at.row - 1, at.row + 1} {
		start := at.col - len(text)/2
		if r.free(start, row, len(text)) {
			for i, ch := range text {
				r.set(start+i, row, ch, CellLabel)
			}
			return
		}
	}
}

func (r *raster) free(col, row, n int) bool {
	if !r.in(col, row) || !r.in(col+n-1, row) {
		return false
	}
	for i := range n {
		k := r.c.Cells[row][col+i].Kind
		if k != CellEmpty && k != CellZone {
			return false
		}
	}
	return true
}

// NodeText returns the terminal rendition of a node label for its shape.
func NodeText(label string, shape domain.Shape) string {
	switch shape {
	case domain.ShapeCircle:
		return "(" + label + ")"
	case domain.ShapeDiamond:
		return "<" + label + ">"
	case domain.ShapePill:
		return "{" + label + "}"
	default:
		return "[" + label + "]"
	}
}

func (r *raster) node(n PlacedNode) {
	at := r.grid(n.Center)
	text := []rune(NodeText(n.Label, n.Shape))
	start := clamp(at.col-len(text)/2, 0, max(0, r.c.Cols-len(text)))
	kind := CellNode
	switch {
	case n.Current:
		kind = CellNodeCurrent
	case n.Active:
		kind = CellNodeActive
	}
	for i, ch := range text {
		col := start + i
		if !r.in(col, at.row) {
			break
		}
		r.c.Cells[at.row][col] = Cell{Rune: ch, Kind: kind, NodeID: n.ID, Category: n.Category}
		r.owner[at.row][col] = n.ID
	}
}

// arrow walks back from the target center along the final segment and places the
// head on the first cell outside the target box.
func (r *raster) arrow(e PlacedEdge) {
	n := len(e.Path.Points)
	if n < 2 {
		return
	}
	prev, end := r.grid(e.Path.Points[n-2]), r.grid(e.Path.Points[n-1])
	dc, dr, head := 0, 0, '▶'
	switch {
	case end.col > prev.col && end.row == prev.row:
		dc, head = 1, '▶'
	case end.col < prev.col && end.row == prev.row:
		dc, head = -1, '◀'
	case end.row > prev.row:
		dr, head = 1, '▼'
	case end.row < prev.row:
		dr, head = -1, '▲'
	default:
		return
	}
	col, row := end.col, end.row
	for r.in(col, row) && r.owner[row][col] == e.To {
		col, row = col-dc, row-dr
		if col == prev.col && row == prev.row {
			return
		}
	}
	if !r.in(col, row) || r.owner[row][col] != "" {
		return
	}
	kind := CellEdge
	if e.Active {
		kind = CellEdgeActive
	}
	r.set(col, row, head, kind)
}

func (r *raster) bubble(n PlacedNode) {
	at := r.grid(n.Center)
	text := []rune("» " + n.SampleOutput)
	row := at.row + 1
	if row >= r.c.Rows {
		row = at.row - 1
	}
	start := clamp(at.col-len(text)/2, 0, max(0, r.c.Cols-len(text)))
	for i, ch := range text {
		col := start + i
		if !r.in(col, row) || r.owner[row][col] != "" {
			continue
		}
		r.set(col, row, ch, CellBubble)
	}
}

// NodeAt returns the id of the node drawn at a cell.
func (c *TextCanvas) NodeAt(col, row int) (string, bool) {
	if row < 0 || row >= c.Rows || col < 0 || col >= c.Cols {
		return "", false
	}
	id := c.Cells[row][col].NodeID
	return id, id != ""
}

// Lines returns the canvas as plain text rows with trailing blanks trimmed.
func (c *TextCanvas) Lines() []string {
	lines := make([]string, c.Rows)
	for i, row := range c.Cells {
		var b strings.Builder
		b.Grow(len(row) * utf8.UTFMax)
		for _, cell := range row {
			b.WriteRune(cell.Rune)
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// String returns the canvas as plain text.
func (c *TextCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
