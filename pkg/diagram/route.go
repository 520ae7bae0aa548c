package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/showcase/pkg/domain"
)

// Canvas dimensions that percentage coordinates are projected onto.
const (
	Width  = 1000.0
	Height = 560.0

	// StraightThreshold is the gap under which an edge is drawn as a direct line.
	StraightThreshold = 4.0
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the canvas position of a node's center.
func Center(n domain.Node) Point {
	return Point{X: n.X / 100 * Width, Y: n.Y / 100 * Height}
}

// PathKind tells how an edge was routed.
type PathKind string

const (
	PathStraight PathKind = "straight"
	PathHFirst   PathKind = "h-first"
	PathVFirst   PathKind = "v-first"
)

// Path is a routed edge: its points, in drawing order, and where its label goes.
type Path struct {
	Kind   PathKind `json:"kind"`
	Points []Point  `json:"points"`
	Label  Point    `json:"label"`
}

// Route draws an orthogonal path between two centers.
// Near axis-aligned pairs become a straight line. Otherwise the path bends once,
// horizontal-first when hinted so, or when unhinted and dx >= dy.
func Route(from, to Point, hint domain.Route) Path {
	dx := math.Abs(to.X - from.X)
	dy := math.Abs(to.Y - from.Y)

	if dy < StraightThreshold || dx < StraightThreshold {
		return Path{
			Kind:   PathStraight,
			Points: []Point{from, to},
			Label:  Point{X: (from.X + to.X) / 2, Y: (from.Y+to.Y)/2 - 10},
		}
	}

	hFirst := hint == domain.RouteHFirst || (hint == domain.RouteAuto && dx >= dy)
	if hFirst {
		return Path{
			Kind:   PathHFirst,
			Points: []Point{from, {X: to.X, Y: from.Y}, to},
			Label:  Point{X: to.X, Y: (from.Y+to.Y)/2 - 5},
		}
	}
	return Path{
		Kind:   PathVFirst,
		Points: []Point{from, {X: from.X, Y: to.Y}, to},
		Label:  Point{X: (from.X + to.X) / 2, Y: to.Y - 8},
	}
}

// D returns the SVG path data of p.
func (p Path) D() string {
	var b strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		fmt.Fprintf(&b, "%s %s", num(pt.X), num(pt.Y))
	}
	return b.String()
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
