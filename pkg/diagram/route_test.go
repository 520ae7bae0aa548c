package diagram

import (
	"testing"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func pct(x, y float64) Point {
	return Center(domain.Node{X: x, Y: y})
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		from  Point
		to    Point
		hint  domain.Route
		kind  PathKind
		elbow Point
	}{
		{
			name:  "wide gap goes horizontal first",
			from:  pct(0, 50),
			to:    pct(50, 10),
			kind:  PathHFirst,
			elbow: Point{X: 500, Y: 280},
		},
		{
			name:  "tall gap goes vertical first",
			from:  pct(0, 10),
			to:    pct(10, 80),
			kind:  PathVFirst,
			elbow: Point{X: 0, Y: 448},
		},
		{
			name:  "hint overrides distance",
			from:  pct(0, 10),
			to:    pct(10, 80),
			hint:  domain.RouteHFirst,
			kind:  PathHFirst,
			elbow: Point{X: 100, Y: 56},
		},
		{
			name:  "v-first hint on a wide gap",
			from:  pct(0, 50),
			to:    pct(50, 10),
			hint:  domain.RouteVFirst,
			kind:  PathVFirst,
			elbow: Point{X: 0, Y: 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Route(tt.from, tt.to, tt.hint)
			assert.Equal(t, tt.kind, p.Kind)
			if assert.Len(t, p.Points, 3) {
				assert.InDelta(t, tt.elbow.X, p.Points[1].X, 0.001)
				assert.InDelta(t, tt.elbow.Y, p.Points[1].Y, 0.001)
			}
		})
	}
}

func TestRoute_StraightBelowThreshold(t *testing.T) {
	p := Route(Point{X: 100, Y: 200}, Point{X: 400, Y: 203}, domain.RouteVFirst)
	assert.Equal(t, PathStraight, p.Kind)
	assert.Len(t, p.Points, 2)

	p = Route(Point{X: 100, Y: 200}, Point{X: 102, Y: 400}, domain.RouteAuto)
	assert.Equal(t, PathStraight, p.Kind)
}

func TestRoute_LabelAnchor(t *testing.T) {
	straight := Route(Point{X: 100, Y: 100}, Point{X: 300, Y: 100}, domain.RouteAuto)
	assert.Equal(t, Point{X: 200, Y: 90}, straight.Label)

	h := Route(Point{X: 100, Y: 100}, Point{X: 400, Y: 200}, domain.RouteHFirst)
	assert.Equal(t, Point{X: 400, Y: 145}, h.Label)

	v := Route(Point{X: 100, Y: 100}, Point{X: 400, Y: 200}, domain.RouteVFirst)
	assert.Equal(t, Point{X: 250, Y: 192}, v.Label)
}

func TestPath_D(t *testing.T) {
	p := Route(Point{X: 60, Y: 280}, Point{X: 280, Y: 168}, domain.RouteHFirst)
	assert.Equal(t, "M 60 280 L 280 280 L 280 168", p.D())

	p = Route(Point{X: 0.5, Y: 10}, Point{X: 300.25, Y: 10}, domain.RouteAuto)
	assert.Equal(t, "M 0.5 10 L 300.25 10", p.D())
}
