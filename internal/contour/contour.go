// Package contour traces iso-lines through a regularly sampled 2D surface
// using marching squares.
//
// Positions are reported in fractional grid indices: X runs along columns and
// Y along rows, so a vertex at {X: 3.25, Y: 10} lies on row 10, a quarter of
// the way from column 3 to column 4.
package contour

import (
	"cmp"
	"slices"
)

// Surface is any row-major grid of samples. gonum's mat.Matrix satisfies it.
type Surface interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// Point is a fractional grid position.
type Point struct {
	X float64 // column
	Y float64 // row
}

// Path is one connected iso-line. Closed paths do not repeat their first point.
type Path struct {
	Points []Point
	Closed bool
}

// edge identifies a grid edge by its first corner. An edge with down set
// joins (r, c) and (r+1, c); otherwise it joins (r, c) and (r, c+1).
type edge struct {
	r, c int
	down bool
}

func compareEdges(a, b edge) int {
	if n := cmp.Compare(a.r, b.r); n != 0 {
		return n
	}
	if n := cmp.Compare(a.c, b.c); n != 0 {
		return n
	}
	switch {
	case a.down == b.down:
		return 0
	case b.down:
		return -1
	default:
		return 1
	}
}

// Trace returns the iso-lines of s at level. A sample counts as above the
// level when it is strictly greater than it.
//
// The result is deterministic: open paths come first, each oriented to start
// at its lower (row, column) end and sorted by that start point; closed loops
// follow in scan order. Surfaces smaller than 2x2 have no cells and yield nil.
func Trace(s Surface, level float64) []Path {
	rows, cols := s.Dims()
	if rows < 2 || cols < 2 {
		return nil
	}

	t := tracer{s: s, level: level, links: make(map[edge][]edge)}
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			t.cell(i, j)
		}
	}
	if len(t.links) == 0 {
		return nil
	}

	keys := make([]edge, 0, len(t.links))
	for e := range t.links {
		keys = append(keys, e)
	}
	slices.SortFunc(keys, compareEdges)

	visited := make(map[edge]bool, len(keys))
	var open, closed []Path
	for _, e := range keys {
		if !visited[e] && len(t.links[e]) == 1 {
			open = append(open, t.walk(e, visited, false))
		}
	}
	for _, e := range keys {
		if !visited[e] {
			closed = append(closed, t.walk(e, visited, true))
		}
	}

	for i := range open {
		pts := open[i].Points
		if comparePoints(pts[len(pts)-1], pts[0]) < 0 {
			slices.Reverse(pts)
		}
	}
	slices.SortStableFunc(open, func(a, b Path) int {
		return comparePoints(a.Points[0], b.Points[0])
	})

	return append(open, closed...)
}

func comparePoints(a, b Point) int {
	if n := cmp.Compare(a.Y, b.Y); n != 0 {
		return n
	}
	return cmp.Compare(a.X, b.X)
}

type tracer struct {
	s     Surface
	level float64
	links map[edge][]edge
}

func (t *tracer) above(i, j int) bool {
	return t.s.At(i, j) > t.level
}

func (t *tracer) link(a, b edge) {
	t.links[a] = append(t.links[a], b)
	t.links[b] = append(t.links[b], a)
}

// cell records the segments crossing the cell whose top-left corner is (i, j).
func (t *tracer) cell(i, j int) {
	tl, tr := t.above(i, j), t.above(i, j+1)
	bl, br := t.above(i+1, j), t.above(i+1, j+1)

	top := edge{r: i, c: j}
	bottom := edge{r: i + 1, c: j}
	left := edge{r: i, c: j, down: true}
	right := edge{r: i, c: j + 1, down: true}

	var crossed []edge
	if tl != tr {
		crossed = append(crossed, top)
	}
	if tr != br {
		crossed = append(crossed, right)
	}
	if bl != br {
		crossed = append(crossed, bottom)
	}
	if tl != bl {
		crossed = append(crossed, left)
	}

	switch len(crossed) {
	case 2:
		t.link(crossed[0], crossed[1])
	case 4:
		// Saddle. The cell mean decides which diagonal pair stays connected;
		// the other two corners are cut off individually.
		mean := (t.s.At(i, j) + t.s.At(i, j+1) + t.s.At(i+1, j) + t.s.At(i+1, j+1)) / 4
		if tl == (mean > t.level) {
			t.link(top, right)
			t.link(bottom, left)
		} else {
			t.link(left, top)
			t.link(right, bottom)
		}
	}
}

func (t *tracer) walk(start edge, visited map[edge]bool, closed bool) Path {
	visited[start] = true
	pts := []Point{t.point(start)}
	cur := start
	for {
		next, ok := t.unvisited(cur, visited)
		if !ok {
			break
		}
		visited[next] = true
		pts = append(pts, t.point(next))
		cur = next
	}
	return Path{Points: pts, Closed: closed}
}

func (t *tracer) unvisited(e edge, visited map[edge]bool) (edge, bool) {
	for _, n := range t.links[e] {
		if !visited[n] {
			return n, true
		}
	}
	return edge{}, false
}

// point interpolates the level crossing along e.
func (t *tracer) point(e edge) Point {
	a := t.s.At(e.r, e.c)
	if e.down {
		b := t.s.At(e.r+1, e.c)
		return Point{X: float64(e.c), Y: float64(e.r) + (t.level-a)/(b-a)}
	}
	b := t.s.At(e.r, e.c+1)
	return Point{X: float64(e.c) + (t.level-a)/(b-a), Y: float64(e.r)}
}
