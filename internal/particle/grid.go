package particle

import "math"

// Grid is a uniform spatial grid rebuilt every step by counting sort.
// Cells are cell x cell (x cell) wide; neighbors are searched in the
// surrounding 3x3 (3x3x3) block, so cell must be >= the interaction radius.
type Grid struct {
	cell               float64
	cols, rows, layers int

	start []int32 // start[c]..start[c+1] indexes into order
	order []int32
	keys  []int32
}

func NewGrid() *Grid {
	return &Grid{cols: 1, rows: 1, layers: 1, cell: 1, start: make([]int32, 2)}
}

// Reflow resizes the grid for new bounds and cell size. Particle data is not
// touched; the next Build re-buckets everything.
func (g *Grid) Reflow(b Bounds, cell float64) {
	if cell <= 0 || math.IsNaN(cell) {
		cell = 1
	}
	g.cell = cell
	g.cols = cellsFor(b.W, cell)
	g.rows = cellsFor(b.H, cell)
	g.layers = 1
	if b.D > 0 {
		g.layers = cellsFor(b.D, cell)
	}
	n := g.cols*g.rows*g.layers + 1
	if cap(g.start) < n {
		g.start = make([]int32, n)
	}
	g.start = g.start[:n]
}

func cellsFor(extent, cell float64) int {
	n := int(math.Ceil(extent / cell))
	if n < 1 {
		return 1
	}
	return n
}

func (g *Grid) Dims() (cols, rows, layers int) { return g.cols, g.rows, g.layers }
func (g *Grid) CellSize() float64              { return g.cell }

func (g *Grid) Cell(p Vec3) (cx, cy, cz int) {
	cx = clampIndex(int(p.X/g.cell), g.cols)
	cy = clampIndex(int(p.Y/g.cell), g.rows)
	cz = clampIndex(int(p.Z/g.cell), g.layers)
	return
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (g *Grid) key(cx, cy, cz int) int32 {
	return int32((cz*g.rows+cy)*g.cols + cx)
}

// Build buckets particles by cell.
func (g *Grid) Build(ps []Particle) {
	n := len(ps)
	if cap(g.order) < n {
		g.order = make([]int32, n)
		g.keys = make([]int32, n)
	}
	g.order = g.order[:n]
	g.keys = g.keys[:n]

	for i := range g.start {
		g.start[i] = 0
	}
	for i := range ps {
		k := g.key(g.Cell(ps[i].Pos))
		g.keys[i] = k
		g.start[k+1]++
	}
	for c := 1; c < len(g.start); c++ {
		g.start[c] += g.start[c-1]
	}

	// fill using a moving cursor per cell, then restore start
	for i := range ps {
		k := g.keys[i]
		g.order[g.start[k]] = int32(i)
		g.start[k]++
	}
	for c := len(g.start) - 1; c > 0; c-- {
		g.start[c] = g.start[c-1]
	}
	g.start[0] = 0
}

// Neighbors calls fn with the index of every particle bucketed in the cells
// around p, including the particle at p itself. Build must have run.
func (g *Grid) Neighbors(p Vec3, fn func(j int)) {
	cx, cy, cz := g.Cell(p)
	for z := cz - 1; z <= cz+1; z++ {
		if z < 0 || z >= g.layers {
			continue
		}
		for y := cy - 1; y <= cy+1; y++ {
			if y < 0 || y >= g.rows {
				continue
			}
			for x := cx - 1; x <= cx+1; x++ {
				if x < 0 || x >= g.cols {
					continue
				}
				k := g.key(x, y, z)
				for _, j := range g.order[g.start[k]:g.start[k+1]] {
					fn(int(j))
				}
			}
		}
	}
}
