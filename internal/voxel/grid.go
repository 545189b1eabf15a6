package voxel

import "crosscraft/internal/block"

// Grid is a dense, bounds-checked array of block ids.
type Grid struct {
	dims  Dims
	cells []block.ID
}

// NewGrid allocates an all-air grid.
func NewGrid(d Dims) (*Grid, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Grid{
		dims:  d,
		cells: make([]block.ID, d.Width*d.Height*d.Depth),
	}, nil
}

// Dims returns the grid extent.
func (g *Grid) Dims() Dims {
	return g.dims
}

// Get returns the block at (x, y, z), or air when out of bounds.
func (g *Grid) Get(x, y, z int) block.ID {
	if !g.dims.Contains(x, y, z) {
		return block.Air
	}
	return g.cells[g.dims.Index(x, y, z)]
}

// Set writes the block at (x, y, z). Out of bounds writes are ignored.
// It returns the previous value and whether the write happened.
func (g *Grid) Set(x, y, z int, id block.ID) (block.ID, bool) {
	if !g.dims.Contains(x, y, z) {
		return block.Air, false
	}
	i := g.dims.Index(x, y, z)
	old := g.cells[i]
	g.cells[i] = id
	return old, true
}

// Column returns the contiguous y-ordered column at (x, z), or nil when out of bounds.
// The slice aliases grid storage.
func (g *Grid) Column(x, z int) []block.ID {
	if !g.dims.ContainsColumn(x, z) {
		return nil
	}
	base := g.dims.Index(x, 0, z)
	return g.cells[base : base+g.dims.Height : base+g.dims.Height]
}

// Fill sets every cell of the box [x0,x1)x[y0,y1)x[z0,z1), clipped to the extent.
func (g *Grid) Fill(x0, y0, z0, x1, y1, z1 int, id block.ID) {
	x0, x1 = clampRange(x0, x1, g.dims.Width)
	y0, y1 = clampRange(y0, y1, g.dims.Height)
	z0, z1 = clampRange(z0, z1, g.dims.Depth)
	for x := x0; x < x1; x++ {
		for z := z0; z < z1; z++ {
			base := g.dims.Index(x, 0, z)
			for y := y0; y < y1; y++ {
				g.cells[base+y] = id
			}
		}
	}
}

func clampRange(lo, hi, n int) (int, int) {
	return max(lo, 0), min(hi, n)
}
