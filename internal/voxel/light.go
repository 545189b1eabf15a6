package voxel

// LightMap stores one bit per voxel recording whether it is sky-visible.
// Bits are packed per column into uint16 groups of GroupHeight levels.
type LightMap struct {
	dims   Dims
	groups int
	cells  []uint16
}

// NewLightMap allocates an all-dark light map for the extent.
func NewLightMap(d Dims) (*LightMap, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	groups := d.Groups()
	return &LightMap{
		dims:   d,
		groups: groups,
		cells:  make([]uint16, d.Width*groups*d.Depth),
	}, nil
}

// Groups returns the number of groups per column.
func (l *LightMap) Groups() int {
	return l.groups
}

func (l *LightMap) index(x, g, z int) int {
	return x*(l.dims.Depth*l.groups) + z*l.groups + g
}

// Group returns the bitfield of group g at column (x, z), zero when out of bounds.
func (l *LightMap) Group(x, g, z int) uint16 {
	if !l.dims.ContainsColumn(x, z) || g < 0 || g >= l.groups {
		return 0
	}
	return l.cells[l.index(x, g, z)]
}

// ClearColumn zeroes every group of the column.
func (l *LightMap) ClearColumn(x, z int) {
	if !l.dims.ContainsColumn(x, z) {
		return
	}
	base := l.index(x, 0, z)
	clear(l.cells[base : base+l.groups])
}

// Mark sets the bit for level y of column (x, z).
func (l *LightMap) Mark(x, y, z int) {
	if !l.dims.Contains(x, y, z) {
		return
	}
	l.cells[l.index(x, y/GroupHeight, z)] |= 1 << (y % GroupHeight)
}

// Lit reports whether level y of column (x, z) is sky-visible.
// Out of bounds positions are reported lit, matching an open sky.
func (l *LightMap) Lit(x, y, z int) bool {
	if !l.dims.Contains(x, y, z) {
		return true
	}
	return l.cells[l.index(x, y/GroupHeight, z)]&(1<<(y%GroupHeight)) != 0
}
