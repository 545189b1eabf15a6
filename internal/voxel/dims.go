package voxel

import (
	"errors"
	"fmt"
)

// GroupHeight is the number of vertical levels packed into one light group.
const GroupHeight = 16

// MaxCells caps the number of voxels a single grid may hold.
const MaxCells = 1 << 28

var (
	ErrInvalidDims = errors.New("voxel: dimensions must be positive")
	ErrTooLarge    = errors.New("voxel: extent exceeds storage limit")
)

// Dims is the fixed extent of the voxel world in blocks.
type Dims struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
}

// Validate checks the extent can be backed by storage.
func (d Dims) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDims, d.Width, d.Height, d.Depth)
	}
	if d.Width*d.Height*d.Depth > MaxCells {
		return fmt.Errorf("%w: %dx%dx%d", ErrTooLarge, d.Width, d.Height, d.Depth)
	}
	return nil
}

// Contains reports whether (x, y, z) lies inside the extent.
func (d Dims) Contains(x, y, z int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height && z >= 0 && z < d.Depth
}

// ContainsColumn reports whether the column (x, z) lies inside the extent.
func (d Dims) ContainsColumn(x, z int) bool {
	return x >= 0 && x < d.Width && z >= 0 && z < d.Depth
}

// Index returns the flat offset of (x, y, z) with y varying fastest.
// The caller is responsible for bounds.
func (d Dims) Index(x, y, z int) int {
	return x*(d.Height*d.Depth) + z*d.Height + y
}

// Groups returns how many light groups cover the height.
func (d Dims) Groups() int {
	return (d.Height + GroupHeight - 1) / GroupHeight
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth)
}
