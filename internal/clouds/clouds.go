package clouds

import "github.com/chewxy/math32"

const (
	defaultSpeed  = 0.6 // blocks per second
	defaultPeriod = 2048
)

// Drawer receives the cloud layer's scroll offset and altitude.
type Drawer interface {
	DrawClouds(offset, height float32)
}

// Clouds is a single scrolling cloud layer.
type Clouds struct {
	offset float32
	speed  float32
	height float32
	period float32
}

// New creates a cloud layer at the given altitude.
func New(height float32) *Clouds {
	return &Clouds{
		speed:  defaultSpeed,
		height: height,
		period: defaultPeriod,
	}
}

// Update scrolls the layer, wrapping at the texture period.
func (c *Clouds) Update(dt float64) {
	c.offset = math32.Mod(c.offset+c.speed*float32(dt), c.period)
}

// Offset returns the current scroll offset in blocks.
func (c *Clouds) Offset() float32 {
	return c.offset
}

func (c *Clouds) Height() float32 {
	return c.height
}

func (c *Clouds) Draw(d Drawer) {
	d.DrawClouds(c.offset, c.height)
}
