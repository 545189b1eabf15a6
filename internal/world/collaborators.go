package world

import (
	"crosscraft/internal/clouds"
	"crosscraft/internal/particle"

	"github.com/go-gl/mathgl/mgl32"
)

// Generator fills a chunk's voxel footprint. It must be deterministic for a
// given coordinate and seed.
type Generator interface {
	Generate(c *Chunk, w *World)
}

// Mesher builds the render resource of a chunk from current world data.
type Mesher interface {
	Build(c *Chunk, w *World)
}

// BatchMesher is a Mesher that can build several chunks in one call. The
// world is not modified while BuildAll runs.
type BatchMesher interface {
	Mesher
	BuildAll(cs []*Chunk, w *World)
}

// Observer is the entity the streaming window follows.
type Observer interface {
	Position() mgl32.Vec3
	Update(dt float64, w *World)
}

// Layer is one of the ordered draw sub-passes.
type Layer int

const (
	LayerOpaque Layer = iota
	LayerFlora
	LayerTransparent
)

// Layers lists the draw sub-passes in submission order.
var Layers = [...]Layer{LayerOpaque, LayerFlora, LayerTransparent}

func (l Layer) String() string {
	switch l {
	case LayerOpaque:
		return "opaque"
	case LayerFlora:
		return "flora"
	case LayerTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Renderer draws everything the world owns.
type Renderer interface {
	DrawChunk(c *Chunk, layer Layer)
	clouds.Drawer
	particle.Drawer
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(c *Chunk, w *World)

func (f GeneratorFunc) Generate(c *Chunk, w *World) { f(c, w) }

// MesherFunc adapts a function to Mesher.
type MesherFunc func(c *Chunk, w *World)

func (f MesherFunc) Build(c *Chunk, w *World) { f(c, w) }

type nopMesher struct{}

func (nopMesher) Build(*Chunk, *World) {}
