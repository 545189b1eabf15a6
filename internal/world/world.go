package world

import (
	"errors"
	"fmt"

	"crosscraft/internal/block"
	"crosscraft/internal/clouds"
	"crosscraft/internal/config"
	"crosscraft/internal/particle"
	"crosscraft/internal/profiling"
	"crosscraft/internal/voxel"

	"github.com/sirupsen/logrus"
)

var ErrNoGenerator = errors.New("world: a generator is required")

// Deps are the collaborators the world drives but does not implement.
type Deps struct {
	Generator Generator
	Mesher    Mesher
	Observer  Observer
}

// World owns the voxel and light storage, the chunk registry and the frame timing state.
// It is not safe for concurrent use; one caller drives Update and Draw once per frame.
type World struct {
	dims     voxel.Dims
	voxels   *voxel.Grid
	light    *voxel.LightMap
	registry *Registry

	sizeChunks     int
	renderDiameter int
	seed           int64
	tickInterval   float64
	randomTicks    int
	placeDelay     float64
	breakDelay     float64

	observerChunk   ChunkPos
	tickAccumulator float64
	placeCooldown   float64
	breakCooldown   float64
	ticks           uint64
	nextSerial      uint64

	gen       Generator
	mesher    Mesher
	observer  Observer
	clouds    *clouds.Clouds
	particles *particle.System

	log *logrus.Logger
}

// New allocates the world storage for cfg. It fails when the extent cannot be
// backed by storage or no generator is given.
func New(cfg config.Config, deps Deps, log *logrus.Logger) (*World, error) {
	if deps.Generator == nil {
		return nil, ErrNoGenerator
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	dims := cfg.Dims()
	voxels, err := voxel.NewGrid(dims)
	if err != nil {
		return nil, fmt.Errorf("allocate voxels: %w", err)
	}
	light, err := voxel.NewLightMap(dims)
	if err != nil {
		return nil, fmt.Errorf("allocate light map: %w", err)
	}

	mesher := deps.Mesher
	if mesher == nil {
		mesher = nopMesher{}
	}

	w := &World{
		dims:           dims,
		voxels:         voxels,
		light:          light,
		registry:       NewRegistry(cfg.World.SizeChunks),
		sizeChunks:     cfg.World.SizeChunks,
		renderDiameter: cfg.RenderDiameter(),
		seed:           cfg.World.Seed,
		tickInterval:   cfg.Tick.Interval,
		randomTicks:    cfg.Tick.RandomTicksPerChunk,
		placeDelay:     cfg.Tick.PlaceCooldown,
		breakDelay:     cfg.Tick.BreakCooldown,
		observerChunk:  noChunk,
		gen:            deps.Generator,
		mesher:         mesher,
		observer:       deps.Observer,
		clouds:         clouds.New(float32(dims.Height) + 8),
		particles: particle.NewSystem(particle.Options{
			Capacity: cfg.Particles.Capacity,
			PerBurst: cfg.Particles.PerBurst,
			Lifetime: float32(cfg.Particles.Lifetime),
			Gravity:  cfg.Particles.Gravity,
			Seed:     uint64(cfg.World.Seed),
		}),
		log: log,
	}

	log.WithFields(logrus.Fields{
		"extent":   dims.String(),
		"chunks":   cfg.World.SizeChunks,
		"diameter": w.renderDiameter,
	}).Info("world allocated")
	return w, nil
}

// Dims returns the world extent in blocks.
func (w *World) Dims() voxel.Dims {
	return w.dims
}

// SizeChunks returns the world edge in chunks.
func (w *World) SizeChunks() int {
	return w.sizeChunks
}

// Seed returns the world seed.
func (w *World) Seed() int64 {
	return w.seed
}

// Registry exposes the resident chunk set.
func (w *World) Registry() *Registry {
	return w.registry
}

// Chunk returns the resident chunk at pos.
func (w *World) Chunk(pos ChunkPos) (*Chunk, bool) {
	return w.registry.Get(pos)
}

// Clouds returns the cloud layer.
func (w *World) Clouds() *clouds.Clouds {
	return w.clouds
}

// Particles returns the particle system.
func (w *World) Particles() *particle.System {
	return w.particles
}

// Logger returns the world's logger.
func (w *World) Logger() *logrus.Logger {
	return w.log
}

// Block returns the block at (x, y, z); air outside the world.
func (w *World) Block(x, y, z int) block.ID {
	return w.voxels.Get(x, y, z)
}

// Lit reports whether the voxel at (x, y, z) is sky-visible.
func (w *World) Lit(x, y, z int) bool {
	return w.light.Lit(x, y, z)
}

// LightGroup returns the raw visibility bitfield of group g at column (x, z).
func (w *World) LightGroup(x, g, z int) uint16 {
	return w.light.Group(x, g, z)
}

// InBounds reports whether pos lies inside the world.
func (w *World) InBounds(pos BlockPos) bool {
	return w.dims.Contains(pos.X, pos.Y, pos.Z)
}

// SetBlock writes a voxel without notifying neighbours. The column's light is
// recomputed when the write changes whether the cell transmits light.
// It reports whether the stored id changed.
func (w *World) SetBlock(x, y, z int, id block.ID) bool {
	old, ok := w.voxels.Set(x, y, z, id)
	if !ok {
		return false
	}
	if old.TransmitsLight() != id.TransmitsLight() {
		w.RecomputeColumn(x, z)
	}
	return old != id
}

// FillColumn writes id to levels [y0, y1) of column (x, z) without relighting.
// Callers relight the chunk once they are done.
func (w *World) FillColumn(x, z, y0, y1 int, id block.ID) {
	w.voxels.Fill(x, y0, z, x+1, y1, z+1, id)
}

// Update advances the world by dt seconds: observer, decorations, the gated
// chunk tick, then streaming when the observer changed chunk.
func (w *World) Update(dt float64) {
	defer profiling.Track("world.Update")()

	if w.observer != nil {
		w.observer.Update(dt, w)
	}
	w.clouds.Update(dt)
	w.particles.Update(dt)

	w.tickAccumulator += dt
	w.placeCooldown -= dt
	w.breakCooldown -= dt

	if w.tickAccumulator > w.tickInterval {
		w.tickAccumulator = 0
		w.Tick()
	}

	if w.observer != nil {
		pos := w.observer.Position()
		if !Finite(pos) {
			w.log.WithField("position", pos).Warn("observer position is not finite, streaming skipped")
			return
		}
		w.StreamTo(ChunkAt(pos))
	}
}

// drawable is implemented by observers that render themselves.
type drawable interface {
	Draw()
}

// Draw submits every resident chunk in three ordered passes, then the decorations.
func (w *World) Draw(r Renderer) {
	defer profiling.Track("world.Draw")()
	chunks := w.registry.Chunks()
	for _, layer := range Layers {
		for _, c := range chunks {
			r.DrawChunk(c, layer)
		}
	}
	w.clouds.Draw(r)
	w.particles.Draw(r)
	if d, ok := w.observer.(drawable); ok {
		d.Draw()
	}
}

// Close releases every resident chunk.
func (w *World) Close() {
	for _, pos := range w.registry.Positions() {
		w.registry.Evict(pos)
	}
	w.observerChunk = noChunk
}
