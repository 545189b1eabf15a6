package particle

import (
	"encoding/binary"

	"crosscraft/internal/block"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// Particle is a small textured quad cut out of a block's atlas tile.
type Particle struct {
	Position mgl32.Vec3
	// UV holds the four corners (u,v) of the footprint, counter-clockwise from the minimum.
	UV       [8]float32
	Velocity mgl32.Vec3
	Life     float32
}

// Drawer submits the live particles.
type Drawer interface {
	DrawParticles(ps []Particle)
}

// Options configures a particle system.
type Options struct {
	Capacity int
	PerBurst int
	Lifetime float32
	Gravity  float32
	Seed     uint64
}

// System owns every live particle.
type System struct {
	opts      Options
	particles []Particle
	counter   uint64
}

// NewSystem creates an empty system.
func NewSystem(opts Options) *System {
	if opts.Capacity <= 0 {
		opts.Capacity = 256
	}
	if opts.PerBurst <= 0 {
		opts.PerBurst = 8
	}
	if opts.Lifetime <= 0 {
		opts.Lifetime = 1
	}
	return &System{
		opts:      opts,
		particles: make([]Particle, 0, opts.Capacity),
	}
}

// Emit spawns a burst of particles textured like id around the block at pos.
// Air emits nothing.
func (s *System) Emit(id block.ID, pos mgl32.Vec3) {
	if id == block.Air {
		return
	}
	tile := id.Tile(block.FaceSide)
	center := pos.Add(mgl32.Vec3{0.5, 0.5, 0.5})
	for range s.opts.PerBurst {
		if len(s.particles) == s.opts.Capacity {
			// Drop the oldest.
			copy(s.particles, s.particles[1:])
			s.particles = s.particles[:len(s.particles)-1]
		}
		s.particles = append(s.particles, s.spawn(tile, center))
	}
}

func (s *System) spawn(tile int, center mgl32.Vec3) Particle {
	r := s.next()
	jitter := func(shift uint) float32 {
		return float32((r>>shift)&0xFF)/255 - 0.5
	}

	u0, v0, u1, v1 := block.TileUV(tile)
	quarterU := (u1 - u0) / 4
	quarterV := (v1 - v0) / 4
	su := u0 + float32((r>>48)&3)*quarterU
	sv := v0 + float32((r>>50)&3)*quarterV

	return Particle{
		Position: center.Add(mgl32.Vec3{jitter(0) * 0.6, jitter(8) * 0.6, jitter(16) * 0.6}),
		UV: [8]float32{
			su, sv,
			su + quarterU, sv,
			su + quarterU, sv + quarterV,
			su, sv + quarterV,
		},
		Velocity: mgl32.Vec3{jitter(24) * 3, 2 + (jitter(32)+0.5)*2, jitter(40) * 3},
		Life:     s.opts.Lifetime,
	}
}

func (s *System) next() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.opts.Seed)
	binary.LittleEndian.PutUint64(buf[8:], s.counter)
	s.counter++
	return xxh3.Hash(buf[:])
}

// Update integrates motion under gravity and drops expired particles.
func (s *System) Update(dt float64) {
	step := float32(dt)
	live := 0
	for i := range s.particles {
		p := s.particles[i]
		p.Life -= step
		if p.Life <= 0 {
			continue
		}
		p.Velocity[1] -= s.opts.Gravity * step
		p.Position = p.Position.Add(p.Velocity.Mul(step))
		s.particles[live] = p
		live++
	}
	s.particles = s.particles[:live]
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Particles returns the live particles. The slice is only valid until the next Update or Emit.
func (s *System) Particles() []Particle {
	return s.particles
}

func (s *System) Draw(d Drawer) {
	if len(s.particles) == 0 {
		return
	}
	d.DrawParticles(s.particles)
}
