package observer

import (
	"crosscraft/internal/block"
	"crosscraft/internal/input"
	"crosscraft/internal/physics"
	"crosscraft/internal/world"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	EyeHeight = 1.62
	Height    = 1.8
	HalfWidth = 0.3

	FlySpeed         = 10.0
	SprintMultiplier = 2.0
	Sensitivity      = 0.1
)

// Hotbar is the block selected by each hotbar action.
var Hotbar = [9]block.ID{
	block.Stone, block.Grass, block.Dirt, block.Cobblestone, block.Planks,
	block.Log, block.Leaves, block.Glass, block.Sand,
}

// Controls is the input the observer reads each frame.
type Controls interface {
	IsActive(a input.Action) bool
	JustPressed(a input.Action) bool
	LookDelta() (dx, dy float64)
}

// FlyCam is a flying first-person observer. It collides with solid blocks,
// targets blocks by raycast and places or breaks them through the world.
type FlyCam struct {
	pos        mgl32.Vec3
	yaw, pitch float64
	selected   block.ID
	target     physics.RaycastResult
	controls   Controls
}

// New places a fly camera with its feet at pos, looking along +X.
func New(pos mgl32.Vec3, controls Controls) *FlyCam {
	return &FlyCam{pos: pos, selected: Hotbar[0], controls: controls}
}

// Position implements world.Observer.
func (f *FlyCam) Position() mgl32.Vec3 {
	return f.pos
}

// Eye returns the camera position.
func (f *FlyCam) Eye() mgl32.Vec3 {
	return f.pos.Add(mgl32.Vec3{0, EyeHeight, 0})
}

// Front returns the unit view direction.
func (f *FlyCam) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(f.yaw))
	pitch := mgl32.DegToRad(float32(f.pitch))
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// ViewMatrix returns the look-at matrix from the eye along Front.
func (f *FlyCam) ViewMatrix() mgl32.Mat4 {
	eye := f.Eye()
	return mgl32.LookAtV(eye, eye.Add(f.Front()), mgl32.Vec3{0, 1, 0})
}

// Selected returns the block placed by the place action.
func (f *FlyCam) Selected() block.ID {
	return f.selected
}

// Target returns the block hit by the last raycast.
func (f *FlyCam) Target() physics.RaycastResult {
	return f.target
}

// Update implements world.Observer: look, move, select, then act on the target.
func (f *FlyCam) Update(dt float64, w *world.World) {
	if f.controls == nil {
		return
	}
	f.look()
	f.move(dt, w)

	for i := range Hotbar {
		if f.controls.JustPressed(input.ActionHotbar1 + input.Action(i)) {
			f.selected = Hotbar[i]
		}
	}

	f.target = physics.Raycast(f.Eye(), f.Front(), physics.MinReachDistance, physics.MaxReachDistance, w)
	if !f.target.Hit {
		return
	}
	if f.controls.JustPressed(input.ActionPick) {
		if id := w.Block(f.target.Block.X, f.target.Block.Y, f.target.Block.Z); id.Known() {
			f.selected = id
		}
	}
	if f.controls.IsActive(input.ActionBreak) {
		w.BreakBlock(f.target.Block)
	}
	if f.controls.IsActive(input.ActionPlace) && !f.occupies(f.target.Adjacent) {
		w.PlaceBlock(f.target.Adjacent, f.selected)
	}
}

func (f *FlyCam) look() {
	dx, dy := f.controls.LookDelta()
	f.yaw += dx * Sensitivity
	f.pitch = max(-89, min(89, f.pitch+dy*Sensitivity))
}

// move applies the wish direction one axis at a time so the camera slides along walls.
func (f *FlyCam) move(dt float64, w *world.World) {
	front := f.Front()
	forward := mgl32.Vec3{front.X(), 0, front.Z()}
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}
	right := mgl32.Vec3{-forward.Z(), 0, forward.X()}

	var wish mgl32.Vec3
	if f.controls.IsActive(input.ActionMoveForward) {
		wish = wish.Add(forward)
	}
	if f.controls.IsActive(input.ActionMoveBackward) {
		wish = wish.Sub(forward)
	}
	if f.controls.IsActive(input.ActionMoveRight) {
		wish = wish.Add(right)
	}
	if f.controls.IsActive(input.ActionMoveLeft) {
		wish = wish.Sub(right)
	}
	if f.controls.IsActive(input.ActionAscend) {
		wish[1]++
	}
	if f.controls.IsActive(input.ActionDescend) {
		wish[1]--
	}
	if wish.Len() == 0 {
		return
	}

	speed := float32(FlySpeed * dt)
	if f.controls.IsActive(input.ActionSprint) {
		speed *= SprintMultiplier
	}
	delta := wish.Normalize().Mul(speed)
	for a := range 3 {
		next := f.pos
		next[a] += delta[a]
		if !physics.Collides(next, HalfWidth, Height, w) {
			f.pos = next
		}
	}
}

// occupies reports whether the block cell p overlaps the camera's box.
func (f *FlyCam) occupies(p world.BlockPos) bool {
	return f.pos.X()-HalfWidth < float32(p.X+1) && f.pos.X()+HalfWidth > float32(p.X) &&
		f.pos.Y() < float32(p.Y+1) && f.pos.Y()+Height > float32(p.Y) &&
		f.pos.Z()-HalfWidth < float32(p.Z+1) && f.pos.Z()+HalfWidth > float32(p.Z)
}
