package entity

// System is one stateless per-tick pass over a single entity. A system holds
// no cross-entity state within a pass.
type System interface {
	Update(e *Entity, dt float32)
}

// MovableSystem applies velocity to position, remembering the previous
// position for the physical pass.
type MovableSystem struct{}

func (MovableSystem) Update(e *Entity, dt float32) {
	phys, ok := Get[*Physical](e)
	if !ok {
		return
	}
	mov, ok := Get[*Movable](e)
	if !ok {
		return
	}
	phys.PreviousPosition = phys.Position
	phys.Position = phys.Position.Add(mov.Velocity.Scale(dt))
}

// PhysicalSystem is the physical constraint pass. World-bound clamping and
// tile collision response are deliberate no-ops here; entities pass through
// bounds and tiles until a collision response lands.
type PhysicalSystem struct{}

func (PhysicalSystem) Update(e *Entity, dt float32) {
	if !Has[*Physical](e) {
		return
	}
	// bounds clamping and tile collision response go here
}

// DrawableSystem syncs each sprite's draw state from the entity's physical
// state.
type DrawableSystem struct{}

func (DrawableSystem) Update(e *Entity, dt float32) {
	draw, ok := Get[*Drawable](e)
	if !ok {
		return
	}
	phys, ok := Get[*Physical](e)
	if !ok {
		return
	}
	draw.Sprite.Position = phys.Position
	draw.Sprite.Size = phys.Size
}

// Scheduler runs the fixed pass order once per entity per tick: movement,
// physical constraint, draw-state update.
type Scheduler struct {
	systems []System
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		systems: []System{
			MovableSystem{},
			PhysicalSystem{},
			DrawableSystem{},
		},
	}
}

func (s *Scheduler) Update(e *Entity, dt float32) {
	for _, sys := range s.systems {
		sys.Update(e, dt)
	}
}
