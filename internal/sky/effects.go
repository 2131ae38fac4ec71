package sky

import (
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
)

// Shooting star tuning, per frame at the host's tick rate.
const (
	TrailLength      = 14
	shootingMinSpeed = 5.0
	shootingMaxSpeed = 9.0
	shootingMinLife  = 40
	shootingMaxLife  = 70
)

// Position is a point. Particles use normalized [0,1) frame coordinates,
// shooting stars use logical pixels.
type Position struct {
	X, Y float64
}

// Velocity is a per-frame displacement in logical pixels.
type Velocity struct {
	X, Y float64
}

// Twinkle describes a background particle's look.
type Twinkle struct {
	Depth      float64 // fraction of the pan applied as parallax
	Size       float64 // radius in logical pixels
	Phase      float64 // radians
	Speed      float64 // radians per millisecond
	Brightness float64 // peak alpha in [0,1]
}

// Life counts frames down to zero; the entity is culled at zero.
type Life struct {
	Remaining, Total float64
}

// Trail holds the most recent positions of a shooting star, oldest first.
type Trail struct {
	Points []Position
}

// Particle is a read-only snapshot of a background particle.
type Particle struct {
	Position
	Twinkle
}

// Alpha is the particle's twinkle opacity at time t (milliseconds).
func (p Particle) Alpha(t float64) float64 {
	return p.Brightness * (0.6 + 0.4*math.Sin(t*p.Speed+p.Phase))
}

// ShootingStar is a read-only snapshot of a live shooting star.
type ShootingStar struct {
	Head  Position
	Trail []Position
	Alpha float64 // linear fade from 1 at spawn to 0 at end of life
}

// Effects owns the transient decoration: twinkling particles and shooting stars.
// Each lives as an entity in a private ECS world created by NewEffects and
// released by Teardown.
type Effects struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   config.EffectsConfig

	particleMap *ecs.Map2[Position, Twinkle]
	starMap     *ecs.Map4[Position, Velocity, Life, Trail]
	particles   *ecs.Filter2[Position, Twinkle]
	stars       *ecs.Filter4[Position, Velocity, Life, Trail]

	dead []ecs.Entity
}

// NewEffects creates the effect system and seeds its particle field.
// A zero seed draws a random one.
func NewEffects(cfg config.EffectsConfig) *Effects {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	w := ecs.NewWorld(256)
	e := &Effects{
		world:       w,
		rng:         rand.New(rand.NewPCG(seed, seed>>16|1)),
		cfg:         cfg,
		particleMap: ecs.NewMap2[Position, Twinkle](w),
		starMap:     ecs.NewMap4[Position, Velocity, Life, Trail](w),
		particles:   ecs.NewFilter2[Position, Twinkle](w),
		stars:       ecs.NewFilter4[Position, Velocity, Life, Trail](w),
	}
	for range cfg.Particles {
		e.particleMap.NewEntity(
			&Position{X: e.rng.Float64(), Y: e.rng.Float64()},
			&Twinkle{
				Depth:      0.1 + e.rng.Float64()*0.5,
				Size:       0.4 + e.rng.Float64()*1.2,
				Phase:      e.rng.Float64() * 2 * math.Pi,
				Speed:      0.001 + e.rng.Float64()*0.002,
				Brightness: 0.3 + e.rng.Float64()*0.6,
			},
		)
	}
	return e
}

// Active reports whether the system is still alive.
func (e *Effects) Active() bool {
	return e != nil && e.world != nil
}

// Update advances one frame: maybe spawn a shooting star, move the live ones and
// cull those whose life ran out or that left the frame.
func (e *Effects) Update(f Frame) {
	if !e.Active() || f.Size <= 0 {
		return
	}
	if e.ShootingStarCount() < e.cfg.MaxShootingStars && e.rng.Float64() < e.cfg.ShootingStarChance {
		e.Spawn(f)
	}

	margin := f.Size * 0.25
	query := e.stars.Query()
	for query.Next() {
		pos, vel, life, trail := query.Get()
		trail.Points = append(trail.Points, *pos)
		if len(trail.Points) > TrailLength {
			trail.Points = trail.Points[len(trail.Points)-TrailLength:]
		}
		pos.X += vel.X
		pos.Y += vel.Y
		life.Remaining--
		if life.Remaining <= 0 || pos.X < -margin || pos.X > f.Size+margin || pos.Y > f.Size+margin {
			e.dead = append(e.dead, query.Entity())
		}
	}
	// The world is locked while a query runs.
	for _, ent := range e.dead {
		e.world.RemoveEntity(ent)
	}
	e.dead = e.dead[:0]
}

// Spawn launches a shooting star from the upper part of the frame, heading down
// and sideways.
func (e *Effects) Spawn(f Frame) {
	if !e.Active() {
		return
	}
	angle := (20 + e.rng.Float64()*25) * math.Pi / 180
	speed := shootingMinSpeed + e.rng.Float64()*(shootingMaxSpeed-shootingMinSpeed)
	dir := 1.0
	if e.rng.IntN(2) == 0 {
		dir = -1
	}
	life := float64(shootingMinLife + e.rng.IntN(shootingMaxLife-shootingMinLife+1))
	e.starMap.NewEntity(
		&Position{X: f.Size * (0.1 + e.rng.Float64()*0.8), Y: f.Size * e.rng.Float64() * 0.4},
		&Velocity{X: dir * speed * math.Cos(angle), Y: speed * math.Sin(angle)},
		&Life{Remaining: life, Total: life},
		&Trail{Points: make([]Position, 0, TrailLength+1)},
	)
}

// ShootingStarCount returns the number of live shooting stars.
func (e *Effects) ShootingStarCount() int {
	if !e.Active() {
		return 0
	}
	n := 0
	query := e.stars.Query()
	for query.Next() {
		n++
	}
	return n
}

// Particles appends a snapshot of every particle to dst.
func (e *Effects) Particles(dst []Particle) []Particle {
	if !e.Active() {
		return dst
	}
	query := e.particles.Query()
	for query.Next() {
		pos, tw := query.Get()
		dst = append(dst, Particle{Position: *pos, Twinkle: *tw})
	}
	return dst
}

// ShootingStars appends a snapshot of every live shooting star to dst.
func (e *Effects) ShootingStars(dst []ShootingStar) []ShootingStar {
	if !e.Active() {
		return dst
	}
	query := e.stars.Query()
	for query.Next() {
		pos, _, life, trail := query.Get()
		alpha := 0.0
		if life.Total > 0 {
			alpha = clamp(life.Remaining/life.Total, 0, 1)
		}
		dst = append(dst, ShootingStar{
			Head:  *pos,
			Trail: append([]Position(nil), trail.Points...),
			Alpha: alpha,
		})
	}
	return dst
}

// Teardown releases the ECS world. Further calls are no-ops.
func (e *Effects) Teardown() {
	if e == nil {
		return
	}
	e.world = nil
	e.particleMap = nil
	e.starMap = nil
	e.particles = nil
	e.stars = nil
}
