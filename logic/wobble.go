package logic

import "math"

// WobbleState tags the entity state machine:
// swinging -> released -> {success | failed}, any non-drowning -> drowning.
type WobbleState int

const (
	StateSwinging WobbleState = iota
	StateReleased
	StateSuccess
	StateFailed
	StateDrowning
)

func (s WobbleState) String() string {
	switch s {
	case StateSwinging:
		return "swinging"
	case StateReleased:
		return "released"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	case StateDrowning:
		return "drowning"
	}
	return "unknown"
}

// Expression categories the renderer maps to faces. Presentation hints only.
const (
	ExpressionFocused  = "focused"
	ExpressionThrilled = "thrilled"
	ExpressionWorried  = "worried"
	ExpressionJoy      = "joy"
	ExpressionKO       = "ko"
	ExpressionSinking  = "sinking"
)

// WallSide selects which boundary a bounce hit.
type WallSide int

const (
	WallLeft WallSide = iota
	WallRight
)

const (
	wallSkin        = 2.0  // reposition inset so a bounce can't retrigger next frame
	pushSkin        = 4.0  // position nudge applied by PushAwayFrom
	minPushDistance = 1e-6 // below this the push direction is undefined
	drownSinkBase   = 10.0
	drownSinkAccel  = 30.0
	drownMaxDepth   = 160.0
	fadeOutSec      = 1.0
)

// PendulumPhysics is the swing-phase state. Owned exclusively by one Wobble.
type PendulumPhysics struct {
	Anchor     Vector2
	RopeLength float64
	Angle      float64 // radians from vertical, positive swings right
	AngularVel float64
	Gravity    float64
}

// ReleaseTuning holds the constants shared between trajectory preview and the
// live release/projectile path. Both must read from this one value; a
// preview computed with different constants would not match realized motion.
type ReleaseTuning struct {
	VelocityScale     float64 // angular speed * rope length -> projectile units
	ProjectileGravity float64
}

// DrowningState exists only while drowning. Progression is purely
// timer-driven; no external transition leaves it.
type DrowningState struct {
	SurfaceY float64
	Elapsed  float64
	Depth    float64
	Duration float64
}

// WobbleParams seeds a new entity. Callers fold combined perk effects into
// the physics constants before construction.
type WobbleParams struct {
	Anchor         Vector2
	RopeLength     float64
	StartAngle     float64
	Gravity        float64
	Damping        float64
	SwingSpeedMult float64 // 0 means 1
	Tuning         ReleaseTuning
	MaxHP          float64
	HP             float64 // 0 means full
	Shield         float64
	BounceDamage   float64
	Restitution    float64
	DamageTaken    float64 // multiplier on incoming damage, 0 means 1
	DrownDuration  float64
}

// Wobble is the per-entity physics/state machine. Single-threaded: the host
// calls Update once per tick with an externally supplied dt and gates the
// collision responses by state; out-of-state calls are defensive no-ops.
type Wobble struct {
	State    WobbleState
	Pendulum PendulumPhysics
	Damping  float64
	Tuning   ReleaseTuning

	Pos Vector2
	Vel Vector2 // valid once released

	HP      float64
	MaxHP   float64
	Shield  float64
	Bounces int

	BounceDamage   float64
	Restitution    float64
	DamageTaken    float64
	SwingSpeedMult float64
	DrownDuration  float64

	Drowning *DrowningState

	stateElapsed float64
}

func NewWobble(p WobbleParams) *Wobble {
	if p.SwingSpeedMult == 0 {
		p.SwingSpeedMult = 1
	}
	if p.DamageTaken == 0 {
		p.DamageTaken = 1
	}
	if p.HP == 0 {
		p.HP = p.MaxHP
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	w := &Wobble{
		State: StateSwinging,
		Pendulum: PendulumPhysics{
			Anchor:     p.Anchor,
			RopeLength: p.RopeLength,
			Angle:      p.StartAngle,
			Gravity:    p.Gravity,
		},
		Damping:        p.Damping,
		Tuning:         p.Tuning,
		MaxHP:          p.MaxHP,
		HP:             p.HP,
		Shield:         p.Shield,
		BounceDamage:   p.BounceDamage,
		Restitution:    p.Restitution,
		DamageTaken:    p.DamageTaken,
		SwingSpeedMult: p.SwingSpeedMult,
		DrownDuration:  p.DrownDuration,
	}
	w.Pos = w.ropePosition()
	return w
}

// Update advances the simulation by dt seconds. Physics integrates only in
// swinging and released; success/failed/drowning run timer logic.
func (w *Wobble) Update(dt float64) {
	if dt <= 0 {
		return
	}
	w.stateElapsed += dt

	switch w.State {
	case StateSwinging:
		// Semi-implicit Euler; damping bleeds energy every step.
		sdt := dt * w.SwingSpeedMult
		p := &w.Pendulum
		acc := -(p.Gravity / p.RopeLength) * math.Sin(p.Angle)
		p.AngularVel += acc * sdt
		p.AngularVel *= w.Damping
		p.Angle += p.AngularVel * sdt
		w.Pos = w.ropePosition()

	case StateReleased:
		w.Vel.Y += w.Tuning.ProjectileGravity * dt
		w.Pos.X += w.Vel.X * dt
		w.Pos.Y += w.Vel.Y * dt

	case StateDrowning:
		d := w.Drowning
		d.Elapsed += dt
		d.Depth += (drownSinkBase + drownSinkAccel*d.Elapsed) * dt
		if d.Depth > drownMaxDepth {
			d.Depth = drownMaxDepth
		}
		w.Pos.Y = d.SurfaceY + d.Depth
	}
}

func (w *Wobble) ropePosition() Vector2 {
	p := w.Pendulum
	return Vector2{
		X: p.Anchor.X + math.Sin(p.Angle)*p.RopeLength,
		Y: p.Anchor.Y + math.Cos(p.Angle)*p.RopeLength,
	}
}

// ReleaseVelocity returns the launch velocity Release would assign at this
// instant: tangential speed (angular velocity times rope length) along the
// direction perpendicular to the rope, scaled by the shared tuning constant.
// The trajectory preview calls this so prediction matches realized motion.
func (w *Wobble) ReleaseVelocity() Vector2 {
	p := w.Pendulum
	speed := p.AngularVel * p.RopeLength * w.Tuning.VelocityScale
	return Vector2{
		X: math.Cos(p.Angle) * speed,
		Y: -math.Sin(p.Angle) * speed,
	}
}

// Release cuts the rope: captures the current swing position as the launch
// point and converts angular motion into projectile velocity. Returns false
// when not swinging.
func (w *Wobble) Release() bool {
	if w.State != StateSwinging {
		return false
	}
	w.Pos = w.ropePosition()
	w.Vel = w.ReleaseVelocity()
	w.setState(StateReleased)
	return true
}

// PreviewTrajectory integrates the would-be projectile path from the current
// swing state, using the same tuning as the live released branch. Returns
// nil when not swinging.
func (w *Wobble) PreviewTrajectory(steps int, dt float64) []Vector2 {
	if w.State != StateSwinging || steps <= 0 || dt <= 0 {
		return nil
	}
	pos := w.ropePosition()
	vel := w.ReleaseVelocity()
	points := make([]Vector2, 0, steps)
	for i := 0; i < steps; i++ {
		vel.Y += w.Tuning.ProjectileGravity * dt
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		points = append(points, pos)
	}
	return points
}

// MarkSuccess flags goal capture. Valid only while released.
func (w *Wobble) MarkSuccess() bool {
	if w.State != StateReleased {
		return false
	}
	w.setState(StateSuccess)
	return true
}

// MarkFailed flags a terminal miss. Valid only while released.
func (w *Wobble) MarkFailed() bool {
	if w.State != StateReleased {
		return false
	}
	w.setState(StateFailed)
	return true
}

// StartDrowning begins the timer-driven sinking sequence at the given water
// surface. Terminal: nothing transitions out; DrowningComplete reports the
// end. No-op when already drowning.
func (w *Wobble) StartDrowning(surfaceY float64) bool {
	if w.State == StateDrowning {
		return false
	}
	w.Drowning = &DrowningState{
		SurfaceY: surfaceY,
		Duration: w.DrownDuration,
	}
	w.Pos.Y = surfaceY
	w.Vel = Vector2{}
	w.setState(StateDrowning)
	return true
}

// DrowningComplete reports whether the sinking timer has elapsed.
func (w *Wobble) DrowningComplete() bool {
	return w.State == StateDrowning && w.Drowning != nil &&
		w.Drowning.Elapsed >= w.Drowning.Duration
}

// BounceOffWall handles a wall hit while released: repositions just inside
// the boundary so the same frame can't retrigger, inverts and attenuates the
// normal velocity component, and applies bounce damage. Returns whether HP
// remains above zero; returns false without mutating anything when not
// released.
func (w *Wobble) BounceOffWall(side WallSide, boundary float64) bool {
	if w.State != StateReleased {
		return false
	}
	switch side {
	case WallLeft:
		w.Pos.X = boundary + wallSkin
	case WallRight:
		w.Pos.X = boundary - wallSkin
	default:
		return false
	}
	w.Vel.X = -w.Vel.X * w.Restitution
	w.Bounces++
	w.applyDamage(w.BounceDamage)
	return w.HP > 0
}

// ApplyImpulse adds a velocity delta along the given direction. No-op when
// not released or when the direction is degenerate.
func (w *Wobble) ApplyImpulse(dirX, dirY, force float64) bool {
	if w.State != StateReleased {
		return false
	}
	mag := math.Hypot(dirX, dirY)
	if mag < minPushDistance {
		return false
	}
	w.Vel.X += dirX / mag * force
	w.Vel.Y += dirY / mag * force
	return true
}

// PushAwayFrom shoves the entity radially away from an obstacle and nudges
// its position out to avoid an immediate re-collision. Degenerates to a
// no-op when the obstacle sits on top of the entity.
func (w *Wobble) PushAwayFrom(point Vector2, force float64) bool {
	if w.State != StateReleased {
		return false
	}
	dx := w.Pos.X - point.X
	dy := w.Pos.Y - point.Y
	dist := math.Hypot(dx, dy)
	if dist < minPushDistance {
		return false
	}
	nx, ny := dx/dist, dy/dist
	w.Vel.X += nx * force
	w.Vel.Y += ny * force
	w.Pos.X += nx * pushSkin
	w.Pos.Y += ny * pushSkin
	return true
}

func (w *Wobble) applyDamage(amount float64) {
	amount *= w.DamageTaken
	if w.Shield > 0 {
		absorbed := math.Min(w.Shield, amount)
		w.Shield -= absorbed
		amount -= absorbed
	}
	w.HP -= amount
	if w.HP < 0 {
		w.HP = 0
	}
}

// HPPercent returns HP as a fraction of max in [0, 1].
func (w *Wobble) HPPercent() float64 {
	if w.MaxHP <= 0 {
		return 0
	}
	return w.HP / w.MaxHP
}

// Depleted reports whether HP has run out.
func (w *Wobble) Depleted() bool {
	return w.HP <= 0
}

// ResetHP restores HP to max exactly. Called by the host between stages.
func (w *Wobble) ResetHP() {
	w.HP = w.MaxHP
}

// StateElapsed returns seconds spent in the current state.
func (w *Wobble) StateElapsed() float64 {
	return w.stateElapsed
}

// Alpha is the renderer fade hint: drowning fades out with the sink timer,
// failed fades after the KO, everything else is opaque.
func (w *Wobble) Alpha() float64 {
	switch w.State {
	case StateDrowning:
		if w.Drowning == nil || w.Drowning.Duration <= 0 {
			return 0
		}
		a := 1.0 - w.Drowning.Elapsed/w.Drowning.Duration
		return clampFloat(a, 0, 1)
	case StateFailed:
		return clampFloat(1.0-0.6*(w.stateElapsed/fadeOutSec), 0.4, 1)
	}
	return 1
}

// AnimationComplete reports whether the terminal presentation has finished
// and the host may tear the entity down.
func (w *Wobble) AnimationComplete() bool {
	switch w.State {
	case StateDrowning:
		return w.DrowningComplete()
	case StateSuccess, StateFailed:
		return w.stateElapsed >= fadeOutSec
	}
	return false
}

// OutOfBounds reports whether the entity has left the playfield by a margin.
func (w *Wobble) OutOfBounds(left, right, bottom float64) bool {
	const margin = 50.0
	return w.Pos.X < left-margin || w.Pos.X > right+margin || w.Pos.Y > bottom+margin
}

// Rotation is the renderer spin hint, derived from the velocity vector while
// released and from the rope angle while swinging.
func (w *Wobble) Rotation() float64 {
	switch w.State {
	case StateSwinging:
		return w.Pendulum.Angle
	case StateReleased:
		return math.Atan2(w.Vel.Y, w.Vel.X)
	}
	return 0
}

// Expression picks the face category for the renderer.
func (w *Wobble) Expression() string {
	switch w.State {
	case StateSwinging:
		if math.Abs(w.Pendulum.AngularVel) > 2.5 {
			return ExpressionThrilled
		}
		return ExpressionFocused
	case StateReleased:
		if w.Vel.Y > 0 && math.Hypot(w.Vel.X, w.Vel.Y) > 500 {
			return ExpressionWorried
		}
		return ExpressionThrilled
	case StateSuccess:
		return ExpressionJoy
	case StateFailed:
		return ExpressionKO
	case StateDrowning:
		return ExpressionSinking
	}
	return ExpressionFocused
}

// SquashStretch returns (scaleX, scaleY) deformation hints: fast motion
// stretches along travel and squashes across it.
func (w *Wobble) SquashStretch() (float64, float64) {
	var speed float64
	switch w.State {
	case StateSwinging:
		speed = math.Abs(w.Pendulum.AngularVel) * w.Pendulum.RopeLength
	case StateReleased:
		speed = math.Hypot(w.Vel.X, w.Vel.Y)
	default:
		return 1, 1
	}
	stretch := 1 + clampFloat(speed/1500.0, 0, 0.35)
	return 1 / stretch, stretch
}

func (w *Wobble) setState(s WobbleState) {
	w.State = s
	w.stateElapsed = 0
}
