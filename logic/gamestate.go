package logic

import (
	"log"
	"sync"
)

// RunPhase is the run-level lifecycle, one layer above the Wobble states.
type RunPhase int

const (
	PhaseIdle     RunPhase = iota // connected, no run yet
	PhaseStage                    // wobble active on the current stage
	PhaseChoosing                 // stage cleared, perk offer pending
	PhaseOver                     // run finished (cleared or dead)
)

func (p RunPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStage:
		return "stage"
	case PhaseChoosing:
		return "choosing"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// RunResult is emitted when a run ends so the host can persist it.
type RunResult struct {
	SessionID string
	Name      string
	Cleared   bool
	Depth     int
	Score     float64
}

// RunState is one session's run. Sessions never share mutable state; each
// owns its map, perks, and wobble exclusively.
type RunState struct {
	SessionID string
	Name      string
	Connected bool

	Phase   RunPhase
	Map     *RunMap
	Depth   int
	Perks   []PerkInstance
	Effects CombinedEffects
	Stage   StageContent
	Wobble  *Wobble
	Offers  []*PerkDefinition

	Score        float64
	HP           float64 // carried between stages
	LivesUsed    int
	NudgesUsed   int
	stageElapsed float64
}

// GameState manages all runs in a room.
type GameState struct {
	Config  *GameConfig
	Catalog *PerkCatalog
	Runs    map[string]*RunState
	Mutex   sync.RWMutex

	results []RunResult
}

func NewGameState(cfg *GameConfig, catalog *PerkCatalog) *GameState {
	return &GameState{
		Config:  cfg,
		Catalog: catalog,
		Runs:    make(map[string]*RunState),
	}
}

// AddSession registers a session in the idle phase.
func (gs *GameState) AddSession(sessionID string) *RunState {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()

	if r, ok := gs.Runs[sessionID]; ok {
		r.Connected = true
		return r
	}
	r := &RunState{
		SessionID: sessionID,
		Connected: true,
		Phase:     PhaseIdle,
		Effects:   gs.Catalog.CombinedEffects(nil),
	}
	gs.Runs[sessionID] = r
	log.Printf("Session %s joined", sessionID)
	return r
}

// MarkSessionDisconnected keeps the run around so the session can reconnect.
func (gs *GameState) MarkSessionDisconnected(sessionID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if r, ok := gs.Runs[sessionID]; ok {
		r.Connected = false
	}
}

// SetSessionName stores the display name used in persisted results.
func (gs *GameState) SetSessionName(sessionID, name string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if r, ok := gs.Runs[sessionID]; ok {
		r.Name = name
	}
}

// HandleStartRun begins a fresh run. maxDepth snaps to the nearest allowed
// length; any previous run is discarded.
func (gs *GameState) HandleStartRun(sessionID string, runSeed int64, maxDepth int) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()

	r, ok := gs.Runs[sessionID]
	if !ok {
		return
	}
	length := SnapRunLength(gs.Config, maxDepth)
	r.Map = GenerateRunMap(runSeed, length)
	r.Depth = 1
	r.Perks = nil
	r.Effects = gs.Catalog.CombinedEffects(nil)
	r.Offers = nil
	r.Score = 0
	r.HP = gs.maxHPFor(r.Effects)
	r.LivesUsed = 0
	r.NudgesUsed = 0
	gs.startStage(r)
	log.Printf("Session %s started run seed=%d depth=%d", sessionID, runSeed, length)
}

// HandleRelease cuts the rope. The Wobble no-ops when not swinging.
func (gs *GameState) HandleRelease(sessionID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if r, ok := gs.Runs[sessionID]; ok && r.Phase == PhaseStage {
		r.Wobble.Release()
	}
}

// HandleNudge spends one air-nudge charge to push the released diver.
func (gs *GameState) HandleNudge(sessionID string, dirX, dirY float64) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	r, ok := gs.Runs[sessionID]
	if !ok || r.Phase != PhaseStage {
		return
	}
	charges := int(r.Effects.Add(EffAirNudges))
	if r.NudgesUsed >= charges {
		return
	}
	if r.Wobble.ApplyImpulse(dirX, dirY, gs.Config.Wobble.NudgeForce) {
		r.NudgesUsed++
	}
}

// HandleChoosePerk folds a selected offer into the owned perks and moves to
// the next stage. Unknown or unoffered ids are ignored.
func (gs *GameState) HandleChoosePerk(sessionID, perkID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	r, ok := gs.Runs[sessionID]
	if !ok || r.Phase != PhaseChoosing {
		return
	}
	for _, def := range r.Offers {
		if def.ID == perkID {
			r.Perks = AddPerk(r.Perks, def, r.Depth)
			r.Effects = gs.Catalog.CombinedEffects(r.Perks)
			break
		}
	}
	gs.advanceStage(r)
}

// HandleNextStage skips the pending offer and dives on.
func (gs *GameState) HandleNextStage(sessionID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if r, ok := gs.Runs[sessionID]; ok && r.Phase == PhaseChoosing {
		gs.advanceStage(r)
	}
}

// HandleAbandon ends the run where it stands.
func (gs *GameState) HandleAbandon(sessionID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	r, ok := gs.Runs[sessionID]
	if !ok || r.Map == nil || r.Phase == PhaseOver {
		return
	}
	gs.endRun(r, false)
}

func (gs *GameState) maxHPFor(eff CombinedEffects) float64 {
	return gs.Config.Wobble.BaseMaxHP + eff.Add(EffMaxHPBonus)
}

// startStage builds the stage content and a fresh wobble at the current
// depth, folding combined perk effects into the physics constants.
func (gs *GameState) startStage(r *RunState) {
	stage := r.Map.StageAt(r.Depth)
	cfg := gs.Config
	eff := r.Effects

	r.Stage = BuildStageContent(cfg, r.Depth, stage.StageSeed, eff)
	maxHP := gs.maxHPFor(eff)
	if r.HP > maxHP {
		r.HP = maxHP
	}
	r.Wobble = NewWobble(WobbleParams{
		Anchor:         r.Stage.Anchor,
		RopeLength:     r.Stage.RopeLength,
		StartAngle:     r.Stage.StartAngle,
		Gravity:        cfg.Pendulum.Gravity * eff.Mult(EffGravityMult),
		Damping:        cfg.Pendulum.Damping,
		SwingSpeedMult: eff.Mult(EffSwingSpeedMult),
		Tuning: ReleaseTuning{
			VelocityScale:     cfg.Pendulum.ReleaseScale,
			ProjectileGravity: cfg.Pendulum.ProjectileGravity * eff.Mult(EffGravityMult),
		},
		MaxHP:         maxHP,
		HP:            r.HP,
		Shield:        eff.Add(EffShield),
		BounceDamage:  cfg.Wobble.BounceDamage,
		Restitution:   cfg.Wobble.Restitution,
		DamageTaken:   eff.Mult(EffDamageTaken),
		DrownDuration: cfg.Wobble.DrownDurationSec,
	})
	r.Offers = nil
	r.Phase = PhaseStage
	r.stageElapsed = 0
	r.NudgesUsed = 0
}

func (gs *GameState) advanceStage(r *RunState) {
	r.Depth++
	if r.Map.StageAt(r.Depth) == nil {
		gs.endRun(r, true)
		return
	}
	gs.startStage(r)
}

// UpdateTick advances every active run by dt seconds and applies the host
// side of the collision contract (walls, pushers, magnet, capture, water).
func (gs *GameState) UpdateTick(dt float64) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()

	for _, r := range gs.Runs {
		if r.Phase != PhaseStage {
			continue
		}
		gs.tickRun(r, dt)
	}
}

func (gs *GameState) tickRun(r *RunState, dt float64) {
	w := r.Wobble
	r.stageElapsed += dt

	// Tide Brake slows the first moments of flight.
	wdt := dt
	if w.State == StateReleased && w.StateElapsed() < r.Effects.Add(EffSlowMotionSec) {
		wdt = dt * 0.5
	}
	w.Update(wdt)

	if w.State == StateReleased {
		// Wall bounces; a depleting bounce becomes a KO.
		if w.Pos.X <= r.Stage.LeftWall {
			if !w.BounceOffWall(WallLeft, r.Stage.LeftWall) {
				w.MarkFailed()
			}
		} else if w.Pos.X >= r.Stage.RightWall {
			if !w.BounceOffWall(WallRight, r.Stage.RightWall) {
				w.MarkFailed()
			}
		}
	}

	if w.State == StateReleased {
		for i := range r.Stage.Pushers {
			p := &r.Stage.Pushers[i]
			if p.Contains(w.Pos) {
				w.PushAwayFrom(p.Pos, p.Force)
			}
		}

		// Lodestone pull toward the wormhole.
		if ms := r.Effects.Add(EffMagnetStrength); ms > 0 {
			d := Distance(w.Pos, r.Stage.Wormhole.Pos)
			if d > 0 && d < 200 {
				w.ApplyImpulse(r.Stage.Wormhole.Pos.X-w.Pos.X, r.Stage.Wormhole.Pos.Y-w.Pos.Y, ms*dt)
			}
		}

		if r.Stage.Wormhole.Contains(w.Pos) {
			if w.MarkSuccess() {
				gs.onStageClear(r)
				return
			}
		}
	}

	// Water ends the attempt regardless of how the dive was going.
	if (w.State == StateReleased || w.State == StateFailed) && w.Pos.Y >= r.Stage.WaterY {
		w.StartDrowning(r.Stage.WaterY)
	}

	if w.State == StateReleased && w.OutOfBounds(r.Stage.LeftWall, r.Stage.RightWall, r.Stage.WaterY) {
		w.MarkFailed()
	}

	// Terminal presentation finished: spend a life or end the run.
	if (w.State == StateFailed || w.State == StateDrowning) && w.AnimationComplete() {
		lives := int(r.Effects.Add(EffExtraLives)) - r.LivesUsed
		if lives > 0 {
			r.LivesUsed++
			r.HP = gs.maxHPFor(r.Effects)
			gs.startStage(r)
			return
		}
		gs.endRun(r, false)
	}
}

// onStageClear scores the capture, annotates the stage, heals, and rolls the
// perk offer (or finishes the run on the last stage).
func (gs *GameState) onStageClear(r *RunState) {
	cfg := gs.Config
	eff := r.Effects
	stage := r.Map.StageAt(r.Depth)
	w := r.Wobble

	rank := "clear"
	points := cfg.Score.StageClearBase * float64(r.Depth)
	if Distance(w.Pos, r.Stage.Wormhole.Pos) <= r.Stage.Wormhole.Radius*cfg.Score.PerfectRadiusFrac {
		rank = "perfect"
		points += cfg.Score.PerfectBonus * eff.Mult(EffPerfectBonusMult)
	}
	points += eff.Add(EffScorePerSecond) * r.stageElapsed
	r.Score += points * eff.Mult(EffScoreMult)

	stage.Completed = true
	stage.Rank = rank

	heal := eff.Add(EffHealOnClear)
	r.HP = w.HP + heal
	if maxHP := gs.maxHPFor(eff); r.HP > maxHP {
		r.HP = maxHP
	}

	if stage.Next == 0 {
		gs.endRun(r, true)
		return
	}

	// Offer roll gets its own derived seed, distinct from the content seed.
	offerSeed := StageSeed(r.Map.RunSeed, r.Depth+1000)
	r.Offers = gs.Catalog.SelectRandomPerks(r.Perks, offerSeed, cfg.Run.OfferCount)
	r.Phase = PhaseChoosing
}

func (gs *GameState) endRun(r *RunState, cleared bool) {
	r.Phase = PhaseOver
	gs.results = append(gs.results, RunResult{
		SessionID: r.SessionID,
		Name:      r.Name,
		Cleared:   cleared,
		Depth:     r.Depth,
		Score:     r.Score,
	})
	log.Printf("Session %s run over: cleared=%v depth=%d score=%.0f",
		r.SessionID, cleared, r.Depth, r.Score)
}

// DrainResults returns and clears the pending run results.
func (gs *GameState) DrainResults() []RunResult {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if len(gs.results) == 0 {
		return nil
	}
	out := gs.results
	gs.results = nil
	return out
}

// GetSnapshot generates the per-tick view for one session.
func (gs *GameState) GetSnapshot(sessionID string) map[string]interface{} {
	gs.Mutex.RLock()
	defer gs.Mutex.RUnlock()

	r, ok := gs.Runs[sessionID]
	if !ok {
		return nil
	}

	snap := map[string]interface{}{
		"phase": r.Phase.String(),
		"score": r.Score,
	}
	if r.Map != nil {
		snap["depth"] = r.Depth
		snap["max_depth"] = r.Map.MaxDepth
		snap["lives_left"] = int(r.Effects.Add(EffExtraLives)) - r.LivesUsed
		snap["perks"] = r.Perks
	}
	if r.Phase == PhaseStage && r.Wobble != nil {
		w := r.Wobble
		sx, sy := w.SquashStretch()
		wobble := map[string]interface{}{
			"state":      w.State.String(),
			"pos":        w.Pos,
			"hp_percent": w.HPPercent(),
			"shield":     w.Shield,
			"alpha":      w.Alpha(),
			"rotation":   w.Rotation(),
			"expression": w.Expression(),
			"scale_x":    sx,
			"scale_y":    sy,
		}
		if w.State == StateSwinging {
			wobble["angle"] = w.Pendulum.Angle
			if r.Effects.Flag(EffShowTrajectory) {
				wobble["preview"] = w.PreviewTrajectory(24, 1.0/30.0)
			}
		}
		snap["wobble"] = wobble
		snap["stage"] = r.Stage
		snap["depth_sense"] = r.Effects.Flag(EffDepthSense)
	}
	if r.Phase == PhaseChoosing {
		snap["offers"] = r.Offers
	}
	return snap
}
