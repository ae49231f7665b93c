package logic

import (
	"testing"
)

func newTestGameState() *GameState {
	return NewGameState(DefaultGameConfig(), DefaultPerkCatalog())
}

func startTestRun(gs *GameState, seed int64) *RunState {
	gs.AddSession("s1")
	gs.HandleStartRun("s1", seed, 6)
	return gs.Runs["s1"]
}

// tickUntil runs the simulation up to maxTicks or until pred is true.
func tickUntil(gs *GameState, r *RunState, maxTicks int, pred func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		gs.UpdateTick(1.0 / 30.0)
		if pred() {
			return true
		}
	}
	return pred()
}

func TestStartRunSetsUpStage(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	if r.Phase != PhaseStage {
		t.Fatalf("phase = %v, want stage", r.Phase)
	}
	if r.Depth != 1 || r.Map.MaxDepth != 6 {
		t.Fatalf("depth=%d maxDepth=%d", r.Depth, r.Map.MaxDepth)
	}
	if r.Wobble == nil || r.Wobble.State != StateSwinging {
		t.Fatal("run should begin with a swinging wobble")
	}
	if r.Stage.Depth != 1 {
		t.Fatalf("stage depth = %d", r.Stage.Depth)
	}
}

func TestStartRunSnapsLength(t *testing.T) {
	gs := newTestGameState()
	gs.AddSession("s1")
	gs.HandleStartRun("s1", 42, 7) // allowed lengths are 6, 9, 12
	if got := gs.Runs["s1"].Map.MaxDepth; got != 6 {
		t.Fatalf("run length = %d, want snapped 6", got)
	}
}

func TestStartRunDeterministicStage(t *testing.T) {
	a := newTestGameState()
	b := newTestGameState()
	ra := startTestRun(a, 987)
	rb := startTestRun(b, 987)
	if ra.Stage.Anchor != rb.Stage.Anchor || ra.Stage.Wormhole != rb.Stage.Wormhole {
		t.Fatalf("same seed produced different stages: %+v vs %+v", ra.Stage, rb.Stage)
	}
}

func TestReleaseInput(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	gs.HandleRelease("s1")
	if r.Wobble.State != StateReleased {
		t.Fatalf("state after release = %v", r.Wobble.State)
	}
	// Second release is harmless.
	gs.HandleRelease("s1")
	if r.Wobble.State != StateReleased {
		t.Fatalf("state after double release = %v", r.Wobble.State)
	}
}

func TestWormholeCaptureClearsStage(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	gs.HandleRelease("s1")
	r.Wobble.Pos = r.Stage.Wormhole.Pos
	r.Wobble.Vel = Vector2{}
	gs.UpdateTick(1.0 / 30.0)

	if r.Phase != PhaseChoosing {
		t.Fatalf("phase = %v, want choosing", r.Phase)
	}
	if len(r.Offers) != 3 {
		t.Fatalf("offers = %d, want 3", len(r.Offers))
	}
	if r.Score <= 0 {
		t.Fatalf("score = %v, want > 0", r.Score)
	}
	stage := r.Map.StageAt(1)
	if !stage.Completed || stage.Rank != "perfect" {
		t.Fatalf("stage annotation = %+v, want perfect clear", stage)
	}
}

func TestOffersDeterministicPerRun(t *testing.T) {
	clear := func() []*PerkDefinition {
		gs := newTestGameState()
		r := startTestRun(gs, 4242)
		gs.HandleRelease("s1")
		r.Wobble.Pos = r.Stage.Wormhole.Pos
		r.Wobble.Vel = Vector2{}
		gs.UpdateTick(1.0 / 30.0)
		return r.Offers
	}
	a := clear()
	b := clear()
	if len(a) != len(b) {
		t.Fatalf("offer counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("offer %d differs: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestChoosePerkAdvancesStage(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	gs.HandleRelease("s1")
	r.Wobble.Pos = r.Stage.Wormhole.Pos
	r.Wobble.Vel = Vector2{}
	gs.UpdateTick(1.0 / 30.0)

	picked := r.Offers[0].ID
	gs.HandleChoosePerk("s1", picked)

	if r.Depth != 2 || r.Phase != PhaseStage {
		t.Fatalf("after choice: depth=%d phase=%v", r.Depth, r.Phase)
	}
	if len(r.Perks) != 1 || r.Perks[0].PerkID != picked {
		t.Fatalf("perks = %+v", r.Perks)
	}
	if r.Wobble.State != StateSwinging {
		t.Fatal("next stage should start swinging")
	}
}

func TestChoosePerkIgnoresUnofferedID(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	gs.HandleRelease("s1")
	r.Wobble.Pos = r.Stage.Wormhole.Pos
	r.Wobble.Vel = Vector2{}
	gs.UpdateTick(1.0 / 30.0)

	gs.HandleChoosePerk("s1", "not_in_offers")
	if len(r.Perks) != 0 {
		t.Fatalf("unoffered perk was added: %+v", r.Perks)
	}
	if r.Depth != 2 {
		t.Fatalf("depth = %d, run should still advance", r.Depth)
	}
}

func TestDrowningEndsRun(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	gs.HandleRelease("s1")
	r.Wobble.Pos = Vector2{X: 400, Y: r.Stage.WaterY + 5}
	r.Wobble.Vel = Vector2{}
	gs.UpdateTick(1.0 / 30.0)

	if r.Wobble.State != StateDrowning {
		t.Fatalf("state = %v, want drowning", r.Wobble.State)
	}

	over := tickUntil(gs, r, 200, func() bool { return r.Phase == PhaseOver })
	if !over {
		t.Fatal("run did not end after drowning completed")
	}
	results := gs.DrainResults()
	if len(results) != 1 || results[0].Cleared {
		t.Fatalf("results = %+v, want one uncleared", results)
	}
	if gs.DrainResults() != nil {
		t.Fatal("results not cleared after drain")
	}
}

func TestExtraLifeRetriesStage(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	r.Perks = []PerkInstance{{PerkID: "extra_heart", Stacks: 1}}
	r.Effects = gs.Catalog.CombinedEffects(r.Perks)

	gs.HandleRelease("s1")
	r.Wobble.Pos = Vector2{X: 400, Y: r.Stage.WaterY + 5}
	r.Wobble.Vel = Vector2{}

	retried := tickUntil(gs, r, 200, func() bool {
		return r.Wobble.State == StateSwinging
	})
	if !retried {
		t.Fatal("extra life did not restart the stage")
	}
	if r.LivesUsed != 1 || r.Depth != 1 || r.Phase != PhaseStage {
		t.Fatalf("livesUsed=%d depth=%d phase=%v", r.LivesUsed, r.Depth, r.Phase)
	}
}

func TestClearingLastStageEndsRunCleared(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	for r.Phase != PhaseOver {
		gs.HandleRelease("s1")
		r.Wobble.Pos = r.Stage.Wormhole.Pos
		r.Wobble.Vel = Vector2{}
		gs.UpdateTick(1.0 / 30.0)
		if r.Phase == PhaseChoosing {
			gs.HandleNextStage("s1")
		}
	}
	results := gs.DrainResults()
	if len(results) != 1 || !results[0].Cleared {
		t.Fatalf("results = %+v, want one cleared", results)
	}
	if results[0].Score <= 0 {
		t.Fatalf("cleared run score = %v", results[0].Score)
	}
}

func TestNudgeRequiresCharges(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	gs.HandleRelease("s1")
	vel := r.Wobble.Vel

	gs.HandleNudge("s1", 1, 0)
	if r.Wobble.Vel != vel || r.NudgesUsed != 0 {
		t.Fatal("nudge applied without charges")
	}

	r.Perks = []PerkInstance{{PerkID: "air_fins", Stacks: 2}}
	r.Effects = gs.Catalog.CombinedEffects(r.Perks)

	gs.HandleNudge("s1", 1, 0)
	gs.HandleNudge("s1", 1, 0)
	gs.HandleNudge("s1", 1, 0)
	if r.NudgesUsed != 2 {
		t.Fatalf("nudges used = %d, want capped at 2 charges", r.NudgesUsed)
	}
}

func TestPerkEffectsReachWobble(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	r.Perks = []PerkInstance{
		{PerkID: "thick_skin", Stacks: 2},   // +50 max hp
		{PerkID: "feather_fall", Stacks: 1}, // gravity x0.9
		{PerkID: "bubble_shield", Stacks: 1},
	}
	r.Effects = gs.Catalog.CombinedEffects(r.Perks)
	r.HP = 999 // clamped to the new max on stage start
	gs.startStage(r)

	w := r.Wobble
	if w.MaxHP != 150 || w.HP != 150 {
		t.Fatalf("hp = %v/%v, want 150/150", w.HP, w.MaxHP)
	}
	if w.Shield != 15 {
		t.Fatalf("shield = %v, want 15", w.Shield)
	}
	base := gs.Config.Pendulum
	if w.Pendulum.Gravity != base.Gravity*0.9 {
		t.Fatalf("gravity = %v, want %v", w.Pendulum.Gravity, base.Gravity*0.9)
	}
	if w.Tuning.ProjectileGravity != base.ProjectileGravity*0.9 {
		t.Fatal("projectile gravity must carry the same multiplier as the swing")
	}
}

func TestAbandonEndsRun(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)
	gs.HandleAbandon("s1")
	if r.Phase != PhaseOver {
		t.Fatalf("phase = %v, want over", r.Phase)
	}
	// Idempotent.
	gs.HandleAbandon("s1")
	if got := len(gs.DrainResults()); got != 1 {
		t.Fatalf("results = %d, want 1", got)
	}
}

func TestSnapshotShape(t *testing.T) {
	gs := newTestGameState()
	r := startTestRun(gs, 42)

	snap := gs.GetSnapshot("s1")
	if snap == nil {
		t.Fatal("nil snapshot for active session")
	}
	if snap["phase"] != "stage" {
		t.Fatalf("phase = %v", snap["phase"])
	}
	wobble, ok := snap["wobble"].(map[string]interface{})
	if !ok {
		t.Fatal("snapshot missing wobble block")
	}
	if wobble["state"] != "swinging" {
		t.Fatalf("wobble state = %v", wobble["state"])
	}
	if _, ok := wobble["preview"]; ok {
		t.Fatal("preview exposed without the trajectory perk")
	}

	r.Perks = []PerkInstance{{PerkID: "diver_sight", Stacks: 1}}
	r.Effects = gs.Catalog.CombinedEffects(r.Perks)
	snap = gs.GetSnapshot("s1")
	wobble = snap["wobble"].(map[string]interface{})
	if _, ok := wobble["preview"]; !ok {
		t.Fatal("preview missing with the trajectory perk")
	}

	if gs.GetSnapshot("nobody") != nil {
		t.Fatal("snapshot for unknown session should be nil")
	}
}
