package logic

import "testing"

func TestGenerateRunMapDeterministic(t *testing.T) {
	a := GenerateRunMap(987654321, 9)
	b := GenerateRunMap(987654321, 9)
	if len(a.Stages) != len(b.Stages) {
		t.Fatalf("stage counts differ: %d vs %d", len(a.Stages), len(b.Stages))
	}
	for i := range a.Stages {
		if a.Stages[i] != b.Stages[i] {
			t.Fatalf("stage %d differs: %+v vs %+v", i, a.Stages[i], b.Stages[i])
		}
	}
}

func TestGenerateRunMapShape(t *testing.T) {
	m := GenerateRunMap(42, 6)
	if m.MaxDepth != 6 || len(m.Stages) != 6 {
		t.Fatalf("bad shape: maxDepth=%d stages=%d", m.MaxDepth, len(m.Stages))
	}
	for i, s := range m.Stages {
		if s.Depth != i+1 {
			t.Fatalf("stage %d has depth %d", i, s.Depth)
		}
		wantNext := s.Depth + 1
		if s.Depth == 6 {
			wantNext = 0
		}
		if s.Next != wantNext {
			t.Fatalf("stage depth %d has next %d, want %d", s.Depth, s.Next, wantNext)
		}
		if s.StageSeed < 0 || s.StageSeed > 0x7fffffff {
			t.Fatalf("stage seed %d out of 31-bit range", s.StageSeed)
		}
	}
}

func TestStageSeedsDistinctAcrossDepths(t *testing.T) {
	m := GenerateRunMap(1, 12)
	seen := map[int64]int{}
	for _, s := range m.Stages {
		if prev, ok := seen[s.StageSeed]; ok {
			t.Fatalf("depths %d and %d share seed %d", prev, s.Depth, s.StageSeed)
		}
		seen[s.StageSeed] = s.Depth
	}
}

func TestStageSeedDependsOnRunSeed(t *testing.T) {
	if StageSeed(1, 3) == StageSeed(2, 3) {
		t.Fatal("different run seeds produced the same stage seed")
	}
}

func TestStageAtBounds(t *testing.T) {
	m := GenerateRunMap(5, 6)
	if m.StageAt(0) != nil || m.StageAt(7) != nil {
		t.Fatal("out-of-range depth should return nil")
	}
	if s := m.StageAt(3); s == nil || s.Depth != 3 {
		t.Fatalf("StageAt(3) = %+v", s)
	}
}

func TestBuildStageContentDeterministic(t *testing.T) {
	cfg := DefaultGameConfig()
	eff := DefaultPerkCatalog().CombinedEffects(nil)
	a := BuildStageContent(cfg, 4, 123456, eff)
	b := BuildStageContent(cfg, 4, 123456, eff)

	if a.Anchor != b.Anchor || a.RopeLength != b.RopeLength ||
		a.Wormhole != b.Wormhole || a.WaterY != b.WaterY {
		t.Fatalf("stage content not deterministic: %+v vs %+v", a, b)
	}
	if len(a.Pushers) != len(b.Pushers) {
		t.Fatalf("pusher counts differ: %d vs %d", len(a.Pushers), len(b.Pushers))
	}
}

func TestBuildStageContentGeometry(t *testing.T) {
	cfg := DefaultGameConfig()
	catalog := DefaultPerkCatalog()
	eff := catalog.CombinedEffects(nil)

	for depth := 1; depth <= 12; depth++ {
		sc := BuildStageContent(cfg, depth, StageSeed(77, depth), eff)
		if sc.LeftWall >= sc.RightWall {
			t.Fatalf("depth %d: walls inverted", depth)
		}
		if sc.Wormhole.Pos.X < sc.LeftWall || sc.Wormhole.Pos.X > sc.RightWall {
			t.Fatalf("depth %d: wormhole outside walls", depth)
		}
		if sc.Wormhole.Pos.Y >= sc.WaterY {
			t.Fatalf("depth %d: wormhole below water line", depth)
		}
		if sc.RopeLength < cfg.Pendulum.RopeLengthMin || sc.RopeLength > cfg.Pendulum.RopeLengthMax {
			t.Fatalf("depth %d: rope length %v out of range", depth, sc.RopeLength)
		}
	}
}

func TestBuildStageContentWormholeSizePerk(t *testing.T) {
	cfg := DefaultGameConfig()
	catalog := DefaultPerkCatalog()
	base := BuildStageContent(cfg, 2, 555, catalog.CombinedEffects(nil))
	boosted := BuildStageContent(cfg, 2, 555, catalog.CombinedEffects(
		[]PerkInstance{{PerkID: "wide_wormhole", Stacks: 2}}))

	want := base.Wormhole.Radius * 1.2 * 1.2
	if diff := boosted.Wormhole.Radius - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("boosted radius = %v, want %v", boosted.Wormhole.Radius, want)
	}
}
