package logic

// Pusher is an obstacle that shoves the diver away on contact.
type Pusher struct {
	Circle
	Force float64 `json:"force"`
}

// StageContent is everything one depth level is made of. Derived entirely
// from the stage seed plus config, so regenerating it is deterministic.
type StageContent struct {
	Depth      int      `json:"depth"`
	Anchor     Vector2  `json:"anchor"`
	RopeLength float64  `json:"rope_length"`
	StartAngle float64  `json:"start_angle"`
	LeftWall   float64  `json:"left_wall"`
	RightWall  float64  `json:"right_wall"`
	WaterY     float64  `json:"water_y"`
	Wormhole   Circle   `json:"wormhole"`
	Pushers    []Pusher `json:"pushers"`
}

// BuildStageContent rolls one stage's layout from its seed. The wormhole
// shrinks and the water line drops as depth grows; the wormhole size perk
// multiplier is folded in here so preview, capture check, and snapshot all
// agree on one radius.
func BuildStageContent(cfg *GameConfig, depth int, seed int64, eff CombinedEffects) StageContent {
	rng := NewSeededRand(seed)

	left := 0.0
	right := cfg.World.Width
	waterY := cfg.World.SurfaceY + float64(depth-1)*cfg.World.SurfaceDropPerLvl

	ropeSpan := cfg.Pendulum.RopeLengthMax - cfg.Pendulum.RopeLengthMin
	ropeLength := cfg.Pendulum.RopeLengthMin + rng.Next()*ropeSpan

	// Anchor sits in the middle band so full swings stay inside the walls.
	anchorX := left + (0.3+0.4*rng.Next())*(right-left)
	anchor := Vector2{X: anchorX, Y: 80}

	// Start tilted to a random side so the pendulum has energy to build on.
	startAngle := 0.5 + 0.4*rng.Next()
	if rng.Next() < 0.5 {
		startAngle = -startAngle
	}

	// Deeper wormholes are smaller and sit closer to the water.
	shrink := 1.0 - 0.04*float64(depth-1)
	if shrink < 0.5 {
		shrink = 0.5
	}
	radius := 46.0 * shrink * eff.Mult(EffWormholeSizeMult)
	wormX := left + (0.15+0.7*rng.Next())*(right-left)
	wormY := waterY - 60 - rng.Next()*120
	wormhole := Circle{Pos: Vector2{X: wormX, Y: wormY}, Radius: radius}

	// Pusher count grows with depth; keep them off the wormhole.
	count := depth / 3
	if count > 4 {
		count = 4
	}
	pushers := make([]Pusher, 0, count)
	for i := 0; i < count; i++ {
		p := Pusher{
			Circle: Circle{
				Pos: Vector2{
					X: left + (0.1+0.8*rng.Next())*(right-left),
					Y: anchor.Y + 150 + rng.Next()*(waterY-anchor.Y-300),
				},
				Radius: 24 + rng.Next()*16,
			},
			Force: 120 + rng.Next()*100,
		}
		if Distance(p.Pos, wormhole.Pos) < p.Radius+wormhole.Radius+40 {
			continue
		}
		pushers = append(pushers, p)
	}

	return StageContent{
		Depth:      depth,
		Anchor:     anchor,
		RopeLength: ropeLength,
		StartAngle: startAngle,
		LeftWall:   left,
		RightWall:  right,
		WaterY:     waterY,
		Wormhole:   wormhole,
		Pushers:    pushers,
	}
}
