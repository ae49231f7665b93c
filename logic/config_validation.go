package logic

import "math"

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ClampGameConfig enforces hard safety bounds for room configs.
// It mutates cfg in-place so callers can accept user-provided values while
// guaranteeing sane limits.
func ClampGameConfig(cfg *GameConfig) {
	if cfg == nil {
		return
	}

	// --- server ---
	cfg.Server.TickRateMs = clampInt(cfg.Server.TickRateMs, 10, 200)
	cfg.Server.MaxPlayers = clampInt(cfg.Server.MaxPlayers, 1, 32)

	// --- world ---
	cfg.World.Width = clampFloat(cfg.World.Width, 200, 4000)
	cfg.World.SurfaceY = clampFloat(cfg.World.SurfaceY, 300, 8000)
	cfg.World.SurfaceDropPerLvl = clampFloat(cfg.World.SurfaceDropPerLvl, 0, 500)

	// --- pendulum ---
	cfg.Pendulum.Gravity = clampFloat(cfg.Pendulum.Gravity, 50, 3000)
	cfg.Pendulum.Damping = clampFloat(cfg.Pendulum.Damping, 0.8, 0.9999)
	cfg.Pendulum.RopeLengthMin = clampFloat(cfg.Pendulum.RopeLengthMin, 20, 1000)
	cfg.Pendulum.RopeLengthMax = clampFloat(cfg.Pendulum.RopeLengthMax, cfg.Pendulum.RopeLengthMin, 1500)
	cfg.Pendulum.ReleaseScale = clampFloat(cfg.Pendulum.ReleaseScale, 0.1, 5.0)
	cfg.Pendulum.ProjectileGravity = clampFloat(cfg.Pendulum.ProjectileGravity, 50, 3000)

	// --- wobble ---
	cfg.Wobble.BaseMaxHP = clampFloat(cfg.Wobble.BaseMaxHP, 10, 500)
	cfg.Wobble.BounceDamage = clampFloat(cfg.Wobble.BounceDamage, 1, 200)
	cfg.Wobble.Restitution = clampFloat(cfg.Wobble.Restitution, 0.1, 0.95)
	cfg.Wobble.DrownDurationSec = clampFloat(cfg.Wobble.DrownDurationSec, 0.5, 30)
	cfg.Wobble.NudgeForce = clampFloat(cfg.Wobble.NudgeForce, 10, 2000)

	// --- run ---
	if len(cfg.Run.AllowedLengths) == 0 {
		cfg.Run.AllowedLengths = []int{6, 9, 12}
	}
	for i := range cfg.Run.AllowedLengths {
		cfg.Run.AllowedLengths[i] = clampInt(cfg.Run.AllowedLengths[i], 1, 50)
	}
	cfg.Run.DefaultLength = SnapRunLength(cfg, cfg.Run.DefaultLength)
	cfg.Run.OfferCount = clampInt(cfg.Run.OfferCount, 1, 6)

	// --- score ---
	cfg.Score.StageClearBase = clampFloat(cfg.Score.StageClearBase, 0, 100000)
	cfg.Score.PerfectBonus = clampFloat(cfg.Score.PerfectBonus, 0, 100000)
	cfg.Score.PerfectRadiusFrac = clampFloat(cfg.Score.PerfectRadiusFrac, 0.05, 1.0)
}

// SnapRunLength maps a requested run length to the nearest allowed length.
func SnapRunLength(cfg *GameConfig, requested int) int {
	lengths := cfg.Run.AllowedLengths
	if len(lengths) == 0 {
		return requested
	}
	best := lengths[0]
	bestDist := math.Abs(float64(requested - best))
	for _, l := range lengths[1:] {
		d := math.Abs(float64(requested - l))
		if d < bestDist {
			best = l
			bestDist = d
		}
	}
	return best
}
