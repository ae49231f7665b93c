package logic

// GameConfig mirrors game_config.json.
type GameConfig struct {
	Server struct {
		TickRateMs int `json:"tick_rate_ms"`
		MaxPlayers int `json:"max_players_per_room"`
	} `json:"server"`
	World struct {
		Width             float64 `json:"width"`                // wall-to-wall span
		SurfaceY          float64 `json:"surface_y"`            // water line at depth 1
		SurfaceDropPerLvl float64 `json:"surface_drop_per_lvl"` // water line moves down per depth
	} `json:"world"`
	Pendulum struct {
		Gravity           float64 `json:"gravity"`
		Damping           float64 `json:"damping"`
		RopeLengthMin     float64 `json:"rope_length_min"`
		RopeLengthMax     float64 `json:"rope_length_max"`
		ReleaseScale      float64 `json:"release_scale"`
		ProjectileGravity float64 `json:"projectile_gravity"`
	} `json:"pendulum"`
	Wobble struct {
		BaseMaxHP        float64 `json:"base_max_hp"`
		BounceDamage     float64 `json:"bounce_damage"`
		Restitution      float64 `json:"restitution"`
		DrownDurationSec float64 `json:"drown_duration_sec"`
		NudgeForce       float64 `json:"nudge_force"`
	} `json:"wobble"`
	Run struct {
		AllowedLengths []int `json:"allowed_lengths"`
		DefaultLength  int   `json:"default_length"`
		OfferCount     int   `json:"offer_count"`
	} `json:"run"`
	Score struct {
		StageClearBase    float64 `json:"stage_clear_base"`
		PerfectBonus      float64 `json:"perfect_bonus"`
		PerfectRadiusFrac float64 `json:"perfect_radius_frac"`
	} `json:"score"`
}

// DefaultGameConfig returns the stock tuning, already clamped. main.go
// overlays game_config.json on top of it; tests use it directly.
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}

	cfg.Server.TickRateMs = 33
	cfg.Server.MaxPlayers = 8

	cfg.World.Width = 800
	cfg.World.SurfaceY = 900
	cfg.World.SurfaceDropPerLvl = 40

	cfg.Pendulum.Gravity = 600
	cfg.Pendulum.Damping = 0.995
	cfg.Pendulum.RopeLengthMin = 140
	cfg.Pendulum.RopeLengthMax = 220
	cfg.Pendulum.ReleaseScale = 1.0
	cfg.Pendulum.ProjectileGravity = 420

	cfg.Wobble.BaseMaxHP = 100
	cfg.Wobble.BounceDamage = 20
	cfg.Wobble.Restitution = 0.65
	cfg.Wobble.DrownDurationSec = 2.5
	cfg.Wobble.NudgeForce = 180

	cfg.Run.AllowedLengths = []int{6, 9, 12}
	cfg.Run.DefaultLength = 6
	cfg.Run.OfferCount = 3

	cfg.Score.StageClearBase = 100
	cfg.Score.PerfectBonus = 50
	cfg.Score.PerfectRadiusFrac = 0.35

	ClampGameConfig(cfg)
	return cfg
}
