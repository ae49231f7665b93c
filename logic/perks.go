package logic

import "math"

// Perk categories
const (
	CategorySurvival  = "survival"
	CategoryPhysics   = "physics"
	CategoryTargeting = "targeting"
	CategorySpecial   = "special"
)

// Perk rarities
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

var rarityWeights = map[string]int{
	RarityCommon:    60,
	RarityRare:      30,
	RarityLegendary: 10,
}

// EffectField names a single modifier contributed by a perk.
type EffectField string

const (
	// Additive fields
	EffExtraLives     EffectField = "extra_lives"
	EffMaxHPBonus     EffectField = "max_hp_bonus"
	EffHealOnClear    EffectField = "heal_on_clear"
	EffShield         EffectField = "shield"
	EffAirNudges      EffectField = "air_nudges"
	EffScorePerSecond EffectField = "score_per_second"
	EffSlowMotionSec  EffectField = "slow_motion_sec"
	EffMagnetStrength EffectField = "magnet_strength"

	// Multiplicative fields
	EffDamageTaken      EffectField = "damage_taken"
	EffGravityMult      EffectField = "gravity_mult"
	EffSwingSpeedMult   EffectField = "swing_speed_mult"
	EffWormholeSizeMult EffectField = "wormhole_size_mult"
	EffScoreMult        EffectField = "score_mult"
	EffPerfectBonusMult EffectField = "perfect_bonus_mult"

	// Boolean fields
	EffShowTrajectory EffectField = "show_trajectory"
	EffDepthSense     EffectField = "depth_sense"
)

type effectKind int

const (
	kindAdditive effectKind = iota
	kindMultiplicative
	kindBoolean
)

// Combination semantics are fixed per field name, not configurable per perk.
var effectKinds = map[EffectField]effectKind{
	EffExtraLives:     kindAdditive,
	EffMaxHPBonus:     kindAdditive,
	EffHealOnClear:    kindAdditive,
	EffShield:         kindAdditive,
	EffAirNudges:      kindAdditive,
	EffScorePerSecond: kindAdditive,
	EffSlowMotionSec:  kindAdditive,
	EffMagnetStrength: kindAdditive,

	EffDamageTaken:      kindMultiplicative,
	EffGravityMult:      kindMultiplicative,
	EffSwingSpeedMult:   kindMultiplicative,
	EffWormholeSizeMult: kindMultiplicative,
	EffScoreMult:        kindMultiplicative,
	EffPerfectBonusMult: kindMultiplicative,

	EffShowTrajectory: kindBoolean,
	EffDepthSense:     kindBoolean,
}

// PerkDefinition is a static catalog entry. Definitions are built once at
// startup and never mutated; booleans in Effect use 1 for true.
type PerkDefinition struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Category  string                  `json:"category"`
	Rarity    string                  `json:"rarity"`
	MaxStacks int                     `json:"max_stacks"`
	Effect    map[EffectField]float64 `json:"effect"`
}

// PerkInstance is a perk a player owns during a run.
type PerkInstance struct {
	PerkID          string `json:"perk_id"`
	Stacks          int    `json:"stacks"`
	AcquiredAtDepth int    `json:"acquired_at_depth"`
}

// PerkCatalog is an immutable registry of perk definitions. It is injected
// into consumers so tests can substitute alternate catalogs.
type PerkCatalog struct {
	perks []PerkDefinition
	byID  map[string]*PerkDefinition
}

func NewPerkCatalog(defs []PerkDefinition) *PerkCatalog {
	c := &PerkCatalog{
		perks: defs,
		byID:  make(map[string]*PerkDefinition, len(defs)),
	}
	for i := range c.perks {
		c.byID[c.perks[i].ID] = &c.perks[i]
	}
	return c
}

// Get looks up a definition by id.
func (c *PerkCatalog) Get(id string) (*PerkDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Len returns the number of definitions in the catalog.
func (c *PerkCatalog) Len() int {
	return len(c.perks)
}

// CombinedEffects is the aggregate over all owned perk instances. It is
// derived on demand and never persisted.
type CombinedEffects struct {
	values map[EffectField]float64
}

// Add returns the combined value of an additive field (0 when absent).
func (e CombinedEffects) Add(f EffectField) float64 {
	return e.values[f]
}

// Mult returns the combined value of a multiplicative field (1 when absent).
func (e CombinedEffects) Mult(f EffectField) float64 {
	if v, ok := e.values[f]; ok {
		return v
	}
	return 1.0
}

// Flag returns the combined value of a boolean field.
func (e CombinedEffects) Flag(f EffectField) bool {
	return e.values[f] != 0
}

// CombinedEffects folds the instance list into one effect map. Pure: the same
// list in any order yields the same result — accumulation walks the catalog
// in definition order so float products never depend on instance order.
// Stale perk ids are skipped.
func (c *PerkCatalog) CombinedEffects(instances []PerkInstance) CombinedEffects {
	owned := make(map[string]int, len(instances))
	for _, inst := range instances {
		if _, ok := c.byID[inst.PerkID]; ok {
			owned[inst.PerkID] += inst.Stacks
		}
	}

	out := CombinedEffects{values: make(map[EffectField]float64)}
	for i := range c.perks {
		def := &c.perks[i]
		stacks := owned[def.ID]
		if stacks <= 0 {
			continue
		}
		for field, value := range def.Effect {
			switch effectKinds[field] {
			case kindAdditive:
				out.values[field] += value * float64(stacks)
			case kindMultiplicative:
				cur, ok := out.values[field]
				if !ok {
					cur = 1.0
				}
				out.values[field] = cur * math.Pow(value, float64(stacks))
			case kindBoolean:
				if value != 0 {
					out.values[field] = 1
				}
			}
		}
	}
	return out
}

// SelectRandomPerks produces a deterministic offer of up to count distinct
// perks. Perks already at their stack cap are excluded. The pool replicates
// each eligible perk ceil(rarityWeight/10) times, shuffles with the seeded
// LCG, then takes first-seen distinct ids. The replication scheme is an
// intentional approximation of rarity odds, not exact weighting.
func (c *PerkCatalog) SelectRandomPerks(currentPerks []PerkInstance, seed int64, count int) []*PerkDefinition {
	if count <= 0 {
		return nil
	}

	owned := make(map[string]int, len(currentPerks))
	for _, inst := range currentPerks {
		owned[inst.PerkID] += inst.Stacks
	}

	var pool []*PerkDefinition
	for i := range c.perks {
		def := &c.perks[i]
		if owned[def.ID] >= def.MaxStacks {
			continue
		}
		replicas := (rarityWeights[def.Rarity] + 9) / 10
		if replicas < 1 {
			replicas = 1
		}
		for r := 0; r < replicas; r++ {
			pool = append(pool, def)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	rng := NewSeededRand(seed)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	seen := make(map[string]bool, count)
	offers := make([]*PerkDefinition, 0, count)
	for _, def := range pool {
		if seen[def.ID] {
			continue
		}
		seen[def.ID] = true
		offers = append(offers, def)
		if len(offers) == count {
			break
		}
	}
	return offers
}

// AddPerk folds a selected perk into the owned list. Re-selecting an owned
// perk increments its stacks, capped at the definition's MaxStacks.
func AddPerk(instances []PerkInstance, def *PerkDefinition, depth int) []PerkInstance {
	for i := range instances {
		if instances[i].PerkID == def.ID {
			if instances[i].Stacks < def.MaxStacks {
				instances[i].Stacks++
			}
			return instances
		}
	}
	return append(instances, PerkInstance{
		PerkID:          def.ID,
		Stacks:          1,
		AcquiredAtDepth: depth,
	})
}
