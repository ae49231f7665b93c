package logic

// DefaultPerkCatalog builds the stock perk table. Values are per stack;
// combined effects apply additive fields times stacks and multiplicative
// fields as value^stacks.
func DefaultPerkCatalog() *PerkCatalog {
	return NewPerkCatalog([]PerkDefinition{
		{
			ID: "extra_heart", Name: "Extra Heart",
			Category: CategorySurvival, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffExtraLives: 1},
		},
		{
			ID: "thick_skin", Name: "Thick Skin",
			Category: CategorySurvival, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffMaxHPBonus: 25},
		},
		{
			ID: "kelp_snack", Name: "Kelp Snack",
			Category: CategorySurvival, Rarity: RarityCommon, MaxStacks: 2,
			Effect: map[EffectField]float64{EffHealOnClear: 20},
		},
		{
			ID: "bubble_shield", Name: "Bubble Shield",
			Category: CategorySurvival, Rarity: RarityRare, MaxStacks: 2,
			Effect: map[EffectField]float64{EffShield: 15},
		},
		{
			ID: "rubber_hide", Name: "Rubber Hide",
			Category: CategorySurvival, Rarity: RarityRare, MaxStacks: 3,
			Effect: map[EffectField]float64{EffDamageTaken: 0.8},
		},
		{
			ID: "feather_fall", Name: "Feather Fall",
			Category: CategoryPhysics, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffGravityMult: 0.9},
		},
		{
			ID: "momentum_coil", Name: "Momentum Coil",
			Category: CategoryPhysics, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffSwingSpeedMult: 1.15},
		},
		{
			ID: "air_fins", Name: "Air Fins",
			Category: CategoryPhysics, Rarity: RarityRare, MaxStacks: 2,
			Effect: map[EffectField]float64{EffAirNudges: 1},
		},
		{
			ID: "tide_brake", Name: "Tide Brake",
			Category: CategoryPhysics, Rarity: RarityRare, MaxStacks: 2,
			Effect: map[EffectField]float64{EffSlowMotionSec: 1.5},
		},
		{
			ID: "wide_wormhole", Name: "Wide Wormhole",
			Category: CategoryTargeting, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffWormholeSizeMult: 1.2},
		},
		{
			ID: "lodestone", Name: "Lodestone",
			Category: CategoryTargeting, Rarity: RarityRare, MaxStacks: 3,
			Effect: map[EffectField]float64{EffMagnetStrength: 40},
		},
		{
			ID: "diver_sight", Name: "Diver Sight",
			Category: CategoryTargeting, Rarity: RarityCommon, MaxStacks: 1,
			Effect: map[EffectField]float64{EffShowTrajectory: 1},
		},
		{
			ID: "echo_lantern", Name: "Echo Lantern",
			Category: CategoryTargeting, Rarity: RarityRare, MaxStacks: 1,
			Effect: map[EffectField]float64{EffDepthSense: 1},
		},
		{
			ID: "gold_barnacle", Name: "Gold Barnacle",
			Category: CategorySpecial, Rarity: RarityRare, MaxStacks: 3,
			Effect: map[EffectField]float64{EffScoreMult: 1.25},
		},
		{
			ID: "patient_drip", Name: "Patient Drip",
			Category: CategorySpecial, Rarity: RarityCommon, MaxStacks: 3,
			Effect: map[EffectField]float64{EffScorePerSecond: 2},
		},
		{
			ID: "bullseye_pearl", Name: "Bullseye Pearl",
			Category: CategorySpecial, Rarity: RarityLegendary, MaxStacks: 2,
			Effect: map[EffectField]float64{EffPerfectBonusMult: 2.0},
		},
		{
			ID: "ninth_life", Name: "Ninth Life",
			Category: CategorySpecial, Rarity: RarityLegendary, MaxStacks: 1,
			Effect: map[EffectField]float64{EffExtraLives: 2, EffHealOnClear: 10},
		},
	})
}
