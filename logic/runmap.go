package logic

// Stage is one depth level of a run. The seed never changes after
// generation; Completed and Rank are annotations added as the run advances.
type Stage struct {
	Depth     int    `json:"depth"` // 1-based
	StageSeed int64  `json:"stage_seed"`
	Next      int    `json:"next"` // depth of the following stage, 0 on the last
	Completed bool   `json:"completed"`
	Rank      string `json:"rank,omitempty"` // "clear" or "perfect"
}

// RunMap is the linear stage chain for one run. Built once at run start.
type RunMap struct {
	RunSeed  int64   `json:"run_seed"`
	MaxDepth int     `json:"max_depth"`
	Stages   []Stage `json:"stages"`
}

// GenerateRunMap builds maxDepth sequential stages. Total for any integer
// seed and depth; callers validate maxDepth against the configured allowed
// lengths before getting here.
func GenerateRunMap(runSeed int64, maxDepth int) *RunMap {
	m := &RunMap{
		RunSeed:  runSeed,
		MaxDepth: maxDepth,
		Stages:   make([]Stage, maxDepth),
	}
	for i := 0; i < maxDepth; i++ {
		depth := i + 1
		next := depth + 1
		if depth == maxDepth {
			next = 0
		}
		m.Stages[i] = Stage{
			Depth:     depth,
			StageSeed: StageSeed(runSeed, depth),
			Next:      next,
		}
	}
	return m
}

// StageAt returns the stage for a 1-based depth, or nil when out of range.
func (m *RunMap) StageAt(depth int) *Stage {
	if depth < 1 || depth > len(m.Stages) {
		return nil
	}
	return &m.Stages[depth-1]
}

// StageSeed derives a stage's content seed from (runSeed, depth) with a
// splitmix-style finalizer, masked to 31 bits so it can feed SeededRand
// directly. Deterministic by construction.
func StageSeed(runSeed int64, depth int) int64 {
	z := uint64(runSeed)*0x9E3779B97F4A7C15 + uint64(depth)*0xBF58476D1CE4E5B9
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z & 0x7fffffff)
}
