package logic

import (
	"log"
	"time"
)

type InputType int

const (
	InputStartRun InputType = iota
	InputRelease
	InputNudge
	InputChoosePerk
	InputNextStage
	InputAbandon
	InputLogin
)

// PlayerInput is one decoded client message handed to the loop.
type PlayerInput struct {
	SessionID string
	Type      InputType

	Seed     int64
	MaxDepth int
	DirX     float64
	DirY     float64
	PerkID   string
	Name     string
}

// GameLoop owns the tick cadence. Inputs are serialized through InputChan;
// per-session snapshots go out on SnapshotChan and finished runs on
// ResultChan for the host to persist.
type GameLoop struct {
	GameState    *GameState
	InputChan    chan PlayerInput
	SnapshotChan chan map[string]interface{} // sessionID -> snapshot
	ResultChan   chan RunResult
	StopChan     chan bool
}

func NewGameLoop(cfg *GameConfig, catalog *PerkCatalog) *GameLoop {
	return &GameLoop{
		GameState:    NewGameState(cfg, catalog),
		InputChan:    make(chan PlayerInput, 100),
		SnapshotChan: make(chan map[string]interface{}),
		ResultChan:   make(chan RunResult, 16),
		StopChan:     make(chan bool),
	}
}

func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Duration(gl.GameState.Config.Server.TickRateMs) * time.Millisecond)
	defer ticker.Stop()

	log.Println("GameLoop started.")

	for {
		select {
		case input := <-gl.InputChan:
			gl.handleInput(input)

		case <-ticker.C:
			dt := float64(gl.GameState.Config.Server.TickRateMs) / 1000.0
			gl.GameState.UpdateTick(dt)

			for _, res := range gl.GameState.DrainResults() {
				select {
				case gl.ResultChan <- res:
				default:
					// Drop rather than stall the loop; stats are best-effort.
				}
			}

			gl.GameState.Mutex.RLock()
			ids := make([]string, 0, len(gl.GameState.Runs))
			for id, r := range gl.GameState.Runs {
				if r.Connected {
					ids = append(ids, id)
				}
			}
			gl.GameState.Mutex.RUnlock()

			snapshots := make(map[string]interface{}, len(ids))
			for _, id := range ids {
				if snap := gl.GameState.GetSnapshot(id); snap != nil {
					snapshots[id] = snap
				}
			}

			select {
			case gl.SnapshotChan <- snapshots:
			default:
				// Skip the frame if the network side is busy.
			}

		case <-gl.StopChan:
			log.Println("GameLoop stopped.")
			return
		}
	}
}

func (gl *GameLoop) handleInput(input PlayerInput) {
	gs := gl.GameState
	sid := input.SessionID

	switch input.Type {
	case InputStartRun:
		seed := input.Seed
		if seed == 0 {
			seed = time.Now().UnixNano() & 0x7fffffff
		}
		depth := input.MaxDepth
		if depth == 0 {
			depth = gs.Config.Run.DefaultLength
		}
		gs.HandleStartRun(sid, seed, depth)
	case InputRelease:
		gs.HandleRelease(sid)
	case InputNudge:
		gs.HandleNudge(sid, input.DirX, input.DirY)
	case InputChoosePerk:
		gs.HandleChoosePerk(sid, input.PerkID)
	case InputNextStage:
		gs.HandleNextStage(sid)
	case InputAbandon:
		gs.HandleAbandon(sid)
	case InputLogin:
		gs.SetSessionName(sid, input.Name)
	}
}
