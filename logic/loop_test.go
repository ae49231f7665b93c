package logic

import (
	"testing"
	"time"
)

func TestGameLoopSnapshotsAndResults(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Server.TickRateMs = 10
	gl := NewGameLoop(cfg, DefaultPerkCatalog())
	go gl.Run()
	defer func() { gl.StopChan <- true }()

	gl.GameState.AddSession("s1")
	gl.InputChan <- PlayerInput{SessionID: "s1", Type: InputStartRun, Seed: 42, MaxDepth: 6}

	// Wait for a snapshot showing the run in progress.
	timeout := time.After(2 * time.Second)
	for {
		select {
		case snaps := <-gl.SnapshotChan:
			snap, ok := snaps["s1"].(map[string]interface{})
			if !ok {
				continue
			}
			if snap["phase"] == "stage" {
				goto started
			}
		case <-timeout:
			t.Fatal("timed out waiting for stage snapshot")
		}
	}
started:

	gl.InputChan <- PlayerInput{SessionID: "s1", Type: InputAbandon}

	timeout = time.After(2 * time.Second)
	for {
		select {
		case res := <-gl.ResultChan:
			if res.SessionID != "s1" || res.Cleared {
				t.Fatalf("unexpected result %+v", res)
			}
			return
		case <-gl.SnapshotChan:
			// keep the loop from skipping frames while we wait
		case <-timeout:
			t.Fatal("timed out waiting for run result")
		}
	}
}

func TestGameLoopDefaultsSeedAndLength(t *testing.T) {
	cfg := DefaultGameConfig()
	gl := NewGameLoop(cfg, DefaultPerkCatalog())

	gl.GameState.AddSession("s1")
	gl.handleInput(PlayerInput{SessionID: "s1", Type: InputStartRun})

	r := gl.GameState.Runs["s1"]
	if r.Map == nil {
		t.Fatal("run not started")
	}
	if r.Map.MaxDepth != cfg.Run.DefaultLength {
		t.Fatalf("depth = %d, want default %d", r.Map.MaxDepth, cfg.Run.DefaultLength)
	}
	if r.Map.RunSeed == 0 {
		t.Fatal("zero seed should be replaced")
	}
}
