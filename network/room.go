package network

import (
	"log"
	"sync"

	"wobblediver_server/logic"
	"wobblediver_server/storage"
)

type Room struct {
	ID         string
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	GameLoop   *logic.GameLoop
	Config     *logic.GameConfig
	Mutex      sync.RWMutex
}

func NewRoom(id string, cfg *logic.GameConfig, catalog *logic.PerkCatalog) *Room {
	return &Room{
		ID:         id,
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		GameLoop:   logic.NewGameLoop(cfg, catalog),
		Config:     cfg,
	}
}

func (r *Room) Run() {
	go r.GameLoop.Run()
	log.Printf("Room %s started. Tick: %dms", r.ID, r.Config.Server.TickRateMs)

	for {
		select {
		case client := <-r.Register:
			r.Mutex.Lock()
			// If the same session_id is already connected, drop the old connection.
			for other := range r.Clients {
				if other != nil && other.SessionID == client.SessionID {
					delete(r.Clients, other)
					close(other.Send)
				}
			}
			r.Clients[client] = true
			r.GameLoop.GameState.AddSession(client.SessionID)

			client.SendJSON(map[string]interface{}{
				"type": MsgLoginAck,
				"payload": map[string]interface{}{
					"success":    true,
					"session_id": client.SessionID,
					"config":     r.Config,
				},
			})
			r.Mutex.Unlock()

		case client := <-r.Unregister:
			r.Mutex.Lock()
			if _, ok := r.Clients[client]; ok {
				delete(r.Clients, client)
				// Only mark disconnected if no other connection for this session_id exists.
				stillConnected := false
				for other := range r.Clients {
					if other != nil && other.SessionID == client.SessionID {
						stillConnected = true
						break
					}
				}
				if !stillConnected {
					r.GameLoop.GameState.MarkSessionDisconnected(client.SessionID)
				}
				close(client.Send)
			}
			r.Mutex.Unlock()

		case res := <-r.GameLoop.ResultChan:
			storage.SaveRunResult(res.SessionID, res.Name, res.Cleared, res.Depth, res.Score)

		case snapshots := <-r.GameLoop.SnapshotChan:
			r.Mutex.RLock()
			for client := range r.Clients {
				if snap, ok := snapshots[client.SessionID]; ok {
					msg := map[string]interface{}{
						"type":    MsgSnapshot,
						"payload": snap,
					}
					select {
					case client.Send <- toJSON(msg):
					default:
					}
				}
			}
			r.Mutex.RUnlock()
		}
	}
}
