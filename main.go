package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"wobblediver_server/logic"
	"wobblediver_server/network"
	"wobblediver_server/storage"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig(path string) *logic.GameConfig {
	cfg := logic.DefaultGameConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("No config file at %s, using defaults: %v", path, err)
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Fatalf("Parse config error: %v", err)
	}
	logic.ClampGameConfig(cfg)
	return cfg
}

func main() {
	// 1. Env + config
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using process environment")
	}
	cfg := loadConfig(envOr("WOBBLE_CONFIG", "game_config.json"))

	// 2. Persistence + rooms
	storage.InitDB(envOr("WOBBLE_DB", "wobblediver.db"))
	catalog := logic.DefaultPerkCatalog()
	network.InitManager()
	network.GlobalManager.CreateRoom("reef_1", cfg, catalog)

	// 3. Router
	r := mux.NewRouter()

	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		roomID := req.URL.Query().Get("room")
		if roomID == "" {
			roomID = "reef_1"
		}
		room := network.GlobalManager.GetRoom(roomID)
		if room == nil {
			http.Error(w, "no such room", http.StatusNotFound)
			return
		}
		network.ServeWs(room, w, req)
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/rooms", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(network.GlobalManager.ListRooms())
	}).Methods(http.MethodGet)

	r.HandleFunc("/stats/{session}", func(w http.ResponseWriter, req *http.Request) {
		stats, ok := storage.LoadStats(mux.Vars(req)["session"])
		if !ok {
			http.Error(w, "no stats for session", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}).Methods(http.MethodGet)

	// 4. Start server
	addr := envOr("WOBBLE_ADDR", ":8080")
	log.Printf("Wobblediver server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("ListenAndServe:", err)
	}
}
