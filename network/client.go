package network

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"wobblediver_server/logic"

	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 16
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 25 * time.Second
)

var Upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	Hub       *Room
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

// clientMessage is the inbound envelope: numeric type code plus payload.
type clientMessage struct {
	Type    int             `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client -> server message codes
const (
	MsgStartRun   = 2001
	MsgRelease    = 2002
	MsgChoosePerk = 2003
	MsgNextStage  = 2004
	MsgAbandon    = 2005
	MsgNudge      = 2006
	MsgLogin      = 2007
)

// Server -> client message codes
const (
	MsgLoginAck = 1001
	MsgSnapshot = 3002
)

func ServeWs(room *Room, w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	// Returning clients pass their session id to resume stats/runs.
	sessID := r.URL.Query().Get("session")
	if sessID == "" {
		sessID = fmt.Sprintf("u_%d", time.Now().UnixNano())
	}

	client := &Client{Hub: room, Conn: conn, Send: make(chan []byte, 256), SessionID: sessID}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(readLimit)
	_ = c.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if input, ok := c.decodeInput(msg); ok {
			c.Hub.GameLoop.InputChan <- input
		}
	}
}

func (c *Client) decodeInput(msg clientMessage) (logic.PlayerInput, bool) {
	input := logic.PlayerInput{SessionID: c.SessionID}

	switch msg.Type {
	case MsgStartRun:
		var p struct {
			Seed     int64 `json:"seed"`
			MaxDepth int   `json:"max_depth"`
		}
		_ = json.Unmarshal(msg.Payload, &p)
		input.Type = logic.InputStartRun
		input.Seed = p.Seed
		input.MaxDepth = p.MaxDepth
	case MsgRelease:
		input.Type = logic.InputRelease
	case MsgChoosePerk:
		var p struct {
			PerkID string `json:"perk_id"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil || p.PerkID == "" {
			return input, false
		}
		input.Type = logic.InputChoosePerk
		input.PerkID = p.PerkID
	case MsgNextStage:
		input.Type = logic.InputNextStage
	case MsgAbandon:
		input.Type = logic.InputAbandon
	case MsgNudge:
		var p struct {
			DirX float64 `json:"dir_x"`
			DirY float64 `json:"dir_y"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return input, false
		}
		input.Type = logic.InputNudge
		input.DirX = p.DirX
		input.DirY = p.DirY
	case MsgLogin:
		var p struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(msg.Payload, &p)
		input.Type = logic.InputLogin
		input.Name = p.Name
	default:
		return input, false
	}
	return input, true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.Send <- b:
	default:
	}
}

func toJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}
