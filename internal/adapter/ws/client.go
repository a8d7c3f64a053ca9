package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Client is one websocket connection. focusUserID is set by the client's own
// enter_focus event; the websocket identity is not bound to the HTTP session,
// which mirrors the current presence contract.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	focusUserID string
}

type enterFocusPayload struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TaskName  string `json:"task_name"`
	StartTime string `json:"start_time"`
}

type leaveFocusPayload struct {
	UserID string `json:"user_id"`
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 64),
	}
}

// readPump reads presence events until the connection drops, then
// unregisters, which also clears this client's focus entry.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()

		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read failed", "error", err)
			}
			return
		}

		var event Event

		if err := json.Unmarshal(message, &event); err != nil {
			slog.Warn("discarding malformed websocket event", "error", err)
			continue
		}

		c.handleEvent(event)
	}
}

func (c *Client) handleEvent(event Event) {
	switch event.Event {
	case "enter_focus":
		var payload enterFocusPayload

		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.UserID == "" {
			return
		}

		user := FocusedUser{
			StartTime: payload.StartTime,
			Username:  payload.Username,
			TaskName:  payload.TaskName,
		}

		c.focusUserID = payload.UserID
		c.hub.registry.Enter(payload.UserID, user, c)
		c.hub.updateFocusGauge()
		c.hub.Broadcast("focus_user_joined", map[string]FocusedUser{payload.UserID: user})

	case "leave_focus":
		var payload leaveFocusPayload

		if err := json.Unmarshal(event.Data, &payload); err != nil || payload.UserID == "" {
			return
		}

		if c.hub.registry.Leave(payload.UserID) {
			if c.focusUserID == payload.UserID {
				c.focusUserID = ""
			}
			c.hub.updateFocusGauge()
			c.hub.Broadcast("focus_user_left", map[string]string{"user_id": payload.UserID})
		}

	case "get_focus_users":
		c.hub.Broadcast("update_focus_users", map[string]any{
			"focused_users": c.hub.registry.Snapshot(),
		})

	default:
		slog.Warn("unknown websocket event", "event", event.Event)
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
