package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/utils/logger"
)

// Client is one push-channel connection. Interest (mode/cardID) is
// mutated only under the engine lock via Subscribe.
type Client struct {
	engine *Engine
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once

	mode   string
	cardID string
}

func newClient(engine *Engine, conn *websocket.Conn) *Client {
	return &Client{
		engine: engine,
		conn:   conn,
		send:   make(chan []byte, 32),
		mode:   models.SubNone,
	}
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// enqueue hands a frame to the write pump without blocking; a slow
// subscriber loses frames rather than stalling the board.
func (c *Client) enqueue(payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf("enqueue to closed client: %v", r)
		}
	}()
	select {
	case c.send <- payload:
	default:
		logger.Warnf("dropping frame to slow subscriber")
	}
}

func (c *Client) reply(result models.CommandResult) {
	b, err := json.Marshal(result)
	if err != nil {
		logger.Errorf("marshal command result: %v", err)
		return
	}
	c.enqueue(b)
}

func (c *Client) readPump() {
	defer func() {
		c.engine.hub.remove(c)
		c.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("push client disconnected")
			} else {
				logger.Debugf("push client read error: %v", err)
			}
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			// Malformed frames are dropped, not fatal to the connection.
			logger.Debugf("ignoring malformed ws frame: %v", err)
			continue
		}

		switch msg.Type {
		case "subscribe":
			c.engine.Subscribe(c, msg.Mode, msg.CardID)
		case "command":
			c.engine.HandleCommand(c, msg)
		default:
			logger.Debugf("ignoring ws frame type %q", msg.Type)
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("push client write error: %v", err)
			return
		}
	}
}
