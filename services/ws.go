package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/openbingo/board-server/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades a connection into a push-channel client.
// Connections start with no interest; a subscribe message opts in.
func HandleWebSocket(e *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("ws upgrade error: %v", err)
			return
		}
		client := newClient(e, conn)
		e.Attach(client)
		logger.Debug("push client connected")
	}
}
