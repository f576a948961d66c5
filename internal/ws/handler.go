package ws

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/ws"
	"github.com/rs/zerolog/log"
)

type wsHandler struct {
	notificationHub *ws.WebSocketNotificationHub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := wsHandler{
		notificationHub: ws.NewNotificationHub(),
	}

	routes := rg.Group("/ws")
	routes.GET("/orders/:address", middleware.VerifyAuthToken, handler.serveWs)
}

func (wsh *wsHandler) serveWs(c *gin.Context) {
	address := c.Param("address")
	topic := fmt.Sprintf("orders/%s", address)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading order notification socket")
		return
	}
	defer wsh.notificationHub.UnregisterListener(topic, conn)

	wsh.notificationHub.RegisterListener(topic, conn)

	for {
		var buffer any
		err := conn.ReadJSON(&buffer)
		if err != nil {
			log.Warn().Err(err).Msg("Error reading ws message")
			return
		}
	}
}
