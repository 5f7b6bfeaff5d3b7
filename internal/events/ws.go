package events

import (
	"net/http"
	"time"

	"dineqr-be/internal/logger"
	"dineqr-be/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from restaurant subdomains; origin checks
	// happen at the edge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades a dashboard connection and streams hub events to it.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromCtx(c.Request.Context())

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("websocket upgrade failed", zap.Error(err))
			return
		}

		ch, cancel := hub.Subscribe(32)
		metrics.DashboardClients.Inc()
		log.Info("dashboard connected", zap.String("remote", conn.RemoteAddr().String()))

		go writePump(conn, ch, cancel)
		go readPump(conn, cancel, log)
	}
}

func writePump(conn *websocket.Conn, ch <-chan []byte, cancel func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		conn.Close()
		metrics.DashboardClients.Dec()
	}()

	for {
		select {
		case body, ok := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the stream is push-only. It exists to
// notice closes and keep the pong handler serviced.
func readPump(conn *websocket.Conn, cancel func(), log *zap.Logger) {
	defer cancel()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("dashboard read error", zap.Error(err))
			}
			return
		}
	}
}
