package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tablebook/internal/domain/user"
	"tablebook/internal/notify"
	"tablebook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// Cross-origin handshakes are allowed; the token query parameter is
		// the access control.
		return true
	},
}

// StreamHandler bridges hub subscriptions onto WebSockets. Customers stream
// events for their token's phone; admins pick any phone with ?phone=.
type StreamHandler struct {
	hub            *notify.Hub
	tokenValidator usecase.TokenValidator
}

func NewStreamHandler(hub *notify.Hub, tokenValidator usecase.TokenValidator) *StreamHandler {
	return &StreamHandler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// @Summary Booking status stream
// @Description WebSocket stream of booking status events for one phone
// @Tags stream
// @Param token query string true "Access token"
// @Param phone query string false "Phone to watch (admin only)"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /ws/bookings [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	identity, err := h.tokenValidator.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	phone := identity.Phone
	if identity.Role == user.RoleAdmin {
		phone = strings.TrimSpace(c.Query("phone"))
	}
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No phone to subscribe to"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	sub := h.hub.Subscribe(phone)
	go writePump(conn, sub)
	go readPump(conn, sub)
}

// writePump forwards hub events to the socket and keeps the connection
// alive with pings. It owns all writes.
func writePump(conn *websocket.Conn, sub *notify.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and detects disconnects; closing the
// subscription stops the write side.
func readPump(conn *websocket.Conn, sub *notify.Subscription) {
	defer func() {
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
