package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cmac277/webgen4/internal/pkg/jwt"
	"github.com/cmac277/webgen4/internal/pkg/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	hub       *ws.Hub
	jwtSecret string
}

func NewWebSocketHandler(hub *ws.Hub, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// 客户端订阅指令
type wsCommand struct {
	Action  string `json:"action"` // subscribe, unsubscribe
	VideoID int64  `json:"video_id"`
}

// Handle WebSocket 连接处理，客户端订阅视频后接收互动计数推送。
// 匿名观众也可以订阅，token 可选。
// GET /api/v1/ws?token=xxx
func (h *WebSocketHandler) Handle(c *gin.Context) {
	var userID int64
	if token := c.Query("token"); token != "" {
		claims, err := jwt.ParseToken(token, h.jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID = claims.UserID
	}

	// 升级连接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
	}

	// 读取订阅指令，连接断开时清理全部订阅
	go func() {
		defer func() {
			h.hub.Remove(client)
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var cmd wsCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				continue // 忽略非法指令
			}

			switch cmd.Action {
			case "subscribe":
				h.hub.Subscribe(client, cmd.VideoID)
			case "unsubscribe":
				h.hub.Unsubscribe(client, cmd.VideoID)
			}
		}
	}()
}
