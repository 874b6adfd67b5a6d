package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub 按视频维护订阅连接，向正在观看的客户端推送互动计数更新
type Hub struct {
	// 每个视频可以有多个订阅连接，每个连接可以订阅多个视频
	watchers map[int64]map[*Client]struct{}
	mu       sync.RWMutex
}

type Client struct {
	UserID int64 // 0 表示匿名观众
	Conn   *websocket.Conn
	mu     sync.Mutex // 写锁，防止并发写入
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[int64]map[*Client]struct{}),
	}
}

// Subscribe 订阅某个视频的互动更新
func (h *Hub) Subscribe(client *Client, videoID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[videoID] == nil {
		h.watchers[videoID] = make(map[*Client]struct{})
	}
	h.watchers[videoID][client] = struct{}{}
}

// Unsubscribe 取消订阅某个视频
func (h *Hub) Unsubscribe(client *Client, videoID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.watchers[videoID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.watchers, videoID)
		}
	}
}

// Remove 移除连接的全部订阅（连接断开时调用）
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for videoID, conns := range h.watchers {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.watchers, videoID)
		}
	}
}

// BroadcastToVideo 向订阅了该视频的所有连接发送消息
func (h *Hub) BroadcastToVideo(videoID int64, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns, ok := h.watchers[videoID]
	if !ok {
		h.mu.RUnlock()
		return nil
	}
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(conns))
	for c := range conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("BroadcastToVideo write error for video %d: %v", videoID, err)
		}
	}
	return nil
}

// WatcherCount 获取某个视频的订阅连接数
func (h *Hub) WatcherCount(videoID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[videoID])
}
