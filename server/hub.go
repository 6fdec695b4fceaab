package server

import (
	"encoding/json"
	"sync"
)

// Hub 持有所有 WebSocket 客户端，机器人状态变化时广播
type Hub struct {
	mu      sync.Mutex
	clients map[*ClientConn]struct{}
}

// NewHub 订阅 robot 的状态变化
func NewHub(robot *Robot) *Hub {
	h := &Hub{clients: make(map[*ClientConn]struct{})}
	robot.OnChange(h.Broadcast)
	return h
}

func (h *Hub) Join(c *ClientConn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Leave 移除并关闭客户端
func (h *Hub) Leave(c *ClientConn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast 将状态以文本 JSON 推给所有客户端（入队不阻塞）
func (h *Hub) Broadcast(s State) {
	b, _ := json.Marshal(stateMessage(s))

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Enqueue(b)
	}
}

type stateMsg struct {
	Type string `json:"type"`
	State
}

func stateMessage(s State) stateMsg {
	return stateMsg{Type: "state", State: s}
}
