package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"wastehub/internal/shared/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	authWait       = 5 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AuthFunc проверяет токен из первого сообщения клиента.
// Возвращает userID и роль либо ошибку.
type AuthFunc func(token string) (userID, role string, err error)

// Client — одно WS-подключение авторизованного пользователя
type Client struct {
	UserID string
	Role   string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
}

// Hub управляет всеми активными WS-подключениями
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	auth       AuthFunc
	log        *logger.Logger
	mu         sync.RWMutex
}

// Message — типизированное сообщение для клиента
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

func NewHub(auth AuthFunc, log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		auth:       auth,
		log:        log,
	}
}

// Run — главный цикл хаба, запускать в отдельной горутине
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			if h.byUser[c.UserID] == nil {
				h.byUser[c.UserID] = make(map[*Client]struct{})
			}
			h.byUser[c.UserID][c] = struct{}{}
			h.mu.Unlock()

			h.log.Info(logger.Entry{
				Action:  "ws_client_connected",
				Message: c.UserID,
				Additional: map[string]any{
					"role": c.Role,
				},
			})

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				if set := h.byUser[c.UserID]; set != nil {
					delete(set, c)
					if len(set) == 0 {
						delete(h.byUser, c.UserID)
					}
				}
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// клиент не успевает читать, пропускаем
				}
			}
			h.mu.RUnlock()
		}
	}
}

// SendToUser отправляет сырые байты всем подключениям пользователя
func (h *Hub) SendToUser(userID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byUser[userID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// SendToUserJSON сериализует сообщение и отправляет пользователю
func (h *Hub) SendToUserJSON(userID string, msgType string, payload any) error {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}
	h.SendToUser(userID, data)
	return nil
}

// SendToRole отправляет сообщение всем пользователям с указанной ролью
func (h *Hub) SendToRole(role string, msgType string, payload any) error {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.Role != role {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (h *Hub) Broadcast(msgType string, payload any) error {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}
	h.broadcast <- data
	return nil
}

// ConnectedUsers возвращает количество уникальных подключенных пользователей
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser)
}

type authRequest struct {
	Token string `json:"token"`
}

// ServeWS апгрейдит HTTP-соединение и ждет auth-сообщение с токеном.
// Без валидного токена в течение authWait соединение закрывается.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	// первое сообщение — обязательно auth
	_ = conn.SetReadDeadline(time.Now().Add(authWait))
	var req authRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(Message{Type: "error", Payload: "auth required"})
		_ = conn.Close()
		return
	}

	userID, role, err := h.auth(req.Token)
	if err != nil {
		h.log.Warn(logger.Entry{
			Action:  "ws_auth_failed",
			Message: err.Error(),
		})
		_ = conn.WriteJSON(Message{Type: "error", Payload: "invalid token"})
		_ = conn.Close()
		return
	}

	client := &Client{
		UserID: userID,
		Role:   role,
		conn:   conn,
		send:   make(chan []byte, 32),
		hub:    h,
	}

	h.register <- client
	_ = conn.WriteJSON(Message{Type: "auth_ok"})

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// входящие сообщения после auth игнорируем, читаем только для keepalive
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
