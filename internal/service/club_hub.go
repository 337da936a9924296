package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bookclub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	onlineTTL      = 2 * time.Minute
	eventChannel   = "club_events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClubEvent is one realtime message fanned out to a club's connected
// members: new posts, leaderboard changes, reminders.
type ClubEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type hubClient struct {
	hub     *ClubHub
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	clubIDs map[uint]bool
	limiter *rate.Limiter
}

// ClubHub fans club events out to websocket clients. Cross-instance
// delivery rides a redis pub/sub channel; presence lives in redis keys
// with a TTL so a crashed instance's users age out.
type ClubHub struct {
	mu         sync.RWMutex
	clients    map[uint][]*hubClient // by user ID; one user may hold several tabs
	register   chan *hubClient
	unregister chan *hubClient
	redis      *redis.Client
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewClubHub(rdb *redis.Client) *ClubHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &ClubHub{
		clients:    make(map[uint][]*hubClient),
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
		redis:      rdb,
		ctx:        ctx,
		cancel:     cancel,
	}
}

type hubEnvelope struct {
	ClubID  uint            `json:"clubId"`
	Payload json.RawMessage `json:"payload"`
}

func (h *ClubHub) Run() {
	pubsub := h.redis.Subscribe(h.ctx, eventChannel)
	go func() {
		for msg := range pubsub.Channel() {
			var env hubEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logger.Log.Error("club event unmarshal error", zap.Error(err))
				continue
			}
			h.deliverLocal(env.ClubID, env.Payload)
		}
	}()

	heartbeat := time.NewTicker(time.Minute)
	defer heartbeat.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
			h.redis.Set(h.ctx, presenceKey(client.userID), "true", onlineTTL)

		case client := <-h.unregister:
			h.mu.Lock()
			conns := h.clients[client.userID]
			for i, c := range conns {
				if c == client {
					h.clients[client.userID] = append(conns[:i], conns[i+1:]...)
					close(client.send)
					break
				}
			}
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
				h.redis.Del(h.ctx, presenceKey(client.userID))
			}
			h.mu.Unlock()

		case <-heartbeat.C:
			h.refreshPresence()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *ClubHub) Stop() {
	h.cancel()
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for _, c := range conns {
			c.conn.Close()
		}
	}
	h.clients = make(map[uint][]*hubClient)
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("user:online:%d", userID)
}

func (h *ClubHub) refreshPresence() {
	pipe := h.redis.Pipeline()
	h.mu.RLock()
	for userID := range h.clients {
		pipe.Expire(h.ctx, presenceKey(userID), onlineTTL)
	}
	h.mu.RUnlock()
	if _, err := pipe.Exec(h.ctx); err != nil && err != redis.Nil {
		logger.Log.Error("presence refresh error", zap.Error(err))
	}
}

// BroadcastToClub publishes an event for every instance to deliver to its
// locally connected members of the club.
func (h *ClubHub) BroadcastToClub(clubID uint, event ClubEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("club event marshal error", zap.Error(err))
		return
	}
	env, _ := json.Marshal(hubEnvelope{ClubID: clubID, Payload: payload})
	if err := h.redis.Publish(h.ctx, eventChannel, env).Err(); err != nil {
		logger.Log.Error("club event publish error", zap.Error(err))
	}
}

func (h *ClubHub) deliverLocal(clubID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conns := range h.clients {
		for _, c := range conns {
			if !c.clubIDs[clubID] {
				continue
			}
			select {
			case c.send <- payload:
			default:
				// Slow consumer; drop rather than block the hub.
			}
		}
	}
}

// ServeWS upgrades the request and attaches the client to its clubs.
func (h *ClubHub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint, clubIDs []uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	subs := make(map[uint]bool, len(clubIDs))
	for _, id := range clubIDs {
		subs[id] = true
	}

	client := &hubClient{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 64),
		userID:  userID,
		clubIDs: subs,
		limiter: rate.NewLimiter(30, 50),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *hubClient) readPump() {
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
		// Clients only listen; inbound frames just keep the connection
		// alive and are rate limited away.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("websocket unexpected close", zap.Error(err), zap.Uint("userId", c.userID))
			}
			break
		}
		if !c.limiter.Allow() {
			continue
		}
	}
}

func (c *hubClient) writePump() {
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
