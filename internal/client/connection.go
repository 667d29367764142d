package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/boardpredict/internal/network"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; full board states are large
	maxMessageSize = 1 << 20
)

// ErrClosed is returned once the connection is gone.
var ErrClosed = errors.New("connection closed")

// Conn is the websocket link to the game server. Submit never blocks; the
// read pump hands every server message to Incoming.
type Conn struct {
	ws  *websocket.Conn
	log *slog.Logger

	// Buffered channel for outbound messages
	send chan []byte

	incoming chan network.ServerMessage

	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to url, presenting token as a bearer credential.
func Dial(ctx context.Context, url, token string, handshakeTimeout time.Duration, log *slog.Logger) (*Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ws, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to %s (status %d): %w", url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	return newConn(ws, log), nil
}

func newConn(ws *websocket.Conn, log *slog.Logger) *Conn {
	if log == nil {
		log = slog.Default()
	}
	return &Conn{
		ws:       ws,
		log:      log,
		send:     make(chan []byte, 256),
		incoming: make(chan network.ServerMessage, 64),
		done:     make(chan struct{}),
	}
}

// Incoming delivers server messages. It is closed when the read pump stops.
func (c *Conn) Incoming() <-chan network.ServerMessage { return c.incoming }

// Run pumps messages until ctx is cancelled or the connection drops.
func (c *Conn) Run(ctx context.Context) error {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump(ctx)
	return c.readPump(ctx)
}

// readPump pumps messages from the WebSocket connection to Incoming
func (c *Conn) readPump(ctx context.Context) error {
	defer func() {
		close(c.incoming)
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read error", "error", err)
				return fmt.Errorf("read: %w", err)
			}
			return ErrClosed
		}

		var msg network.ServerMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Warn("failed to parse server message", "error", err)
			continue
		}

		select {
		case c.incoming <- msg:
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrClosed
		}
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Conn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-c.done:
			return
		}
	}
}

// Submit queues a for the server. It drops the action when the buffer is
// full; the next state message resynchronises the controller.
func (c *Conn) Submit(a models.Action) {
	c.sendMessage(&network.ClientMessage{Type: network.MsgTypeSubmit, Payload: EncodeAction(a)})
}

// Ping asks the server for a pong.
func (c *Conn) Ping() {
	c.sendMessage(&network.ClientMessage{
		Type:    network.MsgTypePing,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

func (c *Conn) sendMessage(msg *network.ClientMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to marshal message", "error", err)
		return
	}

	select {
	case <-c.done:
		c.log.Warn("connection closed, dropping message", "type", msg.Type)
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

// Close closes the connection. It is safe to call more than once.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}
