package websocket

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Connection timing. The ping interval stays below the read deadline so an
// idle but healthy peer never times out.
const (
	writeTimeout     = 10 * time.Second
	readTimeout      = 60 * time.Second
	pingInterval     = 50 * time.Second
	maxInboundBytes  = 8 * 1024
	clientSendBuffer = 64
)

// Client is one authenticated websocket connection registered with the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Outbound JSON frames; closed by the hub on unregister
	send chan []byte

	userID   int64
	userName string

	// Branch room the client joined, zero when it only receives direct messages
	branchID int64

	logger zerolog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, userID int64, userName string, branchID int64, logger zerolog.Logger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, clientSendBuffer),
		userID:   userID,
		userName: userName,
		branchID: branchID,
		logger:   logger.With().Int64("userID", userID).Int64("branchID", branchID).Logger(),
	}
}

// start runs the connection until either side goes away
func (c *Client) start() {
	go c.writeLoop()
	go c.readLoop()
}

// leave hands the client back to the hub unless the hub already stopped
func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

func (c *Client) readLoop() {
	defer func() {
		c.leave()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundBytes)
	extend := func() error { return c.conn.SetReadDeadline(time.Now().Add(readTimeout)) }
	if err := extend(); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error { return extend() })

	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			c.logClose(err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.handleInbound(payload)
	}
}

func (c *Client) logClose(err error) {
	var closeErr *websocket.CloseError
	switch {
	case errors.As(err, &closeErr) && (closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway):
		c.logger.Info().Msg("WebSocket closed by client")
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		c.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
	default:
		c.logger.Debug().Err(err).Msg("WebSocket read ended")
	}
}

// writeLoop sends each queued message as its own text frame so every frame
// is a complete JSON document, and pings on an interval.
func (c *Client) writeLoop() {
	pings := time.NewTicker(pingInterval)
	defer func() {
		pings.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, open := <-c.send:
			if !open {
				_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "connection closed"))
				return
			}
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.logger.Debug().Err(err).Msg("WebSocket write failed")
				return
			}
		case <-pings.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(kind int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(kind, data)
}
