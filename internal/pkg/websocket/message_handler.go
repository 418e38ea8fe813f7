package websocket

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBranchMessageLength = 2000

// inboundMessage is what a client may send: a text message for its branch room
type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// handleInbound validates a client frame and broadcasts it to the client's branch room
func (c *Client) handleInbound(raw []byte) {
	raw = bytes.TrimSpace(raw)

	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to unmarshal client message")
		return
	}
	if in.Type != "" && in.Type != MessageTypeBranchMessage {
		c.logger.Debug().Str("type", in.Type).Msg("Ignoring unsupported client message type")
		return
	}
	if c.branchID == 0 {
		c.logger.Debug().Msg("Client without a branch room tried to broadcast")
		return
	}

	content := strings.TrimSpace(in.Content)
	if content == "" || utf8.RuneCountInString(content) > maxBranchMessageLength {
		return
	}

	branchID := c.branchID
	// Sender identity always comes from the authenticated connection
	c.hub.BroadcastToBranch(branchID, &Message{
		Type:       MessageTypeBranchMessage,
		BranchID:   &branchID,
		SenderID:   c.userID,
		SenderName: c.userName,
		Content:    content,
		Timestamp:  time.Now(),
	})
}
