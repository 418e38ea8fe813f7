package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/consultdesk/internal/app/models"
)

func newTestClient(hub *Hub, userID, branchID int64, buffer int) *Client {
	return &Client{
		hub:      hub,
		send:     make(chan []byte, buffer),
		userID:   userID,
		branchID: branchID,
		logger:   zerolog.Nop(),
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})
	return hub, cancel
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHubDeliversNotificationToUserOnly(t *testing.T) {
	hub, _ := startHub(t)
	alice := newTestClient(hub, 1, 10, 4)
	bob := newTestClient(hub, 2, 10, 4)
	hub.register <- alice
	hub.register <- bob

	branch := int64(10)
	hub.PublishNotification(&models.Notification{ID: 5, UserID: 1, Message: "Passport expires soon", BranchID: &branch})

	msg := receive(t, alice)
	assert.Equal(t, MessageTypeNotification, msg.Type)
	require.NotNil(t, msg.Notification)
	assert.Equal(t, int64(5), msg.Notification.ID)

	select {
	case <-bob.send:
		t.Fatal("notification leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastsToBranchRoom(t *testing.T) {
	hub, _ := startHub(t)
	inBranch := newTestClient(hub, 1, 10, 4)
	otherBranch := newTestClient(hub, 2, 20, 4)
	hub.register <- inBranch
	hub.register <- otherBranch

	inBranch.handleInbound([]byte(`{"content":"  staff meeting at 3  "}`))

	msg := receive(t, inBranch)
	assert.Equal(t, MessageTypeBranchMessage, msg.Type)
	assert.Equal(t, "staff meeting at 3", msg.Content)
	assert.Equal(t, int64(1), msg.SenderID)

	select {
	case <-otherBranch.send:
		t.Fatal("branch message leaked to another branch")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)
	slow := newTestClient(hub, 1, 10, 0)
	hub.register <- slow

	hub.BroadcastToBranch(10, &Message{Type: MessageTypeBranchMessage, Content: "hello"})

	require.Eventually(t, func() bool {
		return hub.ConnectionsForUser(1) == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-slow.send
	assert.False(t, open)
}

func TestRoomFor(t *testing.T) {
	branch := int64(3)
	branchActor := &models.Actor{UserID: 1, Role: models.RoleCounselor, BranchID: &branch}
	globalActor := &models.Actor{UserID: 2, Role: models.RoleAdmin}

	room, ok := roomFor(branchActor, "")
	assert.True(t, ok)
	assert.Equal(t, int64(3), room)

	_, ok = roomFor(branchActor, "4")
	assert.False(t, ok)

	room, ok = roomFor(globalActor, "4")
	assert.True(t, ok)
	assert.Equal(t, int64(4), room)

	room, ok = roomFor(globalActor, "")
	assert.True(t, ok)
	assert.Equal(t, int64(0), room)
}
