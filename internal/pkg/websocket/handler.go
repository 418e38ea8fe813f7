package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/app/models/dto"
)

// ActorFunc extracts the authenticated actor from a request
type ActorFunc func(c *gin.Context) (*models.Actor, bool)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	actorOf  ActorFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty origin list or "*" allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string, actorOf ActorFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		actorOf: actorOf,
		logger:  logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// roomFor picks the branch room: a branch user always joins its own branch,
// a global user may join any branch through the branchId query parameter.
func roomFor(actor *models.Actor, requested string) (int64, bool) {
	if actor.BranchID != nil {
		if requested != "" && requested != strconv.FormatInt(*actor.BranchID, 10) {
			return 0, false
		}
		return *actor.BranchID, true
	}
	if requested == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(requested, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleConnection godoc
// @Summary Open the real-time notification channel
// @Description Upgrades to a WebSocket that receives notification events for the caller and branch_message events for its branch room
// @Tags realtime
// @Produce json
// @Security BearerAuth
// @Param token query string false "JWT token when the Authorization header cannot be set"
// @Param branchId query int false "Branch room to join (global roles only)"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	actor, ok := h.actorOf(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	branchID, ok := roomFor(actor, c.Query("branchId"))
	if !ok {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You cannot join this branch room")))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", actor.UserID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, actor.UserID, actor.Email, branchID, h.logger)

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		_ = conn.Close()
		return
	}
	client.start()
}
