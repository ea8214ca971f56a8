package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"dconn.dev/dungeon/internal/models"
	"dconn.dev/dungeon/internal/services"
)

const (
	frameWriteTimeout = 5 * time.Second
	maxCloseReason    = 120 // close frames carry at most 123 bytes of reason
)

// StreamStages handles GET /api/maps/{seed}/stream - sends one JSON stage
// frame per pipeline step over a websocket, then closes it
func (h *MapHandler) StreamStages(w http.ResponseWriter, r *http.Request) {
	seed, ok := parseSeed(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Printf("Error accepting websocket: %v", err)
		return
	}

	ctx := r.Context()
	err = h.mapService.Stream(seed, r.URL.Query().Get("profile"), func(f models.StageFrame) error {
		return writeFrame(ctx, conn, f)
	})

	switch {
	case err == nil:
		conn.Close(websocket.StatusNormalClosure, "")
	case errors.Is(err, services.ErrUnknownProfile):
		conn.Close(websocket.StatusPolicyViolation, closeReason(err))
	default:
		log.Printf("Error streaming map %d: %v", seed, err)
		conn.Close(websocket.StatusInternalError, closeReason(err))
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, f models.StageFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, frameWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func closeReason(err error) string {
	reason := err.Error()
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	return reason
}
