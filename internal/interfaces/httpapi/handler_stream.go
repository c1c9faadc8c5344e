package httpapi

import (
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/futdraft/internal/interfaces/view"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadLimit    = 512
	streamSnapshotType = "draft.snapshot"
)

// StreamDraft upgrades to a websocket that sends the current snapshot and then
// every event of the session until it is reset or the client leaves.
func (h *Handler) StreamDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draftID := strings.TrimSpace(r.PathValue("draftID"))

	if _, err := h.drafts.Snapshot(draftID); err != nil {
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "draft_id", draftID, "error", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(draftID)
	defer sub.Close()

	snapshot, err := h.drafts.Snapshot(draftID)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session gone"), time.Now().Add(streamWriteTimeout))
		return
	}
	initial, err := sonic.Marshal(view.Event{Type: streamSnapshotType, At: time.Now().UTC(), Snapshot: view.NewSnapshot(snapshot)})
	if err != nil {
		h.logger.ErrorContext(ctx, "encode initial snapshot failed", "draft_id", draftID, "error", err)
		return
	}
	if err := writeFrame(conn, initial); err != nil {
		return
	}

	gone := make(chan struct{})
	go readUntilClosed(conn, h.streamPing, gone)

	ping := time.NewTicker(h.streamPing)
	defer ping.Stop()

	h.logger.DebugContext(ctx, "draft stream opened", "draft_id", draftID)
	defer func() {
		h.logger.DebugContext(ctx, "draft stream closed", "draft_id", draftID, "dropped_frames", sub.Dropped())
	}()

	for {
		select {
		case <-gone:
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteTimeout)); err != nil {
				return
			}
		case frame, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(streamWriteTimeout))
				return
			}
			if err := writeFrame(conn, frame.Data); err != nil {
				return
			}
			if frame.Terminal() {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session reset"), time.Now().Add(streamWriteTimeout))
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// readUntilClosed drains client frames so control messages are processed, and
// closes gone when the peer stops answering pings.
func readUntilClosed(conn *websocket.Conn, ping time.Duration, gone chan<- struct{}) {
	defer close(gone)

	deadline := 2 * ping
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(deadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(deadline))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
