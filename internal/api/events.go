package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vytor/colorflash/internal/errors"
	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/models"
)

const defaultHeartbeat = 15 * time.Second

// handleEvents streams one "snapshot" server-sent event per engine change,
// starting with the current snapshot.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		handleError(w, r, errors.NewInternalError(fmt.Errorf("response writer does not support streaming")))
		return
	}

	snaps := make(chan models.Snapshot, 16)
	unsubscribe := s.Engine.Subscribe(func(snap models.Snapshot) {
		select {
		case snaps <- snap:
		case <-ctx.Done():
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := s.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	log.Info("event stream opened")
	for {
		select {
		case <-ctx.Done():
			log.Info("event stream closed")
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case snap := <-snaps:
			data, err := json.Marshal(snap)
			if err != nil {
				log.Error("failed to encode snapshot: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, data); err != nil {
				log.Debug("event stream write failed: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}
