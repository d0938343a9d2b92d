package listing_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ms-directory/internal/kafka"
	"ms-directory/internal/utils"
)

var streamKinds = map[string]bool{
	"":               true,
	kafka.KindVenue:  true,
	kafka.KindArtist: true,
	kafka.KindShow:   true,
}

// ListingEvents streams committed listing changes as server-sent events.
// ?kind=venue|artist|show narrows the stream.
func (h *Handler) ListingEvents(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if !streamKinds[kind] {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("unknown listing kind", fmt.Sprintf("kind %q is not venue, artist or show", kind)))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Streams outlive the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	setupSSEHeaders(w)
	ctx := r.Context()
	events := h.Events.Subscribe(ctx, kind)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"kind\":%q}\n\n", kind)
	flusher.Flush()
	h.Logger.Info("SSE", fmt.Sprintf("Client connected to listing events (kind=%q)", kind))

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize listing event: %v", err))
				continue
			}
			fmt.Fprintf(w, "event: listing\ndata: %s\n\n", data)
			flusher.Flush()

		case <-ctx.Done():
			h.Logger.Debug("SSE", "Client disconnected from listing events")
			return
		}
	}
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
