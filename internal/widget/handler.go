package widget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const wsWriteWait = 10 * time.Second

// Handler exposes the widget to the host page.
type Handler struct {
	svc        Service
	transcript *Transcript
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

func NewHandler(svc Service, transcript *Transcript, log zerolog.Logger) *Handler {
	return &Handler{
		svc:        svc,
		transcript: transcript,
		upgrader: websocket.Upgrader{
			// origin policy is enforced by the CORS layer
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "host").Logger(),
	}
}

// SendMessage — UI "send" event
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.svc.Send(payload.Text)

	// the answer arrives through the transcript
	w.WriteHeader(http.StatusAccepted)
}

type backendView struct {
	URL  string `json:"url"`
	Mock bool   `json:"mock"`
}

func (h *Handler) GetBackend(w http.ResponseWriter, _ *http.Request) {
	url, ok := h.svc.BackendURL()
	writeJSON(w, http.StatusOK, backendView{URL: url, Mock: !ok})
}

// SetBackend is the page-level setBackend(url) hook.
func (h *Handler) SetBackend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.svc.Override(payload.URL)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Toggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"visible": h.svc.Toggle()})
}

func (h *Handler) Transcript(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.transcript.Events())
}

// Stream pushes every new display event over a websocket.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.transcript.Subscribe()
	defer cancel()

	// reader: detect client close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug().Err(err).Msg("websocket write failed")
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
