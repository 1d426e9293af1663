package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"collabhub/internal/models"
	"collabhub/internal/services"
	"collabhub/internal/session"
	"collabhub/internal/utils"
)

type Handlers struct {
	log    *utils.Logger
	hub    *session.Hub
	router *Router
	events *services.EventsService
}

func NewHandlers(log *utils.Logger, events *services.EventsService) *Handlers {
	return NewHandlersWithDeps(log, session.NewHub(log), NewRouter(log), events)
}

func NewHandlersWithDeps(log *utils.Logger, hub *session.Hub, router *Router, events *services.EventsService) *Handlers {
	return &Handlers{log: log, hub: hub, router: router, events: events}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// CreateSession mints a shareable session id. The session itself only
// materializes in the registry on the first websocket join, so no empty
// session ever lingers.
func (h *Handlers) CreateSession(w http.ResponseWriter, _ *http.Request) {
	id := utils.GenerateSessionID()
	h.log.Info("minted session id", "sessionId", id)
	writeJSON(w, models.CreateSessionResponse{SessionID: id})
}

func (h *Handlers) SessionStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}
	room, ok := h.hub.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, models.SessionStatusResponse{SessionID: id, UserCount: room.MemberCount()})
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// CollabWS drives one participant's join → active → leave lifecycle.
func (h *Handlers) CollabWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	if utils.SessionAuthEnabled() {
		token := r.URL.Query().Get("token")
		if token == "" {
			var err error
			if token, err = utils.ExtractTokenFromHeader(r.Header.Get("Authorization")); err != nil {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
		}
		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if claims.SessionId != sessionID {
			http.Error(w, "token does not match session", http.StatusBadRequest)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	member := models.Member{ID: uuid.NewString(), Color: utils.RandomColor()}
	client := session.NewClient(conn)
	go client.WritePump(h.log)
	defer client.Close()

	room, _ := h.hub.Join(sessionID, member, client)
	h.log.Info("member joined", "sessionId", sessionID, "memberId", member.ID)

	// Terminal cleanup runs exactly once on every exit path: peer disconnect,
	// protocol violation or transport error.
	defer func() {
		started := room.CreatedAt()
		room.RemoveMember(member.ID)
		snap := room.Snapshot()
		removed := h.hub.RemoveIfEmpty(sessionID)
		h.log.Info("member left", "sessionId", sessionID, "memberId", member.ID, "sessionRemoved", removed)
		if removed && h.events.Enabled() {
			now := time.Now()
			_ = h.events.PublishSessionEnded(models.SessionEndedEvent{
				SessionID:    sessionID,
				FinalCode:    snap.Code,
				ChatMessages: len(snap.ChatMessages),
				StartedAt:    started.Format(time.RFC3339),
				EndedAt:      now.Format(time.RFC3339),
				DurationSec:  int(now.Sub(started).Seconds()),
			})
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.router.Dispatch(room, member.ID, client, raw)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
