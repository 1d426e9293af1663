package session

import (
	"sync"

	"collabhub/internal/models"
	"collabhub/internal/utils"
)

// Hub is the process-wide registry of active sessions. A session is
// registered exactly as long as it has at least one member: Join creates it
// lazily, RemoveIfEmpty tears it down with the last leave.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *utils.Logger
}

func NewHub(log *utils.Logger) *Hub {
	return &Hub{rooms: make(map[string]*Room), log: log}
}

// GetOrCreate returns the session, creating an empty one when unseen. The
// returned room is always fully constructed.
func (h *Hub) GetOrCreate(id string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.getOrCreateLocked(id)
}

func (h *Hub) getOrCreateLocked(id string) *Room {
	if r, ok := h.rooms[id]; ok {
		return r
	}
	r := NewRoom(id, h.log)
	h.rooms[id] = r
	return r
}

// Join resolves the room and adds the member to it under the hub lock.
// Holding the lock across both steps closes the window where a concurrent
// RemoveIfEmpty could delete the room between lookup and insert.
func (h *Hub) Join(id string, m models.Member, c *Client) (*Room, models.SessionSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := h.getOrCreateLocked(id)
	snap := r.AddMember(m, c)
	return r, snap
}

func (h *Hub) Get(id string) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[id]
	return r, ok
}

// RemoveIfEmpty drops the session when its last member is gone. The member
// count is checked under the hub lock, so a join landing concurrently keeps
// the room alive. Reports whether the session was removed.
func (h *Hub) RemoveIfEmpty(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[id]
	if !ok || r.MemberCount() > 0 {
		return false
	}
	delete(h.rooms, id)
	return true
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
