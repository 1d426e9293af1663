package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"collabhub/internal/models"
	"collabhub/internal/utils"
)

// Room holds the authoritative shared state for one collaboration session:
// the code buffer, the chat history and the member set. Every mutation and
// the fan-out it triggers happen under one lock, so all members observe
// mutations and their notifications in the same total order.
type Room struct {
	ID string

	mu        sync.Mutex
	code      string
	chat      []models.ChatMessage
	members   map[string]*models.Member
	clients   map[string]*Client
	order     []string
	createdAt time.Time
	log       *utils.Logger
}

func NewRoom(id string, log *utils.Logger) *Room {
	return &Room{
		ID:        id,
		members:   make(map[string]*models.Member),
		clients:   make(map[string]*Client),
		createdAt: time.Now(),
		log:       log,
	}
}

// AddMember inserts the member, announces it to the rest of the session and
// queues the joined snapshot on the member's own connection. Holding the lock
// across all three steps means the snapshot can never mix pre- and post-join
// state, and no later mutation's broadcast can outrun it.
func (r *Room) AddMember(m models.Member, c *Client) models.SessionSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = &m
	r.clients[m.ID] = c
	r.order = append(r.order, m.ID)

	r.broadcastLocked(models.UserJoinedMsg{
		Type:   "user-joined",
		UserID: m.ID,
		Name:   m.Name,
		Color:  m.Color,
	}, m.ID)

	snap := r.snapshotLocked()
	c.Send(models.JoinedMsg{
		Type:         "joined",
		SessionID:    r.ID,
		UserID:       m.ID,
		Color:        m.Color,
		Users:        snap.Users,
		Code:         snap.Code,
		ChatMessages: snap.ChatMessages,
	})
	return snap
}

// RemoveMember removes the member and tells the others. Idempotent: a second
// removal is a no-op and emits no second user-left.
func (r *Room) RemoveMember(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	delete(r.clients, id)
	r.order = lo.Without(r.order, id)
	r.broadcastLocked(models.UserLeftMsg{Type: "user-left", UserID: id}, "")
	return true
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// SetCode replaces the buffer unconditionally (last-writer-wins) and fans the
// update out to everyone but the author.
func (r *Room) SetCode(authorID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.code = code
	r.broadcastLocked(models.CodeUpdateMsg{Type: "code-update", UserID: authorID, Code: code}, authorID)
}

// SetCodeIfEmpty seeds the buffer without clobbering an edit that raced
// ahead. Reports whether it seeded; only then does anyone hear about it.
func (r *Room) SetCodeIfEmpty(authorID, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code != "" {
		return false
	}
	r.code = code
	r.broadcastLocked(models.CodeUpdateMsg{Type: "code-update", UserID: authorID, Code: code}, authorID)
	return true
}

// UpdateCursor moves the member's caret. A member that already left is a
// no-op, not an error; its disconnect may still be in flight.
func (r *Room) UpdateCursor(id string, cur models.Cursor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return false
	}
	m.Cursor = cur
	r.broadcastLocked(models.CursorUpdateMsg{
		Type:     "cursor-update",
		UserID:   id,
		UserName: m.Name,
		Cursor:   cur,
	}, id)
	return true
}

// SetMemberName sets the display name and tells the others. No-op when the
// member is gone.
func (r *Room) SetMemberName(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return false
	}
	m.Name = &name
	r.broadcastLocked(models.UserUpdateMsg{Type: "user-update", UserID: id, NewName: name}, id)
	return true
}

// AppendChat stores the message with a fresh id, an epoch-millisecond
// timestamp and a snapshot of the author's current name, then delivers it to
// every member including the author.
func (r *Room) AppendChat(authorID, text string) (models.ChatMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[authorID]
	if !ok {
		return models.ChatMessage{}, false
	}
	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		AuthorName: m.Name,
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
	}
	r.chat = append(r.chat, msg)
	r.broadcastLocked(models.ChatMessageMsg{Type: "chat-message", Message: msg}, "")
	return msg, true
}

func (r *Room) Snapshot() models.SessionSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) CreatedAt() time.Time { return r.createdAt }

func (r *Room) snapshotLocked() models.SessionSnapshot {
	users := lo.Map(r.order, func(id string, _ int) models.Member { return *r.members[id] })
	chat := make([]models.ChatMessage, len(r.chat))
	copy(chat, r.chat)
	return models.SessionSnapshot{Users: users, Code: r.code, ChatMessages: chat}
}

// broadcastLocked enqueues the event on every member's client except the
// excluded one. A dropped frame (full or closed queue) is logged and skipped;
// it never aborts delivery to the remaining members.
func (r *Room) broadcastLocked(event any, excludeID string) {
	for id, c := range r.clients {
		if excludeID != "" && id == excludeID {
			continue
		}
		if !c.Send(event) {
			r.log.Warn("dropped broadcast frame", "session", r.ID, "member", id)
		}
	}
}
