package models

// Cursor is a caret position within the shared buffer.
type Cursor struct {
	Line int `json:"line"`
	Ch   int `json:"ch"`
}

// Member is one connected participant's identity and presence in a session.
// Name stays nil until the participant introduces itself; Color is assigned
// at join and never changes.
type Member struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Color  string  `json:"color"`
	Cursor Cursor  `json:"cursor"`
}

type ChatMessage struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"authorId"`
	AuthorName *string `json:"authorName,omitempty"`
	Text       string  `json:"text"`
	Timestamp  int64   `json:"timestamp"` // milliseconds since epoch
}

// SessionSnapshot is a consistent point-in-time view of a session's full
// state. Users preserves join order.
type SessionSnapshot struct {
	Users        []Member      `json:"users"`
	Code         string        `json:"code"`
	ChatMessages []ChatMessage `json:"chatMessages"`
}

/*** Inbound client messages ***/

type Envelope struct {
	Type string `json:"type"` // "join","code-change","cursor-move","chat-message","name-change"
}

type JoinRequest struct {
	UserName    *string `json:"userName"`
	InitialCode *string `json:"initialCode"`
}

type CodeChangeRequest struct {
	Code *string `json:"code" validate:"required"`
}

type CursorMoveRequest struct {
	Cursor *Cursor `json:"cursor" validate:"required"`
}

type ChatSendRequest struct {
	Message *string `json:"message" validate:"required"`
}

type NameChangeRequest struct {
	NewName *string `json:"newName" validate:"required"`
}

/*** Outbound hub messages ***/

type JoinedMsg struct {
	Type         string        `json:"type"`
	SessionID    string        `json:"sessionId"`
	UserID       string        `json:"userId"`
	Color        string        `json:"color"`
	Users        []Member      `json:"users"`
	Code         string        `json:"code"`
	ChatMessages []ChatMessage `json:"chatMessages"`
}

type UserJoinedMsg struct {
	Type   string  `json:"type"`
	UserID string  `json:"userId"`
	Name   *string `json:"name"`
	Color  string  `json:"color"`
}

type UserLeftMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type UserUpdateMsg struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	NewName string `json:"newName"`
}

type CodeUpdateMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type CursorUpdateMsg struct {
	Type     string  `json:"type"`
	UserID   string  `json:"userId"`
	UserName *string `json:"userName"`
	Cursor   Cursor  `json:"cursor"`
}

type ChatMessageMsg struct {
	Type    string      `json:"type"`
	Message ChatMessage `json:"message"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

/*** REST responses ***/

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	UserCount int    `json:"userCount"`
}

// SessionEndedEvent is published when the last member leaves a session.
type SessionEndedEvent struct {
	SessionID    string `json:"sessionId"`
	FinalCode    string `json:"finalCode"`
	ChatMessages int    `json:"chatMessages"`
	StartedAt    string `json:"startedAt"`
	EndedAt      string `json:"endedAt"`
	DurationSec  int    `json:"durationSeconds"`
}
