package api

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"collabhub/internal/models"
	"collabhub/internal/session"
	"collabhub/internal/utils"
)

// Router interprets inbound event payloads and applies them to a session.
// Every failure mode (malformed payload, unknown kind, missing field) is
// answered with an error frame to the sender only; state is never touched and
// the connection stays up.
type Router struct {
	log      *utils.Logger
	validate *validator.Validate
}

func NewRouter(log *utils.Logger) *Router {
	v := validator.New()
	// Report json field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Router{log: log, validate: v}
}

func (rt *Router) Dispatch(room *session.Room, memberID string, sender *session.Client, raw []byte) {
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		sendError(sender, "invalid message payload")
		return
	}

	switch env.Type {
	case "join":
		var req models.JoinRequest
		if !rt.decode(raw, &req, sender) {
			return
		}
		if req.UserName != nil {
			room.SetMemberName(memberID, *req.UserName)
		}
		if req.InitialCode != nil {
			room.SetCodeIfEmpty(memberID, *req.InitialCode)
		}

	case "code-change":
		var req models.CodeChangeRequest
		if !rt.decode(raw, &req, sender) {
			return
		}
		room.SetCode(memberID, *req.Code)

	case "cursor-move":
		var req models.CursorMoveRequest
		if !rt.decode(raw, &req, sender) {
			return
		}
		room.UpdateCursor(memberID, *req.Cursor)

	case "chat-message":
		var req models.ChatSendRequest
		if !rt.decode(raw, &req, sender) {
			return
		}
		room.AppendChat(memberID, *req.Message)

	case "name-change":
		var req models.NameChangeRequest
		if !rt.decode(raw, &req, sender) {
			return
		}
		room.SetMemberName(memberID, *req.NewName)

	default:
		sendError(sender, "unknown message type: "+env.Type)
	}
}

func (rt *Router) decode(raw []byte, req any, sender *session.Client) bool {
	if err := json.Unmarshal(raw, req); err != nil {
		sendError(sender, "invalid message payload")
		return false
	}
	if err := rt.validate.Struct(req); err != nil {
		var fields validator.ValidationErrors
		if ok := asValidationErrors(err, &fields); ok && len(fields) > 0 {
			sendError(sender, "missing required field: "+fields[0].Field())
		} else {
			sendError(sender, "invalid message payload")
		}
		return false
	}
	return true
}

func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*out = ve
	}
	return ok
}

func sendError(sender *session.Client, msg string) {
	sender.Send(models.ErrorMsg{Type: "error", Message: msg})
}
