package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"collabhub/internal/models"
	"collabhub/internal/utils"
)

// SessionEventsChannel carries session lifecycle events for downstream
// consumers (analytics, history exporters).
const SessionEventsChannel = "collab.sessions"

const statusKeyTTL = 24 * time.Hour

// EventsService publishes session lifecycle events to Redis. The hub never
// depends on it for correctness; with no Redis address configured every
// publish is a no-op.
type EventsService struct {
	rdb *redis.Client
	log *utils.Logger
}

func NewEventsService(redisAddr string, log *utils.Logger) *EventsService {
	s := &EventsService{log: log}
	if redisAddr != "" {
		s.rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
	}
	return s
}

func (s *EventsService) Enabled() bool { return s != nil && s.rdb != nil }

// PublishSessionEnded announces that a session was torn down and mirrors the
// event into a TTL'd status key.
func (s *EventsService) PublishSessionEnded(ev models.SessionEndedEvent) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.rdb.Set(ctx, statusKey(ev.SessionID), payload, statusKeyTTL).Err(); err != nil {
		s.log.Error("failed to store session status", "sessionId", ev.SessionID, "error", err.Error())
		return err
	}
	if err := s.rdb.Publish(ctx, SessionEventsChannel, payload).Err(); err != nil {
		s.log.Error("failed to publish session event", "sessionId", ev.SessionID, "error", err.Error())
		return err
	}
	return nil
}

func statusKey(sessionID string) string {
	return "collab:session:" + sessionID
}
