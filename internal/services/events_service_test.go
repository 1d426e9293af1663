package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"collabhub/internal/models"
	"collabhub/internal/utils"
)

func TestPublishDisabledWithoutRedis(t *testing.T) {
	svc := NewEventsService("", utils.NewLogger())
	require.False(t, svc.Enabled())
	require.NoError(t, svc.PublishSessionEnded(models.SessionEndedEvent{SessionID: "s1"}))
}

func TestPublishSessionEnded(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	svc := NewEventsService(mr.Addr(), utils.NewLogger())
	require.True(t, svc.Enabled())

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = sub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pubsub := sub.Subscribe(ctx, SessionEventsChannel)
	t.Cleanup(func() { _ = pubsub.Close() })
	_, err = pubsub.Receive(ctx) // wait for the subscription to be live
	require.NoError(t, err)

	ev := models.SessionEndedEvent{
		SessionID:    "room1",
		FinalCode:    "print(1)",
		ChatMessages: 3,
		DurationSec:  42,
	}
	require.NoError(t, svc.PublishSessionEnded(ev))

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var got models.SessionEndedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	require.Equal(t, ev, got)

	stored, err := mr.Get(statusKey("room1"))
	require.NoError(t, err)
	require.JSONEq(t, msg.Payload, stored)
}

func TestPublishSessionEndedRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	svc := NewEventsService(mr.Addr(), utils.NewLogger())
	mr.Close()

	require.Error(t, svc.PublishSessionEnded(models.SessionEndedEvent{SessionID: "s1"}))
}
