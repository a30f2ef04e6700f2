// internal/services/chat_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bazaarline/storefront-backend/internal/models"
)

func chatMessage(threadID uuid.UUID, sender models.ChatSender, text string, read bool, at time.Time) models.ChatMessage {
	msg := models.ChatMessage{
		UserID: threadID,
		Sender: sender,
		Text:   text,
		Read:   read,
	}
	msg.ID = uuid.New()
	msg.CreatedAt = at
	return msg
}

func TestGroupConversationsOnePerThread(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	messages := []models.ChatMessage{
		chatMessage(alice, models.ChatSenderUser, "hi", true, base),
		chatMessage(alice, models.ChatSenderAdmin, "hello", false, base.Add(time.Minute)),
		chatMessage(bob, models.ChatSenderUser, "price?", false, base.Add(2*time.Minute)),
		chatMessage(alice, models.ChatSenderUser, "need help", false, base.Add(3*time.Minute)),
	}

	conversations := GroupConversations(messages)

	assert.Len(t, conversations, 2)
	// newest activity first
	assert.Equal(t, alice, conversations[0].UserID)
	assert.Equal(t, "need help", conversations[0].LastMessage.Text)
	assert.Equal(t, bob, conversations[1].UserID)
}

func TestGroupConversationsCountsUnreadCustomerMessages(t *testing.T) {
	alice := uuid.New()
	base := time.Now()

	messages := []models.ChatMessage{
		chatMessage(alice, models.ChatSenderUser, "one", false, base),
		chatMessage(alice, models.ChatSenderUser, "two", false, base.Add(time.Second)),
		chatMessage(alice, models.ChatSenderUser, "old", true, base.Add(2*time.Second)),
		chatMessage(alice, models.ChatSenderAdmin, "unread admin reply", false, base.Add(3*time.Second)),
	}

	conversations := GroupConversations(messages)

	assert.Len(t, conversations, 1)
	// admin messages never count toward the admin inbox unread badge
	assert.Equal(t, 2, conversations[0].UnreadCount)
}

func TestGroupConversationsEmpty(t *testing.T) {
	assert.Empty(t, GroupConversations(nil))
}

func TestHubDeliversToThreadSubscriber(t *testing.T) {
	hub := newChatHub()
	thread := uuid.New()

	ch, unsubscribe := hub.subscribeThread(thread)
	defer unsubscribe()

	sent := chatMessage(thread, models.ChatSenderUser, "hi", false, time.Now())
	hub.publish(sent)

	select {
	case got := <-ch:
		assert.Equal(t, sent.Text, got.Text)
	case <-time.After(time.Second):
		t.Fatal("expected message on thread subscription")
	}
}

func TestHubDoesNotCrossThreads(t *testing.T) {
	hub := newChatHub()

	ch, unsubscribe := hub.subscribeThread(uuid.New())
	defer unsubscribe()

	hub.publish(chatMessage(uuid.New(), models.ChatSenderUser, "other thread", false, time.Now()))

	select {
	case <-ch:
		t.Fatal("message leaked across threads")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubAllThreadsSubscriberSeesEverything(t *testing.T) {
	hub := newChatHub()

	ch, unsubscribe := hub.subscribeAll()
	defer unsubscribe()

	hub.publish(chatMessage(uuid.New(), models.ChatSenderUser, "a", false, time.Now()))
	hub.publish(chatMessage(uuid.New(), models.ChatSenderAdmin, "b", false, time.Now()))

	received := 0
	for received < 2 {
		select {
		case <-ch:
			received++
		case <-time.After(time.Second):
			t.Fatalf("expected 2 messages, got %d", received)
		}
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := newChatHub()
	thread := uuid.New()

	ch, unsubscribe := hub.subscribeThread(thread)
	unsubscribe()

	hub.publish(chatMessage(thread, models.ChatSenderUser, "late", false, time.Now()))

	select {
	case <-ch:
		t.Fatal("received message after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}
