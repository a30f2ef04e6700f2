// internal/services/chat_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
)

// chatHub fans persisted messages out to live subscribers. Per-thread
// subscribers get only their own thread; the admin inbox subscribes to all
// threads at once.
type chatHub struct {
	mtx        sync.Mutex
	nextID     int
	byThread   map[uuid.UUID]map[int]chan models.ChatMessage
	allThreads map[int]chan models.ChatMessage
}

func newChatHub() *chatHub {
	return &chatHub{
		byThread:   make(map[uuid.UUID]map[int]chan models.ChatMessage),
		allThreads: make(map[int]chan models.ChatMessage),
	}
}

const hubBuffer = 16

func (h *chatHub) subscribeThread(threadID uuid.UUID) (<-chan models.ChatMessage, func()) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan models.ChatMessage, hubBuffer)

	subs, exists := h.byThread[threadID]
	if !exists {
		subs = make(map[int]chan models.ChatMessage)
		h.byThread[threadID] = subs
	}
	subs[id] = ch

	return ch, func() {
		h.mtx.Lock()
		defer h.mtx.Unlock()
		if subs, exists := h.byThread[threadID]; exists {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.byThread, threadID)
			}
		}
	}
}

func (h *chatHub) subscribeAll() (<-chan models.ChatMessage, func()) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.nextID++
	id := h.nextID
	ch := make(chan models.ChatMessage, hubBuffer)
	h.allThreads[id] = ch

	return ch, func() {
		h.mtx.Lock()
		defer h.mtx.Unlock()
		delete(h.allThreads, id)
	}
}

// publish never blocks: a subscriber that has fallen behind its buffer drops
// the message and catches up from the database on its next fetch.
func (h *chatHub) publish(msg models.ChatMessage) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	for _, ch := range h.byThread[msg.UserID] {
		select {
		case ch <- msg:
		default:
		}
	}
	for _, ch := range h.allThreads {
		select {
		case ch <- msg:
		default:
		}
	}
}

type ChatService struct {
	db  *gorm.DB
	hub *chatHub
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		db:  db,
		hub: newChatHub(),
	}
}

// SendMessage persists a message into the thread keyed by the customer's id
// and publishes it to live subscribers.
func (s *ChatService) SendMessage(threadID uuid.UUID, sender models.ChatSender, text string) (*models.ChatMessage, error) {
	if !sender.Valid() {
		return nil, errors.New("invalid sender")
	}
	if text == "" {
		return nil, errors.New("message text is required")
	}

	message := &models.ChatMessage{
		UserID: threadID,
		Sender: sender,
		Text:   text,
	}

	if err := s.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.hub.publish(*message)

	logrus.WithFields(logrus.Fields{
		"thread_id": threadID,
		"sender":    sender,
	}).Debug("Chat message sent")

	return message, nil
}

// GetThread returns the full message history of one customer's thread,
// oldest first.
func (s *ChatService) GetThread(threadID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.db.Where("user_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// MarkRead marks the counterpart's unread messages in a thread as read: the
// customer reading marks admin messages, the admin reading marks customer
// messages.
func (s *ChatService) MarkRead(threadID uuid.UUID, reader models.ChatSender) error {
	counterpart := models.ChatSenderUser
	if reader == models.ChatSenderUser {
		counterpart = models.ChatSenderAdmin
	}

	now := time.Now()
	return s.db.Model(&models.ChatMessage{}).
		Where("user_id = ? AND sender = ? AND read = ?", threadID, counterpart, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": now,
		}).Error
}

// GetConversations derives the admin inbox: one row per customer thread with
// the newest message and the count of unread customer messages, newest
// activity first.
func (s *ChatService) GetConversations() ([]models.Conversation, error) {
	var messages []models.ChatMessage
	if err := s.db.Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	conversations := GroupConversations(messages)
	if len(conversations) == 0 {
		return conversations, nil
	}

	userIDs := make([]uuid.UUID, 0, len(conversations))
	for _, conv := range conversations {
		userIDs = append(userIDs, conv.UserID)
	}
	var users []models.User
	if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	for i := range conversations {
		conversations[i].UserName = names[conversations[i].UserID]
	}

	return conversations, nil
}

// GroupConversations reduces a chronologically ordered message list into
// per-thread summaries, ordered by most recent activity.
func GroupConversations(messages []models.ChatMessage) []models.Conversation {
	byThread := make(map[uuid.UUID]*models.Conversation)

	for _, msg := range messages {
		conv, exists := byThread[msg.UserID]
		if !exists {
			conv = &models.Conversation{UserID: msg.UserID}
			byThread[msg.UserID] = conv
		}
		conv.LastMessage = msg
		if msg.Sender == models.ChatSenderUser && !msg.Read {
			conv.UnreadCount++
		}
	}

	conversations := make([]models.Conversation, 0, len(byThread))
	for _, conv := range byThread {
		conversations = append(conversations, *conv)
	}
	// newest activity first
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})

	return conversations
}

// SubscribeThread delivers new messages in one customer's thread until the
// returned unsubscribe function is called.
func (s *ChatService) SubscribeThread(threadID uuid.UUID) (<-chan models.ChatMessage, func()) {
	return s.hub.subscribeThread(threadID)
}

// SubscribeAll delivers new messages across every thread, for the admin
// inbox.
func (s *ChatService) SubscribeAll() (<-chan models.ChatMessage, func()) {
	return s.hub.subscribeAll()
}
