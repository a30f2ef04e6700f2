// internal/handlers/chat.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/bazaarline/storefront-backend/internal/i18n"
	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/services"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GET /chat/messages
func (h *ChatHandler) GetMyThread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := h.chatService.GetThread(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"messages": messages})
}

// POST /chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	message, err := h.chatService.SendMessage(userID, models.ChatSenderUser, req.Text)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMessageSent),
		"chat":    message,
	})
}

// POST /chat/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(userID, models.ChatSenderUser); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMarkedRead),
	})
}

// GET /chat/ws
// Streams new messages in the caller's own thread.
func (h *ChatHandler) StreamMyThread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ch, unsubscribe := h.chatService.SubscribeThread(userID)
	h.streamMessages(c, ch, unsubscribe)
}

// GET /admin/chat/conversations
func (h *ChatHandler) GetConversations(c *gin.Context) {
	conversations, err := h.chatService.GetConversations()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"conversations": conversations})
}

// GET /admin/chat/:userId/messages
func (h *ChatHandler) GetThread(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	messages, err := h.chatService.GetThread(threadID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"messages": messages})
}

// POST /admin/chat/:userId/messages
func (h *ChatHandler) SendAdminMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	threadID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	message, err := h.chatService.SendMessage(threadID, models.ChatSenderAdmin, req.Text)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMessageSent),
		"chat":    message,
	})
}

// POST /admin/chat/:userId/read
func (h *ChatHandler) MarkThreadRead(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	threadID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if err := h.chatService.MarkRead(threadID, models.ChatSenderAdmin); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyChatMarkedRead),
	})
}

// GET /admin/chat/ws
// Streams new messages across every thread, for the admin inbox.
func (h *ChatHandler) StreamAllThreads(c *gin.Context) {
	ch, unsubscribe := h.chatService.SubscribeAll()
	h.streamMessages(c, ch, unsubscribe)
}

// streamMessages bridges a hub subscription onto a websocket. The read loop
// exists only to detect the peer closing; the subscription is torn down as
// soon as either direction fails.
func (h *ChatHandler) streamMessages(c *gin.Context, ch <-chan models.ChatMessage, unsubscribe func()) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
