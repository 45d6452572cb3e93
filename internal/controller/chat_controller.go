package controller

import (
	"strings"

	"hotel-rooms-be/internal/dto"
	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/serverutils"
	"hotel-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const HeaderConversationID = "X-Conversation-ID"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/message", c.SendMessage)
	h.Get("/history", c.GetHistory)
	h.Delete("/history", c.ClearHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequestWrap("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	conversationId := conversationIdFrom(ctx, req.ConversationId)
	res, err := c.service.SendMessage(ctx.UserContext(), conversationId, req.Message)
	if err != nil {
		return err
	}

	ctx.Set(HeaderConversationID, conversationId)
	return ctx.JSON(res)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	conversationId := conversationIdFrom(ctx, "")
	res, err := c.service.GetHistory(ctx.UserContext(), conversationId)
	if err != nil {
		return err
	}

	ctx.Set(HeaderConversationID, conversationId)
	return ctx.JSON(res)
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	if err := c.service.ClearHistory(ctx.UserContext(), conversationIdFrom(ctx, "")); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Chat history cleared"})
}

// conversationIdFrom prefers the header, then the query string, then the
// body field. An empty result selects the shared default conversation.
func conversationIdFrom(ctx *fiber.Ctx, fromBody string) string {
	for _, candidate := range []string{
		ctx.Get(HeaderConversationID),
		ctx.Query("conversation_id"),
		fromBody,
	} {
		if id := strings.TrimSpace(candidate); id != "" {
			return id
		}
	}
	return entity.DefaultConversationId
}
