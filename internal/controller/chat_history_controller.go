package controller

import (
	"ai-chat-history-be/internal/dto"
	"ai-chat-history-be/internal/pkg/serverutils"
	"ai-chat-history-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatHistoryController interface {
	RegisterRoutes(r fiber.Router)
	GetPreviews(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	RecordPrompt(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatHistoryController struct {
	service service.IChatHistoryService
}

func NewChatHistoryController(service service.IChatHistoryService) IChatHistoryController {
	return &chatHistoryController{service: service}
}

func (c *chatHistoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("previews", c.GetPreviews)
	h.Post("session", c.CreateSession)
	h.Post("session/:id/prompt", c.RecordPrompt)
	h.Patch("session/:id/title", c.RenameSession)
	h.Delete("session/:id", c.DeleteSession)
}

func (c *chatHistoryController) GetPreviews(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	offset := ctx.QueryInt("offset", 0)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.service.GetChatPreviews(ctx.Context(), userId, offset, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat previews", res))
}

func (c *chatHistoryController) CreateSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatHistoryController) RecordPrompt(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RecordPromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.RecordPrompt(ctx.Context(), userId, sessionId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success record prompt", nil))
}

func (c *chatHistoryController) RenameSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res := c.service.RenameSession(ctx.Context(), userId, sessionId, req.Title)
	return ctx.JSON(res)
}

func (c *chatHistoryController) DeleteSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	res := c.service.DeleteSession(ctx.Context(), userId, sessionId)
	return ctx.JSON(res)
}
