package controller

import (
	"encoding/base64"
	"strconv"

	"chatshot-be/internal/dto"
	"chatshot-be/internal/pkg/avatar"
	"chatshot-be/internal/pkg/serverutils"
	"chatshot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	State(ctx *fiber.Ctx) error
	SetTitle(ctx *fiber.Ctx) error
	NewChat(ctx *fiber.Ctx) error
	SetEditing(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	UpdateMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	ListSnapshots(ctx *fiber.Ctx) error
	SaveSnapshot(ctx *fiber.Ctx) error
	LoadSnapshot(ctx *fiber.Ctx) error
	DeleteSnapshot(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	SetProfileName(ctx *fiber.Ctx) error
	SetProfileAvatar(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/chat")
	h.Use(authRequired)
	h.Get("/state", c.State)
	h.Put("/title", c.SetTitle)
	h.Post("/new", c.NewChat)
	h.Put("/editing", c.SetEditing)
	h.Post("/messages", c.AppendMessage)
	h.Put("/messages/:index", c.UpdateMessage)
	h.Delete("/messages/:index", c.DeleteMessage)
	h.Get("/snapshots", c.ListSnapshots)
	h.Post("/snapshots", c.SaveSnapshot)
	h.Post("/snapshots/:index/load", c.LoadSnapshot)
	h.Delete("/snapshots/:index", c.DeleteSnapshot)

	p := r.Group("/profile")
	p.Use(authRequired)
	p.Get("", c.GetProfile)
	p.Put("/name", c.SetProfileName)
	p.Put("/avatar", c.SetProfileAvatar)
}

func sessionID(ctx *fiber.Ctx) string {
	return ctx.Locals("session_id").(string)
}

func indexParam(ctx *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "index must be an integer")
	}
	return index, nil
}

func (c *chatController) State(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetState(ctx.Context(), sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get working chat", res))
}

func (c *chatController) SetTitle(ctx *fiber.Ctx) error {
	var req dto.SetTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.SetTitle(ctx.Context(), sessionID(ctx), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set title", nil))
}

func (c *chatController) NewChat(ctx *fiber.Ctx) error {
	if err := c.chatService.NewChat(ctx.Context(), sessionID(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start new chat", nil))
}

func (c *chatController) SetEditing(ctx *fiber.Ctx) error {
	var req dto.SetEditingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.chatService.SetEditing(ctx.Context(), sessionID(ctx), req.Index); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set editing index", nil))
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.AppendMessage(ctx.Context(), sessionID(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success append message", nil))
}

func (c *chatController) UpdateMessage(ctx *fiber.Ctx) error {
	index, err := indexParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.UpdateMessage(ctx.Context(), sessionID(ctx), index, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update message", nil))
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	index, err := indexParam(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteMessage(ctx.Context(), sessionID(ctx), index); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete message", nil))
}

func (c *chatController) ListSnapshots(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListSnapshots(ctx.Context(), sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list snapshots", res))
}

func (c *chatController) SaveSnapshot(ctx *fiber.Ctx) error {
	var req dto.SaveSnapshotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.SaveSnapshot(ctx.Context(), sessionID(ctx), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save snapshot", nil))
}

func (c *chatController) LoadSnapshot(ctx *fiber.Ctx) error {
	index, err := indexParam(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.LoadSnapshot(ctx.Context(), sessionID(ctx), index); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load snapshot", nil))
}

// DeleteSnapshot is phase two of the delete flow: the client asks the user
// for confirmation before calling, the operation never asks again.
func (c *chatController) DeleteSnapshot(ctx *fiber.Ctx) error {
	index, err := indexParam(ctx)
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteSnapshot(ctx.Context(), sessionID(ctx), index); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete snapshot", nil))
}

func (c *chatController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetProfile(ctx.Context(), sessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *chatController) SetProfileName(ctx *fiber.Ctx) error {
	var req dto.SetProfileNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.SetProfileName(ctx.Context(), sessionID(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set profile name", nil))
}

func (c *chatController) SetProfileAvatar(ctx *fiber.Ctx) error {
	var req dto.SetProfileAvatarRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image must be base64 encoded")
	}

	var crop *avatar.CropRegion
	if req.Crop != nil {
		crop = &avatar.CropRegion{
			X:      req.Crop.X,
			Y:      req.Crop.Y,
			Width:  req.Crop.Width,
			Height: req.Crop.Height,
		}
	}

	if err := c.chatService.SetProfileAvatar(ctx.Context(), sessionID(ctx), req.Target, raw, crop); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set profile avatar", nil))
}
