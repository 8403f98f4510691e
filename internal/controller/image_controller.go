package controller

import (
	"ai-redesign-be/internal/pkg/serverutils"
	"ai-redesign-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	AccessURL(ctx *fiber.Ctx) error
	Quota(ctx *fiber.Ctx) error
}

type imageController struct {
	service      service.IImageService
	usageService service.IUsageService
}

func NewImageController(service service.IImageService, usageService service.IUsageService) IImageController {
	return &imageController{service: service, usageService: usageService}
}

// RegisterRoutes exposes read-side image endpoints only. Attaching renders
// is not a client operation; finished renders arrive from the generation
// pipeline over the event stream.
func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/image/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":id/url", c.AccessURL)
	h.Get("quota", c.Quota)
}

func (c *imageController) AccessURL(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	imageId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.ResolveAccessURL(ctx.Context(), userId, imageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve access url", res))
}

func (c *imageController) Quota(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	remaining, err := c.usageService.RemainingRenderCredits(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get render quota", fiber.Map{
		"remaining": remaining,
	}))
}
