package controller

import (
	"gradaid-be/internal/dto"
	"gradaid-be/internal/pkg/serverutils"
	"gradaid-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	Debit(ctx *fiber.Ctx) error
	Balance(ctx *fiber.Ctx) error
	UsageHistory(ctx *fiber.Ctx) error
}

type creditController struct {
	creditService service.ICreditService
}

func NewCreditController(creditService service.ICreditService) ICreditController {
	return &creditController{
		creditService: creditService,
	}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("debit", c.Debit)
	h.Get("balance", c.Balance)
	h.Get("usage", c.UsageHistory)
}

func (c *creditController) Debit(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.DebitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.creditService.Debit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success debit credits", res))
}

func (c *creditController) Balance(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.creditService.GetBalance(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show balance", res))
}

func (c *creditController) UsageHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.creditService.GetUsageHistory(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show usage history", res))
}
