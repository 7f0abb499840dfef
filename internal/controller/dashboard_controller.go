package controller

import (
	"gradaid-be/internal/pkg/serverutils"
	"gradaid-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Activity(ctx *fiber.Ctx) error
}

type dashboardController struct {
	dashboardService service.IDashboardService
	activityService  service.IActivityService
}

func NewDashboardController(dashboardService service.IDashboardService, activityService service.IActivityService) IDashboardController {
	return &dashboardController{
		dashboardService: dashboardService,
		activityService:  activityService,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Get("activity", c.Activity)
}

func (c *dashboardController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.dashboardService.GetDashboard(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show dashboard", res))
}

func (c *dashboardController) Activity(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.activityService.GetRecent(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show activity", res))
}
