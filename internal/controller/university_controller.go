package controller

import (
	"gradaid-be/internal/dto"
	"gradaid-be/internal/pkg/serverutils"
	"gradaid-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUniversityController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	CreateProgram(ctx *fiber.Ctx) error
	ListPrograms(ctx *fiber.Ctx) error
}

type universityController struct {
	universityService service.IUniversityService
}

func NewUniversityController(universityService service.IUniversityService) IUniversityController {
	return &universityController{
		universityService: universityService,
	}
}

func (c *universityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/university/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/programs", c.CreateProgram)
	h.Get(":id/programs", c.ListPrograms)
}

func (c *universityController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUniversityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.universityService.CreateUniversity(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create university", res))
}

func (c *universityController) List(ctx *fiber.Ctx) error {
	country := ctx.Query("country")

	res, err := c.universityService.ListUniversities(ctx.Context(), country)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list universities", res))
}

func (c *universityController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.universityService.GetUniversity(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show university", res))
}

func (c *universityController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.universityService.DeleteUniversity(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete university", nil))
}

func (c *universityController) CreateProgram(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.CreateProgramRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.universityService.CreateProgram(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create program", res))
}

func (c *universityController) ListPrograms(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.universityService.ListPrograms(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list programs", res))
}
