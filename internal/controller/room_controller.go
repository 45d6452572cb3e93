package controller

import (
	"net/url"
	"strconv"
	"strings"

	"hotel-rooms-be/internal/dto"
	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/imagestore"
	"hotel-rooms-be/internal/pkg/serverutils"
	"hotel-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetAllWithImages(ctx *fiber.Ctx) error
	GetAllByHotel(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetByName(ctx *fiber.Ctx) error
	GetByStatus(ctx *fiber.Ctx) error
	GetReservations(ctx *fiber.Ctx) error
	GetByAdmin(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type roomController struct {
	service       service.IRoomService
	maxUploadSize int64
}

func NewRoomController(service service.IRoomService, maxUploadSize int64) IRoomController {
	return &roomController{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rooms")
	// Literal segments first so they are not captured by :id
	h.Get("/all", c.GetAll)
	h.Get("/all/images", c.GetAllWithImages)
	h.Get("/all/hotel/:id", c.GetAllByHotel)
	h.Get("/name/:name", c.GetByName)
	h.Get("/status/:status", c.GetByStatus)
	h.Get("/rooms-by-admin/:adminId", c.GetByAdmin)
	h.Post("/create", c.Create)
	h.Get("/:id/reservations", c.GetReservations)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *roomController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.FindAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetAllWithImages(ctx *fiber.Ctx) error {
	res, err := c.service.FindAllWithImages(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetAllByHotel(ctx *fiber.Ctx) error {
	hotelId, err := parseId(ctx, "id", "hotel id")
	if err != nil {
		return err
	}

	res, err := c.service.FindAllByHotel(ctx.UserContext(), hotelId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id", "room id")
	if err != nil {
		return err
	}

	res, err := c.service.FindOne(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetByName(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return apperror.BadRequest("Invalid room name")
	}

	res, err := c.service.FindByName(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetByStatus(ctx *fiber.Ctx) error {
	res, err := c.service.FindByStatus(ctx.UserContext(), ctx.Params("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetReservations(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id", "room id")
	if err != nil {
		return err
	}

	res, err := c.service.FindReservations(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) GetByAdmin(ctx *fiber.Ctx) error {
	adminId, err := parseId(ctx, "adminId", "admin id")
	if err != nil {
		return err
	}

	res, err := c.service.FindRoomsByAdmin(ctx.UserContext(), adminId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequestWrap("Invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	image, err := c.readImage(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req, image)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) Update(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id", "room id")
	if err != nil {
		return err
	}

	var req dto.UpdateRoomRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return apperror.BadRequestWrap("Invalid request body", err)
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	image, err := c.readImage(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), id, &req, image)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *roomController) Delete(ctx *fiber.Ctx) error {
	id, err := parseId(ctx, "id", "room id")
	if err != nil {
		return err
	}

	if err := c.service.Remove(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Room deleted successfully"})
}

// readImage returns nil when the request carries no "file" part.
func (c *roomController) readImage(ctx *fiber.Ctx) (*imagestore.Upload, error) {
	if !strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, apperror.BadRequestWrap("Invalid multipart form", err)
	}

	files := form.File["file"]
	if len(files) == 0 {
		return nil, nil
	}
	return serverutils.ReadImageUpload(files[0], c.maxUploadSize)
}

func parseId(ctx *fiber.Ctx, param, label string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.BadRequest("Invalid " + label)
	}
	return uint(id), nil
}
