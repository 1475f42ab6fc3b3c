package medicine

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/respond"
	"github.com/medtrack/medtrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/medicines", h.Create)
	api.GET("/medicines", h.List)
	api.POST("/medicines/update", h.Update)
	api.POST("/medicines/delete", h.Delete)
}

type createRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"nama_obat"`
	Dosage string    `json:"dosis"`
	Note   string    `json:"catatan"`
}

type updateRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   *string   `json:"nama_obat"`
	Dosage *string   `json:"dosis"`
	Note   *string   `json:"catatan"`
}

type deleteRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	m := &Medicine{UserID: req.UserID, Name: req.Name, Dosage: req.Dosage, Note: req.Note}
	if err := h.svc.Create(c.Request().Context(), m); err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrUserNotFound):
			return respond.Fail(c, http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "medicine added successfully", respond.Envelope{
		"medicine_id": m.ID,
	})
}

func (h *Handler) List(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "user_id is required")
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Medicine{}
	}

	return respond.SuccessFields(c, http.StatusOK, "medicines retrieved successfully", respond.Envelope{
		"data":   items,
		"total":  total,
		"limit":  pg.Limit,
		"offset": pg.Offset,
	})
}

func (h *Handler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	upd := Update{Name: req.Name, Dosage: req.Dosage, Note: req.Note}
	if err := h.svc.Update(c.Request().Context(), req.ID, req.UserID, upd); err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrNoFields):
			return respond.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return respond.Fail(c, http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	return respond.Success(c, http.StatusOK, "medicine updated successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	schedulesDeleted, medicinesDeleted, err := h.svc.Delete(c.Request().Context(), req.ID, req.UserID)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrNotFound):
			return respond.Fail(c, http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "medicine deleted successfully", respond.Envelope{
		"schedules_deleted": schedulesDeleted,
		"medicines_deleted": medicinesDeleted,
	})
}
