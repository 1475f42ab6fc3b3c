package healthcheck

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/respond"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/health-checks", h.Create)
	api.GET("/health-checks", h.List)
	api.POST("/health-checks/update", h.Update)
	api.POST("/health-checks/delete", h.Delete)
}

type upsertRequest struct {
	ID       uuid.UUID      `json:"id"`
	UserID   uuid.UUID      `json:"user_id"`
	TestName string         `json:"nama_tes"`
	Note     string         `json:"catatan"`
	Date     *dateonly.Date `json:"tanggal"`
	Time     string         `json:"waktu_pemeriksaan"`
	Status   string         `json:"status"`
}

func (r upsertRequest) input() Input {
	return Input{
		UserID:   r.UserID,
		TestName: r.TestName,
		Note:     r.Note,
		Date:     r.Date,
		Time:     r.Time,
		Status:   r.Status,
	}
}

type deleteRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (h *Handler) Create(c echo.Context) error {
	var req upsertRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	hc, err := h.svc.Create(c.Request().Context(), req.input())
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrUnknownUser):
			return respond.Fail(c, http.StatusUnauthorized, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusCreated, "health check added successfully", respond.Envelope{
		"health_check_id": hc.ID,
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
		items = []*HealthCheck{}
	}

	return respond.SuccessFields(c, http.StatusOK, "health checks retrieved successfully", respond.Envelope{
		"data":   items,
		"total":  total,
		"limit":  pg.Limit,
		"offset": pg.Offset,
	})
}

func (h *Handler) Update(c echo.Context) error {
	var req upsertRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ID == uuid.Nil {
		return respond.Fail(c, http.StatusBadRequest, "id is required")
	}

	hc, err := h.svc.Update(c.Request().Context(), req.ID, req.input())
	if err != nil {
		return h.mapGuardError(c, err)
	}

	return respond.SuccessFields(c, http.StatusOK, "health check updated successfully", respond.Envelope{
		"data": hc,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Delete(c.Request().Context(), req.ID, req.UserID); err != nil {
		return h.mapGuardError(c, err)
	}

	return respond.Success(c, http.StatusOK, "health check deleted successfully")
}

func (h *Handler) mapGuardError(c echo.Context, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return respond.Fail(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrNotFound):
		return respond.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return respond.Fail(c, http.StatusForbidden, err.Error())
	default:
		return err
	}
}
