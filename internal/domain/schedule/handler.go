package schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/respond"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/pagination"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/schedules", h.Create)
	api.GET("/schedules", h.List)
	api.POST("/schedules/repeat", h.Repeat)
	api.POST("/schedules/update", h.Update)
	api.POST("/schedules/status", h.SetStatus)
	api.POST("/schedules/delete", h.Delete)
	api.POST("/schedules/delete-by-medicine", h.DeleteByMedicine)
}

type createRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	MedicineID uuid.UUID `json:"medicine_id"`
	Time       string    `json:"waktu_minum"`
	Date       *dateonly.Date     `json:"tanggal"`
	Status     string    `json:"status"`
}

type repeatRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	MedicineID uuid.UUID `json:"medicine_id"`
	Time       string    `json:"waktu_minum"`
	Start      *dateonly.Date     `json:"tanggal_mulai"`
	RepeatType string    `json:"repeat_type"`
	Days       int       `json:"jumlah_hari"`
	Weekdays   []int     `json:"repeat_days"`
	// repeat_until is accepted but unused, reserved for a future policy.
	RepeatUntil *dateonly.Date `json:"repeat_until"`
}

type updateRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Status *string   `json:"status"`
	Time   *string   `json:"waktu_minum"`
}

type statusRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`
}

type deleteRequest struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

type deleteByMedicineRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	MedicineID uuid.UUID `json:"medicine_id"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	sched, err := h.svc.Create(c.Request().Context(), CreateInput{
		UserID:     req.UserID,
		MedicineID: req.MedicineID,
		Time:       req.Time,
		Date:       req.Date,
		Status:     req.Status,
	})
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrMedicineNotOwned):
			return respond.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrDuplicateSchedule):
			return respond.Fail(c, http.StatusBadRequest, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusCreated, "schedule added successfully", respond.Envelope{
		"schedule_id": sched.ID,
		"data":        sched,
	})
}

func (h *Handler) List(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "user_id is required")
	}

	var date *dateonly.Date
	if raw := c.QueryParam("tanggal"); raw != "" {
		parsed, err := dateonly.Parse(raw)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, err.Error())
		}
		date = &parsed
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), userID, date, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Schedule{}
	}

	return respond.SuccessFields(c, http.StatusOK, "schedules retrieved successfully", respond.Envelope{
		"data":   items,
		"total":  total,
		"limit":  pg.Limit,
		"offset": pg.Offset,
	})
}

func (h *Handler) Repeat(c echo.Context) error {
	var req repeatRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	count, ids, err := h.svc.Repeat(c.Request().Context(), RepeatInput{
		UserID:     req.UserID,
		MedicineID: req.MedicineID,
		Time:       req.Time,
		Start:      req.Start,
		RepeatType: req.RepeatType,
		Days:       req.Days,
		Weekdays:   req.Weekdays,
	})
	if err != nil {
		var (
			ve *ValidationError
			ue *UnknownRepeatTypeError
		)
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.As(err, &ue):
			return respond.Fail(c, http.StatusBadRequest, ue.Error())
		case errors.Is(err, ErrMedicineNotOwned):
			return respond.Fail(c, http.StatusForbidden, err.Error())
		default:
			return err
		}
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return respond.SuccessFields(c, http.StatusOK, "schedules created successfully", respond.Envelope{
		"jadwal_dibuat": count,
		"created_ids":   ids,
	})
}

func (h *Handler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	upd := Update{Time: req.Time}
	if req.Status != nil {
		flag := statusflag.Normalize(*req.Status)
		upd.Status = &flag
	}

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

	return respond.Success(c, http.StatusOK, "schedule updated successfully")
}

func (h *Handler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	flag, err := h.svc.SetStatus(c.Request().Context(), req.ID, req.UserID, req.Status)
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

	return respond.Success(c, http.StatusOK, "Status updated to "+string(flag))
}

func (h *Handler) Delete(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Delete(c.Request().Context(), req.ID, req.UserID); err != nil {
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

	return respond.Success(c, http.StatusOK, "schedule deleted successfully")
}

func (h *Handler) DeleteByMedicine(c echo.Context) error {
	var req deleteByMedicineRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	deleted, err := h.svc.DeleteByMedicine(c.Request().Context(), req.MedicineID, req.UserID)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return respond.Fail(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, ErrMedicineNotOwned):
			return respond.Fail(c, http.StatusForbidden, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "schedules deleted successfully", respond.Envelope{
		"deleted_count": deleted,
	})
}
