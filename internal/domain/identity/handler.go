package identity

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/respond"
	"github.com/medtrack/medtrack/internal/platform/storage"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/profile/picture", h.UploadPicture)
	api.GET("/profile/picture", h.GetPicture)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. Failures report success:false with HTTP 200;
// clients of the original API branch on the success flag, not the status.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respond.FailMessage(c, http.StatusOK, "invalid request body")
	}

	u, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmailTaken):
			return respond.FailMessage(c, http.StatusOK, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "registration successful", respond.Envelope{
		"user": u.Public(),
	})
}

// Login verifies credentials. Same 200-with-success-flag convention as
// Register.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respond.FailMessage(c, http.StatusOK, "invalid request body")
	}

	u, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownEmail), errors.Is(err, ErrWrongPassword):
			return respond.FailMessage(c, http.StatusOK, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "login successful", respond.Envelope{
		"user": u.Public(),
	})
}

// UploadPicture accepts a multipart form with the image under
// "profile_picture" and the user id under "user_id" or "id".
func (h *Handler) UploadPicture(c echo.Context) error {
	userID, err := formUserID(c)
	if err != nil {
		return respond.FailMessage(c, http.StatusBadRequest, "missing or invalid user_id")
	}

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return respond.FailMessage(c, http.StatusBadRequest, "no file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name, err := h.svc.SavePicture(c.Request().Context(), userID, src)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return respond.FailMessage(c, http.StatusBadRequest, "file too large (max 5MB)")
		case errors.Is(err, storage.ErrInvalidContentType):
			return respond.FailMessage(c, http.StatusBadRequest, "invalid file type, allowed: JPEG, PNG, GIF, WebP")
		case errors.Is(err, ErrUserNotFound):
			return respond.FailMessage(c, http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	return respond.SuccessFields(c, http.StatusOK, "profile picture uploaded successfully", respond.Envelope{
		"file_name": name,
	})
}

// GetPicture streams the stored image with its detected content type.
func (h *Handler) GetPicture(c echo.Context) error {
	raw := c.QueryParam("id")
	if raw == "" {
		raw = c.QueryParam("user_id")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return respond.FailMessage(c, http.StatusBadRequest, "missing or invalid user id")
	}

	rc, mime, err := h.svc.Picture(c.Request().Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return respond.FailMessage(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNoProfilePicture):
			return respond.FailMessage(c, http.StatusNotFound, err.Error())
		default:
			return err
		}
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Stream(http.StatusOK, mime, rc)
}

func formUserID(c echo.Context) (uuid.UUID, error) {
	raw := c.FormValue("user_id")
	if raw == "" {
		raw = c.FormValue("id")
	}
	return uuid.Parse(raw)
}
