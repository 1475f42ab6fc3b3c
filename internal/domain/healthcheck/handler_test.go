package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *fixture, *echo.Echo) {
	f := newFixture()
	return NewHandler(f.svc), f, echo.New()
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Create(t *testing.T) {
	h, f, e := newTestHandler()

	body := fmt.Sprintf(`{"user_id":%q,"nama_tes":"Blood sugar","catatan":"fasting","tanggal":"2026-04-01","waktu_pemeriksaan":"07:30","status":"belum"}`, f.userID)
	c, rec := postJSON(e, "/api/v1/health-checks", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var env map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &env)
	if env["success"] != true || env["health_check_id"] == nil {
		t.Errorf("unexpected envelope: %v", env)
	}
}

func TestHandler_Create_MissingField(t *testing.T) {
	h, f, e := newTestHandler()

	body := fmt.Sprintf(`{"user_id":%q,"nama_tes":"Blood sugar","tanggal":"2026-04-01","waktu_pemeriksaan":"07:30","status":"N"}`, f.userID)
	c, rec := postJSON(e, "/api/v1/health-checks", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var env map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &env)
	if msg, _ := env["error"].(string); !strings.Contains(msg, "catatan") {
		t.Errorf("error should name the missing field, got %q", msg)
	}
}

func TestHandler_Create_UnknownUser(t *testing.T) {
	h, _, e := newTestHandler()

	body := fmt.Sprintf(`{"user_id":%q,"nama_tes":"X","catatan":"y","tanggal":"2026-04-01","waktu_pemeriksaan":"07:30","status":"N"}`, uuid.New())
	c, rec := postJSON(e, "/api/v1/health-checks", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandler_List(t *testing.T) {
	h, f, e := newTestHandler()

	for i := 0; i < 2; i++ {
		if _, err := f.svc.Create(context.Background(), validInput(f.userID)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health-checks?user_id="+f.userID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var env map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &env)
	if env["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", env["total"])
	}
}

func TestHandler_Update_Forbidden(t *testing.T) {
	h, f, e := newTestHandler()

	hc, _ := f.svc.Create(context.Background(), validInput(f.userID))
	other := uuid.New()
	f.users.ids[other] = true

	body := fmt.Sprintf(`{"id":%q,"user_id":%q,"nama_tes":"X","catatan":"y","tanggal":"2026-04-01","waktu_pemeriksaan":"08:00","status":"Y"}`, hc.ID, other)
	c, rec := postJSON(e, "/api/v1/health-checks/update", body)

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, f, e := newTestHandler()

	body := fmt.Sprintf(`{"id":%q,"user_id":%q}`, uuid.New(), f.userID)
	c, rec := postJSON(e, "/api/v1/health-checks/delete", body)

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, f, e := newTestHandler()

	hc, _ := f.svc.Create(context.Background(), validInput(f.userID))

	body := fmt.Sprintf(`{"id":%q,"user_id":%q}`, hc.ID, f.userID)
	c, rec := postJSON(e, "/api/v1/health-checks/delete", body)

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
