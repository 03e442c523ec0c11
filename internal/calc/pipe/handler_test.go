package pipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubRunSaver struct {
	calls    int
	userID   int
	id       string
	params   []byte
	maxUtil  float64
	failures int
	checks   int
	err      error
}

func (s *stubRunSaver) SaveRun(ctx context.Context, userID int, id string, params []byte, maxUtil float64, failures, checks int) error {
	s.calls++
	s.userID = userID
	s.id = id
	s.params = params
	s.maxUtil = maxUtil
	s.failures = failures
	s.checks = checks
	return s.err
}

func TestCheckHandlerDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out Output
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Results) != 420 || out.Summary.Checks != 420 {
		t.Errorf("got %d results, summary %d, want 420", len(out.Results), out.Summary.Checks)
	}
	if out.RunID != "" {
		t.Errorf("unsaved run should carry no run id, got %q", out.RunID)
	}
}

func TestCheckHandlerBadPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check", strings.NewReader("{bad"))
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Check(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestCheckHandlerBadBasis(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check",
		strings.NewReader(`{"depth_basis":"bogus"}`))
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Check(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestCheckHandlerSavesRun(t *testing.T) {
	saver := &stubRunSaver{}
	h := &Handler{Runs: saver}

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check?save=1",
		strings.NewReader(`{"params":{"soil_modulus_mn_m2":10,"oval_limit_pct":3,"perforated":true}}`))
	req = req.WithContext(context.WithValue(req.Context(), "userID", 7))
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out Output
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.RunID == "" {
		t.Fatal("saved run should return its id")
	}
	if saver.calls != 1 || saver.id != out.RunID || saver.userID != 7 {
		t.Errorf("saver got calls=%d id=%q user=%d", saver.calls, saver.id, saver.userID)
	}
	if saver.checks != 420 || saver.maxUtil != out.Summary.MaxUtil {
		t.Errorf("saver got checks=%d maxUtil=%v", saver.checks, saver.maxUtil)
	}

	// The stored parameters are the defaulted set.
	var stored DesignParameters
	if err := json.Unmarshal(saver.params, &stored); err != nil {
		t.Fatalf("stored params: %v", err)
	}
	if stored.SoilModulusMNM2 != 10 || stored.OvalLimitPct != 3 || stored.EmbedModulusMNM2 != 10 {
		t.Errorf("stored params = %+v", stored)
	}
}

func TestCheckHandlerSaveNeedsUser(t *testing.T) {
	h := &Handler{Runs: &stubRunSaver{}}
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check?save=1", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestCheckHandlerSaveDBError(t *testing.T) {
	h := &Handler{Runs: &stubRunSaver{err: errors.New("insert failed")}}
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pipe/check?save=1", strings.NewReader(`{}`))
	req = req.WithContext(context.WithValue(req.Context(), "userID", 7))
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500", rec.Code)
	}
}
