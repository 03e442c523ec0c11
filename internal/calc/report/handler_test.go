package report

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateReport(t *testing.T) {
	body := strings.NewReader(`{
		"project": "Crossing 4A",
		"author": "R. Hughes",
		"check": {"params": {"soil_modulus_mn_m2": 10, "oval_limit_pct": 3, "perforated": true}}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/pipe/report", body)
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "pipe_design_report.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body does not start with a PDF header")
	}
	if rec.Body.Len() < 1024 {
		t.Errorf("suspiciously small report: %d bytes", rec.Body.Len())
	}
}

// A single easy scenario produces the all-pass branch.
func TestGenerateReportAllPass(t *testing.T) {
	body := strings.NewReader(`{
		"check": {"depths_m": [3.175], "surcharges_kn_m2": [15]}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/tools/pipe/report", body)
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body does not start with a PDF header")
	}
}

func TestGenerateReportBadPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tools/pipe/report", strings.NewReader("{bad"))
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestGenerateReportBadScenario(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tools/pipe/report",
		strings.NewReader(`{"check":{"depth_basis":"bogus"}}`))
	rec := httptest.NewRecorder()

	h := &Handler{}
	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
