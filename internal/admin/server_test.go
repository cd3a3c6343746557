package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/pldmd/internal/bios"
	"github.com/danmuck/pldmd/internal/pdr"
	"github.com/danmuck/pldmd/internal/testutil/testlog"
)

func testServer(t *testing.T, repo *pdr.Repository, biosReg *bios.Registry) *Server {
	t.Helper()
	return New(":0", []string{"http://localhost:3000"}, repo, biosReg, nil, zerolog.Nop())
}

func TestHealthHandlerReportsOK(t *testing.T) {
	testlog.Start(t)
	s := testServer(t, pdr.NewRepository(), bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected status field: %v", body["status"])
	}
}

func TestListPDRsHandlerReflectsRepositoryContents(t *testing.T) {
	testlog.Start(t)
	repo := pdr.NewRepository()
	pdr.SeedTerminusLocator(repo, 1, 1, 8)
	s := testServer(t, repo, bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/pdrs", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("expected 1 pdr, got %d", body.Count)
	}
}

func TestGetPDRHandlerReturns404ForUnknownHandle(t *testing.T) {
	testlog.Start(t)
	s := testServer(t, pdr.NewRepository(), bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/pdrs/999", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetPDRHandlerRejectsNonNumericHandle(t *testing.T) {
	testlog.Start(t)
	s := testServer(t, pdr.NewRepository(), bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/pdrs/not-a-number", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestBiosSummaryHandlerReflectsRegistryCounts(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "string_attrs.json"), []byte(`[{"attribute_name":"asset_tag","encoding":"ASCII","min_length":0,"max_length":10}]`), 0o644); err != nil {
		t.Fatalf("write string_attrs.json: %v", err)
	}
	biosReg := bios.NewRegistry()
	if err := biosReg.SetupConfig(dir); err != nil {
		t.Fatalf("setup config: %v", err)
	}
	s := testServer(t, pdr.NewRepository(), biosReg)

	req := httptest.NewRequest(http.MethodGet, "/bios", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["enum_attributes"] != float64(0) {
		t.Fatalf("expected zero enum attributes when only a string attribute file is present, got %v", body["enum_attributes"])
	}
	if body["string_attributes"] != float64(1) {
		t.Fatalf("expected one string attribute, got %v", body["string_attributes"])
	}
}

func TestEndpointsHandlerWithNilManagerReportsEmpty(t *testing.T) {
	testlog.Start(t)
	s := testServer(t, pdr.NewRepository(), bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/endpoints", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 0 {
		t.Fatalf("expected count=0, got %d", body.Count)
	}
}

func TestMetricsRouteIsWired(t *testing.T) {
	testlog.Start(t)
	s := testServer(t, pdr.NewRepository(), bios.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from the metrics endpoint, got %d", rr.Code)
	}
}
