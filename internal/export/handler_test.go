package export

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/floorcast/floorcast/backend-go/internal/convert"
	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
)

func convertRequest(t *testing.T, body interface{}, query string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/export/geojson"+query, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	NewHandler(nil).Convert(rec, req)
	return rec
}

func TestConvertSuccess(t *testing.T) {
	plan := document.NewSamplePlan("plan_test")
	rec := convertRequest(t, ConvertRequest{Name: plan.Name, Selection: []document.Node{*plan.Root}}, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Sample-Building.geojson") {
		t.Errorf("Content-Disposition = %q", got)
	}

	var exports []convert.FloorExport
	if err := json.Unmarshal(rec.Body.Bytes(), &exports); err != nil {
		t.Fatalf("response is not a floor export list: %v", err)
	}
	if len(exports) != 2 {
		t.Errorf("got %d floors, want 2", len(exports))
	}
}

func TestConvertStructuralError(t *testing.T) {
	rec := convertRequest(t, ConvertRequest{Selection: nil}, "")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var p sink.Payload
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if p.Kind != sink.KindError || p.Message == "" {
		t.Errorf("payload = %+v, want error with message", p)
	}
}

func TestConvertBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/export/geojson", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	NewHandler(nil).Convert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOptionsFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/export/geojson?ids=parsed&ellipses=polygon", nil)
	opts := OptionsFromQuery(req.URL.Query())

	if opts.IDs != convert.IDParsed {
		t.Errorf("IDs = %v, want IDParsed", opts.IDs)
	}
	if opts.Ellipses != convert.EllipseAsPolygon {
		t.Errorf("Ellipses = %v, want EllipseAsPolygon", opts.Ellipses)
	}

	req = httptest.NewRequest(http.MethodGet, "/export/geojson", nil)
	opts = OptionsFromQuery(req.URL.Query())
	if opts.IDs != convert.IDVerbatim || opts.Ellipses != convert.EllipseAsPoint {
		t.Errorf("zero query should give default policies, got %+v", opts)
	}
}
