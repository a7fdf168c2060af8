package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/floorcast/floorcast/backend-go/internal/convert"
	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
	"github.com/floorcast/floorcast/backend-go/internal/typeid"
)

const maxRequestSize = 50 << 20 // 50MB

// ConvertRequest is the ad-hoc conversion body: a scene selection as the
// design tool would hand it over.
type ConvertRequest struct {
	Name      string          `json:"name"`
	Selection []document.Node `json:"selection"`
}

// Handler serves the stateless convert-and-download endpoint.
type Handler struct {
	archive *Archive
}

func NewHandler(archive *Archive) *Handler {
	return &Handler{archive: archive}
}

// OptionsFromQuery reads the conversion policies from query parameters:
// ids=verbatim|parsed and ellipses=point|polygon.
func OptionsFromQuery(q url.Values) convert.Options {
	var opts convert.Options
	if q.Get("ids") == "parsed" {
		opts.IDs = convert.IDParsed
	}
	if q.Get("ellipses") == "polygon" {
		opts.Ellipses = convert.EllipseAsPolygon
	}
	return opts
}

// Convert handles POST /export/geojson. A structural validation failure
// answers 422 with the error payload; success streams the floor entries back
// as an attachment.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, sink.Payload{Kind: sink.KindError, Message: "invalid request body"})
		return
	}

	var out sink.Capture
	convert.Build(req.Selection, OptionsFromQuery(r.URL.Query()), &out)

	for _, n := range out.Notices {
		slog.Info("conversion notice", "plan", req.Name, "notice", n)
	}

	if out.Payload == nil {
		writeJSON(w, http.StatusInternalServerError, sink.Payload{Kind: sink.KindError, Message: "conversion produced no result"})
		return
	}
	if out.Payload.Kind == sink.KindError {
		writeJSON(w, http.StatusUnprocessableEntity, *out.Payload)
		return
	}

	if h.archive != nil {
		if _, err := h.archive.Save(typeid.NewExportID(), out.Payload.Floors); err != nil {
			slog.Error("archive export", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Payload.Filename))
	w.Write(out.Payload.Floors)

	slog.Info("export complete", "plan", req.Name, "filename", out.Payload.Filename, "size", len(out.Payload.Floors))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
