// Package convert turns a plan's scene tree into per-floor GeoJSON feature
// collections. The conversion is a pure transform: the document is read once,
// nothing is mutated, and running it twice on the same scene produces
// byte-identical output.
package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
)

// Build validates the top-level selection, converts each floor group, and
// emits exactly one payload to the sink, either an error or a success.
func Build(selection []document.Node, opts Options, out sink.Sink) {
	if len(selection) != 1 {
		out.Emit(sink.Payload{Kind: sink.KindError, Message: "select exactly one top-level frame"})
		return
	}

	root := &selection[0]
	if !root.IsContainer() {
		out.Emit(sink.Payload{Kind: sink.KindError, Message: "selected node must be a frame or group"})
		return
	}

	var floors []*document.Node
	for i := range root.Children {
		if root.Children[i].IsContainer() {
			floors = append(floors, &root.Children[i])
		}
	}
	if len(floors) == 0 {
		out.Emit(sink.Payload{Kind: sink.KindError, Message: "no floor groups inside the selection"})
		return
	}

	exports := make([]FloorExport, 0, len(floors))
	total := 0
	for _, floor := range floors {
		fe := CollectFloor(floor, opts, out)
		total += len(fe.FeatureCollection.Features)
		exports = append(exports, fe)
	}
	if total == 0 {
		out.Emit(sink.Payload{Kind: sink.KindError, Message: "no exportable shapes found on any floor"})
		return
	}

	data, err := json.Marshal(exports)
	if err != nil {
		out.Emit(sink.Payload{Kind: sink.KindError, Message: fmt.Sprintf("serialize result: %v", err)})
		return
	}

	out.Emit(sink.Payload{
		Kind:     sink.KindSuccess,
		Filename: Filename(root.Name),
		Floors:   data,
	})
}

// Filename derives a safe download name from the selection's name.
func Filename(name string) string {
	if name == "" {
		name = "floor-plan"
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
	return name + ".geojson"
}
