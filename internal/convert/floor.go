package convert

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
)

// FloorExport pairs a floor identifier with its converted features. Floors
// are independent; nothing is shared between two exports.
type FloorExport struct {
	FloorID           string                     `json:"floorId"`
	FeatureCollection *geojson.FeatureCollection `json:"featureCollection"`
}

// CollectFloor converts one floor group's direct children into a feature
// collection. The floor's own height anchors the vertical flip for every
// descendant. A floor with no children yields an empty collection and a soft
// notice, never a failure.
func CollectFloor(floor *document.Node, opts Options, out sink.Sink) FloorExport {
	fc := geojson.NewFeatureCollection()

	if len(floor.Children) == 0 {
		out.Notify(fmt.Sprintf("floor %q has no shapes", floor.Name))
		return FloorExport{FloorID: floor.Name, FeatureCollection: fc}
	}

	for i := range floor.Children {
		for _, f := range SynthesizeNode(&floor.Children[i], floor.Height, opts) {
			fc.Append(f)
		}
	}

	return FloorExport{FloorID: floor.Name, FeatureCollection: fc}
}
