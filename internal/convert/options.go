package convert

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// IDPolicy selects how a node name becomes the feature identifier.
type IDPolicy int

const (
	// IDVerbatim uses the node name unchanged.
	IDVerbatim IDPolicy = iota
	// IDParsed requires a "facility,category,floor" name with an integer
	// floor segment; nodes that do not match are skipped without comment.
	IDParsed
)

// EllipsePolicy selects how ellipse nodes are emitted.
type EllipsePolicy int

const (
	// EllipseAsPoint emits the geometric center with a radius property.
	EllipseAsPoint EllipsePolicy = iota
	// EllipseAsPolygon emits a tessellated ring honoring arc sweep and
	// rotation.
	EllipseAsPolygon
)

// Options configures one conversion run. The zero value is the richer
// variant's behavior for ids and the simple variant's for ellipses.
type Options struct {
	IDs      IDPolicy
	Ellipses EllipsePolicy
}

// identify builds the base property map for a node name, or reports that the
// node should be skipped under the active id policy.
func (o Options) identify(name string) (geojson.Properties, bool) {
	if o.IDs != IDParsed {
		return geojson.Properties{"id": name}, true
	}

	parts := strings.Split(name, ",")
	if len(parts) != 3 {
		return nil, false
	}
	level, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, false
	}
	return geojson.Properties{
		"id":       name,
		"facility": strings.TrimSpace(parts[0]),
		"category": strings.TrimSpace(parts[1]),
		"level":    level,
	}, true
}
