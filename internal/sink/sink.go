// Package sink defines the one-way output channel a conversion run reports
// through. A run may send any number of soft notices but exactly one final
// payload; the payload kinds mirror the wire format handed to clients.
package sink

import "encoding/json"

const (
	KindSuccess = "success"
	KindError   = "error"
)

// Payload is the single final message of a conversion run. Error payloads
// carry only Message; success payloads carry the serialized floor entries and
// a filename hint for the download.
type Payload struct {
	Kind     string          `json:"kind"`
	Message  string          `json:"message,omitempty"`
	Filename string          `json:"filename,omitempty"`
	Floors   json.RawMessage `json:"floors,omitempty"`
}

// Sink receives conversion output. Emit is fire-and-forget: implementations
// must accept a second payload by superseding the first, but the converter is
// responsible for sending at most one per run.
type Sink interface {
	Notify(message string)
	Emit(p Payload)
}

// Capture buffers everything sent to it. It is the sink handed to the
// converter by the HTTP and CLI front ends, which inspect the captured
// payload after the run; tests use it the same way.
type Capture struct {
	Notices []string
	Payload *Payload
	emits   int
}

func (c *Capture) Notify(message string) {
	c.Notices = append(c.Notices, message)
}

// Emit records the payload. A later payload supersedes an earlier one.
func (c *Capture) Emit(p Payload) {
	c.Payload = &p
	c.emits++
}

// Emits reports how many payloads were sent; a correct run sends exactly one.
func (c *Capture) Emits() int { return c.emits }
