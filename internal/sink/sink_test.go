package sink

import "testing"

func TestCaptureSupersedesEarlierPayload(t *testing.T) {
	var c Capture

	c.Emit(Payload{Kind: KindError, Message: "first"})
	c.Emit(Payload{Kind: KindSuccess, Filename: "plan.geojson"})

	if c.Emits() != 2 {
		t.Errorf("Emits() = %d, want 2", c.Emits())
	}
	if c.Payload == nil || c.Payload.Kind != KindSuccess {
		t.Errorf("later payload should supersede: got %+v", c.Payload)
	}
}

func TestCaptureCollectsNotices(t *testing.T) {
	var c Capture

	c.Notify("floor empty")
	c.Notify("another notice")

	if len(c.Notices) != 2 {
		t.Fatalf("got %d notices, want 2", len(c.Notices))
	}
	if c.Payload != nil {
		t.Errorf("notices must not produce a payload, got %+v", c.Payload)
	}
}
