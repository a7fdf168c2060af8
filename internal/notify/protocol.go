package notify

import "encoding/json"

// Message is the wire format pushed to subscribed clients.
type Message struct {
	Type    string          `json:"type"`
	PlanID  string          `json:"planId,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

const (
	TypeWelcome        = "welcome"
	TypeExportComplete = "export.complete"
	TypeExportError    = "export.error"
	TypeExportNotice   = "export.notice"
)

// ExportCompletePayload announces a finished conversion run.
type ExportCompletePayload struct {
	ExportID string `json:"exportId"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ExportErrorPayload announces a structurally failed conversion run.
type ExportErrorPayload struct {
	Message string `json:"message"`
}

// ExportNoticePayload carries a soft per-floor notice.
type ExportNoticePayload struct {
	Message string `json:"message"`
}
