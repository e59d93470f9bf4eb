package orders

import (
	"net/url"
	"strings"
)

// Handoff carries the URIs a client opens to dispatch the composed message.
// The primary wa.me link is tried first; FallbackURL uses the whatsapp://
// scheme for environments where the web URL cannot be opened.
type Handoff struct {
	Message     string `json:"message"`
	URL         string `json:"url"`
	FallbackURL string `json:"fallbackUrl"`
}

// NewHandoff builds both URIs for destination number to. An empty destination
// is a HandoffFailure; it never blocks order persistence.
func NewHandoff(to, message string) (*Handoff, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, &HandoffFailure{Reason: "no WhatsApp destination configured"}
	}

	encoded := url.QueryEscape(message)
	return &Handoff{
		Message:     message,
		URL:         "https://wa.me/" + to + "?text=" + encoded,
		FallbackURL: "whatsapp://send?phone=" + to + "&text=" + encoded,
	}, nil
}
