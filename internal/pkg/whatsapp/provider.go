// Package whatsapp sends applicant notifications over WhatsApp.
//
// A conversation with an applicant must be opened with a pre-approved
// template. The Dispatcher sends the template first and follows up with
// the full free-form text only when the provider accepted the template.
package whatsapp

import (
	"context"
	"strings"
)

// Outcome reports what the provider did with a message
type Outcome struct {
	MessageID string
	Accepted  bool
}

// Provider is the narrow send capability the Dispatcher needs
type Provider interface {
	SendTemplated(ctx context.Context, to, templateID string, variables map[string]string) (Outcome, error)
	SendFreeform(ctx context.Context, to, body string) (Outcome, error)
}

// NormalizePhone converts a local or international number to E.164.
// Only digits are kept. South African local numbers (leading 0) get +27.
// An input without digits yields "".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "263"), strings.HasPrefix(digits, "27"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+27" + digits[1:]
	default:
		return "+" + digits
	}
}
