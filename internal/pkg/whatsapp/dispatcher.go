package whatsapp

import (
	"context"

	"github.com/rs/zerolog"
)

// Kind is the workflow transition a notification reports
type Kind string

const (
	KindApproval  Kind = "approval"
	KindRejection Kind = "rejection"
)

// Notification is one applicant message request
type Notification struct {
	Kind          Kind
	Phone         string
	ApplicantName string
	CourseName    string
	Reason        *string
}

// Settings are the dispatch toggles and template ids
type Settings struct {
	Enabled             bool
	SendApproval        bool
	SendRejection       bool
	TemplateID          string
	ApprovalTemplateID  string
	RejectionTemplateID string
	// SandboxMode restricts sends to TestNumbers
	SandboxMode bool
	TestNumbers []string
}

// Dispatcher turns workflow notifications into provider sends
type Dispatcher struct {
	provider    Provider
	settings    Settings
	institution Institution
	testNumbers map[string]struct{}
	logger      zerolog.Logger
}

// NewDispatcher creates a Dispatcher. provider may be nil, in which case
// every dispatch is skipped.
func NewDispatcher(provider Provider, settings Settings, institution Institution, logger zerolog.Logger) *Dispatcher {
	numbers := make(map[string]struct{}, len(settings.TestNumbers))
	for _, n := range settings.TestNumbers {
		if norm := NormalizePhone(n); norm != "" {
			numbers[norm] = struct{}{}
		}
	}
	return &Dispatcher{
		provider:    provider,
		settings:    settings,
		institution: institution,
		testNumbers: numbers,
		logger:      logger.With().Str("component", "whatsapp").Logger(),
	}
}

// Enabled reports whether notifications of kind would be attempted
func (d *Dispatcher) Enabled(kind Kind) bool {
	if d == nil || !d.settings.Enabled || d.provider == nil {
		return false
	}
	switch kind {
	case KindApproval:
		return d.settings.SendApproval
	case KindRejection:
		return d.settings.SendRejection
	}
	return false
}

func (d *Dispatcher) templateFor(kind Kind) string {
	switch {
	case kind == KindApproval && d.settings.ApprovalTemplateID != "":
		return d.settings.ApprovalTemplateID
	case kind == KindRejection && d.settings.RejectionTemplateID != "":
		return d.settings.RejectionTemplateID
	}
	return d.settings.TemplateID
}

// Dispatch sends n and reports whether the opening template was accepted.
// Failures are logged and never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) bool {
	if !d.Enabled(n.Kind) {
		d.logger.Debug().Str("kind", string(n.Kind)).Msg("WhatsApp notification disabled, skipping")
		return false
	}

	to := NormalizePhone(n.Phone)
	if to == "" {
		d.logger.Warn().Str("kind", string(n.Kind)).Msg("No phone number for WhatsApp notification")
		return false
	}
	if d.settings.SandboxMode {
		if _, ok := d.testNumbers[to]; !ok {
			d.logger.Info().Str("to", to).Msg("Sandbox mode: number not in test list, skipping")
			return false
		}
	}

	log := d.logger.With().Str("kind", string(n.Kind)).Str("to", to).Logger()

	templateID := d.templateFor(n.Kind)
	outcome, err := d.provider.SendTemplated(ctx, to, templateID, map[string]string{
		"1": n.ApplicantName,
		"2": n.CourseName,
	})
	if err != nil {
		log.Error().Err(err).Str("template", templateID).Msg("WhatsApp template send failed")
		return false
	}
	if !outcome.Accepted {
		log.Warn().Str("template", templateID).Msg("WhatsApp template not accepted, skipping follow-up")
		return false
	}
	log.Info().Str("sid", outcome.MessageID).Msg("WhatsApp template sent")

	body, err := RenderFollowUp(n, d.institution)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render WhatsApp follow-up")
		return true
	}
	followUp, err := d.provider.SendFreeform(ctx, to, body)
	if err != nil {
		log.Error().Err(err).Msg("WhatsApp follow-up send failed")
		return true
	}
	log.Info().Str("sid", followUp.MessageID).Bool("accepted", followUp.Accepted).Msg("WhatsApp follow-up sent")
	return true
}
