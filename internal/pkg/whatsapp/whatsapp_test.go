package whatsapp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	To         string
	TemplateID string
	Variables  map[string]string
	Body       string
}

type fakeProvider struct {
	mu           sync.Mutex
	templated    []sentMessage
	freeform     []sentMessage
	templateErr  error
	templateFail bool
}

func (f *fakeProvider) SendTemplated(_ context.Context, to, templateID string, variables map[string]string) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templated = append(f.templated, sentMessage{To: to, TemplateID: templateID, Variables: variables})
	if f.templateErr != nil {
		return Outcome{}, f.templateErr
	}
	if f.templateFail {
		return Outcome{Accepted: false}, nil
	}
	return Outcome{MessageID: "SM-template", Accepted: true}, nil
}

func (f *fakeProvider) SendFreeform(_ context.Context, to, body string) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freeform = append(f.freeform, sentMessage{To: to, Body: body})
	return Outcome{MessageID: "SM-body", Accepted: true}, nil
}

func testInstitution() Institution {
	return Institution{
		Name:            "Bathudi Automotive Technical Center",
		RegistrationFee: 661.25,
		Currency:        "ZAR",
		Address:         "123 Training Street, Johannesburg",
		Phone:           "+27689176294",
		Email:           "info@bathudi.co.za",
	}
}

func enabledSettings() Settings {
	return Settings{
		Enabled:       true,
		SendApproval:  true,
		SendRejection: true,
		TemplateID:    "HXshared",
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0821234567":        "+27821234567",
		"082 123 4567":      "+27821234567",
		"27821234567":       "+27821234567",
		"+27 82 123 4567":   "+27821234567",
		"263771234567":      "+263771234567",
		"(+263) 77-123-456": "+26377123456",
		"4412345678":        "+4412345678",
		"":                  "",
		"n/a":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestDispatch_ApprovalSendsTemplateThenFollowUp(t *testing.T) {
	p := &fakeProvider{}
	settings := enabledSettings()
	settings.ApprovalTemplateID = "HXapproval"
	d := NewDispatcher(p, settings, testInstitution(), zerolog.Nop())

	ok := d.Dispatch(context.Background(), Notification{
		Kind:          KindApproval,
		Phone:         "082 123 4567",
		ApplicantName: "Thandi",
		CourseName:    "Automotive Engine Repairer",
	})

	assert.True(t, ok)
	require.Len(t, p.templated, 1)
	assert.Equal(t, "+27821234567", p.templated[0].To)
	assert.Equal(t, "HXapproval", p.templated[0].TemplateID)
	assert.Equal(t, map[string]string{"1": "Thandi", "2": "Automotive Engine Repairer"}, p.templated[0].Variables)

	require.Len(t, p.freeform, 1)
	body := p.freeform[0].Body
	assert.Contains(t, body, "CONGRATULATIONS THANDI!")
	assert.Contains(t, body, "Automotive Engine Repairer")
	assert.Contains(t, body, "R661.25")
	assert.Contains(t, body, "123 Training Street")
}

func TestDispatch_TemplateFailureSkipsFollowUp(t *testing.T) {
	for name, p := range map[string]*fakeProvider{
		"error":        {templateErr: errors.New("twilio down")},
		"not accepted": {templateFail: true},
	} {
		t.Run(name, func(t *testing.T) {
			d := NewDispatcher(p, enabledSettings(), testInstitution(), zerolog.Nop())
			ok := d.Dispatch(context.Background(), Notification{Kind: KindApproval, Phone: "0821234567", ApplicantName: "A"})
			assert.False(t, ok)
			assert.Len(t, p.templated, 1)
			assert.Empty(t, p.freeform)
		})
	}
}

func TestDispatch_RejectionUsesSharedTemplateAndReason(t *testing.T) {
	p := &fakeProvider{}
	d := NewDispatcher(p, enabledSettings(), testInstitution(), zerolog.Nop())
	reason := "Missing matric certificate"

	ok := d.Dispatch(context.Background(), Notification{
		Kind:          KindRejection,
		Phone:         "27821234567",
		ApplicantName: "Sipho",
		CourseName:    "your selected course",
		Reason:        &reason,
	})

	assert.True(t, ok)
	require.Len(t, p.templated, 1)
	assert.Equal(t, "HXshared", p.templated[0].TemplateID)
	require.Len(t, p.freeform, 1)
	assert.Contains(t, p.freeform[0].Body, "Reason: Missing matric certificate")
}

func TestDispatch_RejectionWithoutReasonOmitsReasonLine(t *testing.T) {
	p := &fakeProvider{}
	d := NewDispatcher(p, enabledSettings(), testInstitution(), zerolog.Nop())

	assert.True(t, d.Dispatch(context.Background(), Notification{Kind: KindRejection, Phone: "0821234567"}))
	require.Len(t, p.freeform, 1)
	assert.False(t, strings.Contains(p.freeform[0].Body, "Reason:"))
}

func TestDispatch_Toggles(t *testing.T) {
	n := Notification{Kind: KindApproval, Phone: "0821234567"}

	disabled := enabledSettings()
	disabled.Enabled = false
	noApproval := enabledSettings()
	noApproval.SendApproval = false
	sandbox := enabledSettings()
	sandbox.SandboxMode = true
	sandbox.TestNumbers = []string{"+27 71 000 0000"}

	for name, s := range map[string]Settings{"disabled": disabled, "approval off": noApproval, "sandbox": sandbox} {
		t.Run(name, func(t *testing.T) {
			p := &fakeProvider{}
			d := NewDispatcher(p, s, testInstitution(), zerolog.Nop())
			assert.False(t, d.Dispatch(context.Background(), n))
			assert.Empty(t, p.templated)
		})
	}

	t.Run("nil provider", func(t *testing.T) {
		d := NewDispatcher(nil, enabledSettings(), testInstitution(), zerolog.Nop())
		assert.False(t, d.Dispatch(context.Background(), n))
	})

	t.Run("empty phone", func(t *testing.T) {
		p := &fakeProvider{}
		d := NewDispatcher(p, enabledSettings(), testInstitution(), zerolog.Nop())
		assert.False(t, d.Dispatch(context.Background(), Notification{Kind: KindApproval}))
		assert.Empty(t, p.templated)
	})
}

func TestDispatch_SandboxAllowsTestNumbers(t *testing.T) {
	p := &fakeProvider{}
	s := enabledSettings()
	s.SandboxMode = true
	s.TestNumbers = []string{"0821234567"}
	d := NewDispatcher(p, s, testInstitution(), zerolog.Nop())

	assert.True(t, d.Dispatch(context.Background(), Notification{Kind: KindApproval, Phone: "+27821234567"}))
	assert.Len(t, p.templated, 1)
}

func TestFormattedFee(t *testing.T) {
	assert.Equal(t, "R661.25", Institution{RegistrationFee: 661.25, Currency: "ZAR"}.FormattedFee())
	assert.Equal(t, "50.00 USD", Institution{RegistrationFee: 50, Currency: "usd"}.FormattedFee())
}
