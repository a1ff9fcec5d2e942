package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// rejectedStatuses are Twilio message states that mean the message will not be delivered
var rejectedStatuses = map[string]bool{
	"failed":      true,
	"undelivered": true,
	"canceled":    true,
}

// TwilioConfig configures the Twilio provider
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	Timeout    time.Duration
}

// TwilioProvider sends WhatsApp messages through the Twilio REST API
type TwilioProvider struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioProvider creates a TwilioProvider
func NewTwilioProvider(cfg TwilioConfig) (*TwilioProvider, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio account sid and auth token are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &TwilioProvider{client: client, from: whatsappAddress(cfg.From)}, nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

// SendTemplated sends a pre-approved content template
func (p *TwilioProvider) SendTemplated(_ context.Context, to, templateID string, variables map[string]string) (Outcome, error) {
	vars, err := json.Marshal(variables)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to encode template variables: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(p.from)
	params.SetContentSid(templateID)
	params.SetContentVariables(string(vars))
	return p.send(params)
}

// SendFreeform sends a plain text message
func (p *TwilioProvider) SendFreeform(_ context.Context, to, body string) (Outcome, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(p.from)
	params.SetBody(body)
	return p.send(params)
}

func (p *TwilioProvider) send(params *twilioApi.CreateMessageParams) (Outcome, error) {
	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		return Outcome{}, fmt.Errorf("twilio create message: %w", err)
	}

	var out Outcome
	if resp.Sid != nil {
		out.MessageID = *resp.Sid
	}
	out.Accepted = out.MessageID != ""
	if resp.Status != nil && rejectedStatuses[*resp.Status] {
		out.Accepted = false
	}
	return out, nil
}
