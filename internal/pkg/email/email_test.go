package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSendSkipsWithoutCredentials(t *testing.T) {
	svc := NewEmailService(SMTPConfig{Host: "smtp.example.com", Port: 587}, zerolog.Nop())
	reason := "incomplete"

	assert.NoError(t, svc.SendApprovalEmail("a@b.co", "A", "Course", "STU0001"))
	assert.NoError(t, svc.SendRejectionEmail("a@b.co", "A", "Course", &reason))
	assert.NoError(t, svc.SendNewsletterWelcome("a@b.co"))
}

func TestBuildMessage(t *testing.T) {
	svc := &EmailServiceImpl{config: SMTPConfig{FromName: "Bathudi", FromEmail: "noreply@bathudi.co.za"}}
	msg := svc.buildMessage("x@y.z", "Hello", "<p>hi</p>")

	assert.True(t, strings.HasPrefix(msg, "Content-Type: text/html; charset=UTF-8\r\nFrom: Bathudi <noreply@bathudi.co.za>\r\n"))
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
	assert.Contains(t, msg, "Subject: Hello\r\n")
}
