package whatsapp

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Institution holds the contact details rendered into follow-up messages
type Institution struct {
	Name            string
	RegistrationFee float64
	Currency        string
	Address         string
	Phone           string
	Email           string
	Website         string
}

// FormattedFee renders the registration fee, using the rand sign for ZAR
func (i Institution) FormattedFee() string {
	if i.Currency == "" || strings.EqualFold(i.Currency, "ZAR") {
		return fmt.Sprintf("R%.2f", i.RegistrationFee)
	}
	return fmt.Sprintf("%.2f %s", i.RegistrationFee, strings.ToUpper(i.Currency))
}

var approvalTemplate = template.Must(template.New("approval").Parse(
	`CONGRATULATIONS {{.Name}}!

You have been ACCEPTED into the {{.Course}} programme at {{.Institution.Name}}.

NEXT STEPS:
1. Visit our offices for registration
2. Bring your ID document
3. Bring your Matric certificate
4. Bring proof of payment ({{.Institution.FormattedFee}})

Address: {{.Institution.Address}}
Contact: {{.Institution.Phone}}
{{- if .Institution.Email}}
Email: {{.Institution.Email}}{{end}}
{{- if .Institution.Website}}
Website: {{.Institution.Website}}{{end}}

We look forward to welcoming you!

- {{.Institution.Name}} Management`))

var rejectionTemplate = template.Must(template.New("rejection").Parse(
	`Thank you for your interest in {{.Course}} at {{.Institution.Name}}.

After careful review, we regret to inform you that your application has been unsuccessful at this time.
{{- if .Reason}}

Reason: {{.Reason}}{{end}}

You are welcome to reapply in the future when you meet the minimum requirements.

Kind regards,
{{.Institution.Name}} Management`))

type messageData struct {
	Name        string
	Course      string
	Reason      string
	Institution Institution
}

// RenderFollowUp renders the free-form text for n
func RenderFollowUp(n Notification, inst Institution) (string, error) {
	data := messageData{
		Name:        n.ApplicantName,
		Course:      n.CourseName,
		Institution: inst,
	}
	if n.Reason != nil {
		data.Reason = strings.TrimSpace(*n.Reason)
	}

	tmpl := approvalTemplate
	if n.Kind == KindApproval {
		data.Name = strings.ToUpper(n.ApplicantName)
	} else {
		tmpl = rejectionTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s message: %w", n.Kind, err)
	}
	return buf.String(), nil
}
