package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/andy/salesdesk/internal/domain"
)

var visitBody = template.Must(template.New("visit").Parse(`Hello,

A client visit has been scheduled.

Company:        {{.CompanyName}}
{{- if .ContactPerson}}
Contact:        {{.ContactPerson}}{{end}}
Visit type:     {{.VisitType}}
Scheduled for:  {{.ScheduledAt.Format "Mon Jan 2, 2006 at 3:04 PM MST"}}
Sales rep:      {{.SalesRep}}
{{- if .Notes}}

Notes:
{{.Notes}}{{end}}
`))

// VisitMessage renders the email for a scheduled visit
func VisitMessage(n domain.VisitNotification) (Message, error) {
	var body bytes.Buffer
	if err := visitBody.Execute(&body, n); err != nil {
		return Message{}, fmt.Errorf("failed to render visit email: %w", err)
	}

	return Message{
		To:      n.Recipient,
		Subject: fmt.Sprintf("Visit scheduled: %s (%s)", n.CompanyName, n.VisitType),
		Body:    body.String(),
	}, nil
}
