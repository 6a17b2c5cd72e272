package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
	"workflowpro-backend/events"
	"workflowpro-backend/log"
)

const inviteSubject = "You have been invited to a team on Workflow-Pro"

var inviteTemplate = template.Must(template.New("invite").Parse(`<html>
<body>
  <p>Hi,</p>
  <p><b>{{.Inviter}}</b> invited you to join the team <b>{{.TeamName}}</b> on Workflow-Pro.</p>
  <p><a href="{{.AcceptURL}}">Accept the invitation</a></p>
  <p>If you were not expecting this, you can ignore this email.</p>
</body>
</html>`))

type Mailer struct {
	mg          mailgun.Mailgun
	sender      string
	frontendURL string
}

func NewMailer(domain, apiKey, frontendURL string) *Mailer {
	return &Mailer{
		mg:          mailgun.NewMailgun(domain, apiKey),
		sender:      fmt.Sprintf("Workflow-Pro <noreply@%s>", domain),
		frontendURL: frontendURL,
	}
}

func (m *Mailer) sendInvite(ctx context.Context, event *events.InviteEvent) error {
	var body bytes.Buffer
	err := inviteTemplate.Execute(&body, struct {
		Inviter   string
		TeamName  string
		AcceptURL string
	}{
		Inviter:   event.Inviter,
		TeamName:  event.TeamName,
		AcceptURL: fmt.Sprintf("%s/invites/%s", m.frontendURL, event.Token),
	})
	if err != nil {
		return err
	}

	msg := m.mg.NewMessage(m.sender, inviteSubject, "", event.Email)
	msg.SetHtml(body.String())

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, _, err = m.mg.Send(ctx, msg)
	return err
}

// Run consumes the invite queue until the context is cancelled. A failed
// send is logged and dropped; the user's re-action is the retry path.
func (m *Mailer) Run(ctx context.Context) error {
	invites, err := events.ConsumeInvites(ctx)
	if err != nil {
		return err
	}

	for event := range invites {
		if err := m.sendInvite(ctx, event); err != nil {
			log.Logger.Error("failed sending invite email", zap.Error(err), zap.String("email", event.Email))
			continue
		}

		log.Logger.Info("invite email sent", zap.String("email", event.Email), zap.String("team", event.TeamName))
	}

	return nil
}
