package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/adampresley/adamgokit/email"
	"github.com/lorenzwed/lorenzwed/pkg/models"
)

type Notifier interface {
	AlbumApproved(ctx context.Context, customer *models.Customer, album *models.Album) error
}

type EmailNotifierConfig struct {
	ApiKey      string
	NotifyEmail string
	FromName    string
	FromEmail   string
}

type mailSender interface {
	Send(mail email.Mail) error
}

// EmailNotifier tells the studio about approvals through Resend.
type EmailNotifier struct {
	service     mailSender
	notifyEmail string
	fromName    string
	fromEmail   string
}

var approvedTemplate = template.Must(template.New("approved").Parse(`
<h1>An album was approved</h1>
<p>{{.customerName}} ({{.username}}) approved the album '{{.albumName}}'
with {{.selectedCount}} selected photo(s).</p>
<p>Event date: {{.eventDate}}</p>
`))

/*
NewNotifier returns an EmailNotifier when an API key and recipient are
configured, otherwise a NoopNotifier.
*/
func NewNotifier(config EmailNotifierConfig) Notifier {
	if config.ApiKey == "" || config.NotifyEmail == "" {
		return NoopNotifier{}
	}

	return EmailNotifier{
		service: email.NewResendService(&email.Config{
			ApiKey: config.ApiKey,
		}),
		notifyEmail: config.NotifyEmail,
		fromName:    config.FromName,
		fromEmail:   config.FromEmail,
	}
}

func (n EmailNotifier) AlbumApproved(ctx context.Context, customer *models.Customer, album *models.Album) error {
	var (
		err  error
		body strings.Builder
	)

	data := map[string]any{
		"customerName":  customer.Name,
		"username":      customer.Username,
		"albumName":     album.Name,
		"eventDate":     album.EventDate,
		"selectedCount": len(album.SelectedPhotoIDs),
	}

	if err = approvedTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("error rendering approval email: %w", err)
	}

	err = n.service.Send(email.Mail{
		Body:       body.String(),
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: n.fromEmail,
			Name:  n.fromName,
		},
		Subject: fmt.Sprintf("Album approved: %s", album.Name),
		To: []email.EmailAddress{
			{Email: n.notifyEmail},
		},
	})

	if err != nil {
		return fmt.Errorf("error sending approval email for album %d: %w", album.ID, err)
	}

	return nil
}

type NoopNotifier struct{}

func (NoopNotifier) AlbumApproved(ctx context.Context, customer *models.Customer, album *models.Album) error {
	return nil
}
