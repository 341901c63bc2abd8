package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomstay-backend/internal/application/notify"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender   `json:"sender"`
	To          []BrevoTo     `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
	ReplyTo     *BrevoReplyTo `json:"replyTo,omitempty"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type BrevoReplyTo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// BrevoClient delivers notification intents via Brevo (Sendinblue) as HTML
// emails. Env: SENDINBLUE_API_KEY, MAIL_FROM. Empty API key = no-op, which
// keeps local/dev environments email-free. Implements notify.Gateway.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@roomstay.app"
}

// Send renders the intent into the shared layout and posts it to Brevo.
func (c *BrevoClient) Send(ctx context.Context, intent notify.Intent) error {
	if c.APIKey == "" {
		return nil
	}
	if intent.Email == "" {
		return fmt.Errorf("intent %s has no target email", intent.Type)
	}
	return c.send(ctx, intent.Email, intent.Subject, EmailLayout(intentContent(intent)))
}

// send posts one email via the Brevo API.
func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "RoomStay"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
		ReplyTo:     &BrevoReplyTo{Email: "support@roomstay.app", Name: "RoomStay Support"},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// intentContent renders the inner HTML for one intent (inside the layout).
func intentContent(intent notify.Intent) string {
	name := intent.Fullname
	if name == "" {
		name = "there"
	}
	button := buttonLabel(intent.Type)
	return fmt.Sprintf(`
    <h1>%s</h1>
    <p>Hi %s,</p>
    <p>%s</p>
    <center>
      <a href="%s" class="rs-button">%s</a>
    </center>
    <p>— The RoomStay Team</p>
`, EscapeHTML(intent.Subject), EscapeHTML(name), EscapeHTML(intent.Body), intent.LinkURL, button)
}

func buttonLabel(intentType string) string {
	switch intentType {
	case notify.TypeListingApproved:
		return "View Your Listing"
	case notify.TypeListingRejected:
		return "Review and Edit"
	case notify.TypeNewInquiry:
		return "Read the Inquiry"
	default:
		return "Open RoomStay"
	}
}
