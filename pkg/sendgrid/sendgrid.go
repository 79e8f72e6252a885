package sendgrid

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Client sends mail through the SendGrid API.
type Client struct {
	client   sender
	from     string
	fromName string
}

func NewClient(apiKey, from, fromName string) *Client {
	return &Client{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (c *Client) Send(to, subject, text, html string) error {
	message := mail.NewSingleEmail(mail.NewEmail(c.fromName, c.from), subject, mail.NewEmail("", to), text, html)

	response, err := c.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}
	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
