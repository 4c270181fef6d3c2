package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrRecordNotFound is returned when an upstream lookup has no match.
var ErrRecordNotFound = errors.New("record not found")

// Mailer delivers transactional mail through the relay API. Callers in the
// registration flow treat delivery failures as non-fatal.
type Mailer interface {
	SendVerificationLink(ctx context.Context, recipients []string, link string) error
}

type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

type mailClient struct {
	client *resty.Client
	from   string
	log    *zap.Logger
}

func NewMailer(apiURL, from string, log *zap.Logger) Mailer {
	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &mailClient{
		client: client,
		from:   from,
		log:    log.With(zap.String("gateway", "mail")),
	}
}

func (c *mailClient) SendVerificationLink(ctx context.Context, recipients []string, link string) error {
	if len(recipients) == 0 {
		c.log.Warn("No recipients for verification mail, skipping send")
		return nil
	}

	body := mailRequest{
		From:    c.from,
		To:      recipients,
		Subject: "Set your account password",
		Body:    fmt.Sprintf("A new registration is awaiting action. Set the password here: %s", link),
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/messages")

	if err != nil {
		c.log.Error("Mail request failed", zap.Error(err), zap.Int("recipients", len(recipients)))
		return fmt.Errorf("send verification mail: %w", err)
	}
	if resp.IsError() {
		c.log.Error("Mail relay returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.Int("recipients", len(recipients)),
		)
		return fmt.Errorf("send verification mail: upstream status %d", resp.StatusCode())
	}

	return nil
}
