package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/internal/config"
	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/go-resty/resty/v2"
)

// relayMessage is the JSON body posted to the relay.
type relayMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type mailRelaySender struct {
	client *resty.Client

	endpoint string
	from     string

	logger *logger.Logger
}

// NewMailRelaySender constructs the HTTP implementation of [EmailSender].
// Messages are POSTed as JSON to cfg.RelayURL with cfg.APIKey as a bearer
// token, each call bounded by cfg.Timeout.
//
// Returns ErrInvalidRelayURL if cfg.RelayURL is not an absolute http(s) URL.
func NewMailRelaySender(cfg config.Mail, logger *logger.Logger) (EmailSender, error) {
	endpoint, err := normalizeRelayURL(cfg.RelayURL)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	logger.Info().Str("relay", endpoint).Msg("mail relay sender created")

	return &mailRelaySender{client: client, endpoint: endpoint, from: cfg.From, logger: logger}, nil
}

func normalizeRelayURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidRelayURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRelayURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: address must include http(s) scheme and host", ErrInvalidRelayURL)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// splitRecipients turns a ";"-joined list into trimmed, non-empty addresses.
func splitRecipients(recipients string) []string {
	parts := strings.Split(recipients, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Send implements [EmailSender].
func (m *mailRelaySender) Send(ctx context.Context, recipients, subject, body string) error {
	log := logger.FromContext(ctx)

	to := splitRecipients(recipients)
	if len(to) == 0 {
		return fmt.Errorf("%w: %w", ErrDelivery, ErrNoRecipients)
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(relayMessage{From: m.from, To: to, Subject: subject, HTML: body}).
		Post(m.endpoint)
	if err != nil {
		log.Err(err).Str("func", "*mailRelaySender.Send").Int("recipients", len(to)).Msg("mail relay request failed")
		return fmt.Errorf("%w: %w: %w", ErrDelivery, ErrRelayUnavailable, err)
	}
	if err = mapRelayError(resp); err != nil {
		log.Err(err).Str("func", "*mailRelaySender.Send").Int("status", resp.StatusCode()).Msg("mail relay refused message")
		return err
	}

	log.Info().Str("func", "*mailRelaySender.Send").Int("recipients", len(to)).Msg("email handed to relay")
	return nil
}
