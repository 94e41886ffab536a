// Package mail delivers account email. LogSender writes each message to the
// structured log instead of an SMTP relay.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

const defaultResetTTL = time.Hour

type LogSender struct {
	baseURL  string
	resetTTL time.Duration
	logger   *slog.Logger
}

// NewLogSender builds links against baseURL. resetTTL is the lifetime quoted
// in the password reset mail and should match the issuer's reset TTL.
func NewLogSender(baseURL string, resetTTL time.Duration, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	return &LogSender{baseURL: strings.TrimRight(baseURL, "/"), resetTTL: resetTTL, logger: logger}
}

func (s *LogSender) SendVerification(ctx context.Context, email, token, displayName string) error {
	link, err := s.link("/verify-email", token)
	if err != nil {
		return err
	}
	s.deliver(ctx, "verification", email, displayName,
		fmt.Sprintf("Hi %s, confirm your email address: %s", displayName, link))
	return nil
}

func (s *LogSender) SendPasswordReset(ctx context.Context, email, token, displayName string) error {
	link, err := s.link("/reset-password", token)
	if err != nil {
		return err
	}
	s.deliver(ctx, "password_reset", email, displayName,
		fmt.Sprintf("Hi %s, reset your password within %s: %s", displayName, humanDuration(s.resetTTL), link))
	return nil
}

func (s *LogSender) SendWelcome(ctx context.Context, email, displayName string) error {
	s.deliver(ctx, "welcome", email, displayName,
		fmt.Sprintf("Welcome to VårdForAlla, %s!", displayName))
	return nil
}

// humanDuration renders whole hours or minutes; anything finer falls back
// to time.Duration's own format.
func humanDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// link builds base+path?token=... The token is query-escaped.
func (s *LogSender) link(path, token string) (string, error) {
	u, err := url.Parse(s.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid app base url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// deliver logs the message body. The body carries the link, so it is logged
// at debug level only.
func (s *LogSender) deliver(ctx context.Context, template, email, displayName, body string) {
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", email, "name", displayName)
	s.logger.DebugContext(ctx, "email body", "template", template, "to", email, "body", body)
}
