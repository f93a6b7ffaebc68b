package notifications

import (
	"errors"
	"fmt"
	"html"
	"log/slog"

	sc "github.com/ppmonster111/Nutritional/pkg/smtp-client"
)

// StressAdvisoryConfig controls the care-team notification that is sent
// when a respondent's stress screening score reaches the advisory threshold.
type StressAdvisoryConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Recipients []string `json:"recipients" yaml:"recipients"`
	Subject    string   `json:"subject" yaml:"subject"`

	SmtpServerConfig sc.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`
}

type StressAdvisoryNotifier struct {
	config     StressAdvisoryConfig
	smtpClient *sc.SmtpClients
}

func NewStressAdvisoryNotifier(config StressAdvisoryConfig) (*StressAdvisoryNotifier, error) {
	n := &StressAdvisoryNotifier{
		config: config,
	}
	if !config.Enabled {
		return n, nil
	}
	if len(config.Recipients) < 1 {
		return nil, errors.New("stress advisory notifier enabled but no recipients configured")
	}

	client, err := sc.NewSmtpClients(config.SmtpServerConfig)
	if err != nil {
		return nil, err
	}
	n.smtpClient = client
	return n, nil
}

// NotifyHighStress sends the advisory email for one submission. The body
// carries the session reference and the score only, never answer content.
func (n *StressAdvisoryNotifier) NotifyHighStress(sessionID string, formSlug string, score int, severity string) error {
	if n == nil || !n.config.Enabled || n.smtpClient == nil {
		return nil
	}

	subject := n.config.Subject
	if subject == "" {
		subject = "Stress screening advisory"
	}

	body := fmt.Sprintf(
		"<p>A submitted survey reached the stress advisory threshold.</p><ul><li>Form: %s</li><li>Session: %s</li><li>ST-5 score: %d</li><li>Severity: %s</li></ul>",
		html.EscapeString(formSlug),
		html.EscapeString(sessionID),
		score,
		html.EscapeString(severity),
	)

	err := n.smtpClient.SendMail(n.config.Recipients, subject, body, nil)
	if err != nil {
		slog.Error("failed to send stress advisory email", slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		return err
	}
	slog.Info("stress advisory email sent", slog.String("sessionID", sessionID), slog.Int("score", score))
	return nil
}
