package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/metrics"
	"github.com/mauv0809/la-canchita/internal/notifier"
	"github.com/mauv0809/la-canchita/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack. When no token is
// configured it degrades to a no-op so the rest of the application does
// not need to care whether Slack is wired up.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	disabled  bool
}

// NewNotifier creates a new Notifier. An empty token disables sending.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" || channelID == "" {
		log.Info("Slack notifier disabled, no token or channel configured")
		return &Notifier{metrics: metrics, disabled: true}
	}
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if s.disabled {
		return "", "", nil
	}
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchResult(match *league.Match, players []league.Player, dryRun bool) error {
	msg := s.formatMatchResult(match, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendSeasonTable(seasonName string, rows []stats.TableRow, dryRun bool) error {
	msg := s.formatSeasonTable(seasonName, rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendAsadoRecorded(event *asado.Asado, players []league.Player, dryRun bool) error {
	msg := s.formatAsadoRecorded(event, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
