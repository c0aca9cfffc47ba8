package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// Sink delivers a rendered notification line somewhere out of band.
type Sink interface {
	Send(ctx context.Context, text string) error
}

// Notifier renders marketplace events and pushes them through a sink.
// Delivery is best effort: failures are logged, never propagated, so a
// Slack outage cannot fail a bid mutation.
type Notifier struct {
	sink Sink
}

func New(sink Sink) *Notifier {
	return &Notifier{sink: sink}
}

func (n *Notifier) BidSubmitted(ctx context.Context, project *domain.Project, bid *domain.Bid) {
	n.send(ctx, fmt.Sprintf("New bid on %q: %.2f/hr, %d days", project.Title, bid.ProposedRate, bid.EstimatedDurationDays))
}

func (n *Notifier) BidAccepted(ctx context.Context, project *domain.Project, bid *domain.Bid) {
	n.send(ctx, fmt.Sprintf("Bid accepted on %q at %.2f/hr; project is now in progress", project.Title, bid.ProposedRate))
}

func (n *Notifier) BidRejected(ctx context.Context, project *domain.Project, bid *domain.Bid) {
	n.send(ctx, fmt.Sprintf("Bid rejected on %q (%.2f/hr)", project.Title, bid.ProposedRate))
}

func (n *Notifier) send(ctx context.Context, text string) {
	if err := n.sink.Send(ctx, text); err != nil {
		log.Warn().Err(err).Msg("notify: delivery failed")
	}
}

// SlackAPI abstracts the subset of the Slack client used by SlackSink.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostMessage(channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// SlackSink posts notifications to a fixed Slack channel.
type SlackSink struct {
	api     SlackAPI
	channel string
}

var _ Sink = (*SlackSink)(nil)

func NewSlackSink(api SlackAPI, channel string) *SlackSink {
	return &SlackSink{api: api, channel: channel}
}

func (s *SlackSink) Send(_ context.Context, text string) error {
	_, _, err := s.api.PostMessage(s.channel, slacklib.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("notify.SlackSink.Send: %w", err)
	}

	return nil
}

// LogSink is the fallback when no Slack credentials are configured.
type LogSink struct{}

var _ Sink = LogSink{}

func (LogSink) Send(_ context.Context, text string) error {
	log.Info().Str("notification", text).Msg("notify")
	return nil
}
