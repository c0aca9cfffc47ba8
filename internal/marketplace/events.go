package marketplace

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// PubSubPublisher abstracts the Redis pub/sub publish operation.
type PubSubPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Notifier receives marketplace events for out-of-band delivery (Slack,
// logs). Implementations must not block the caller for long.
type Notifier interface {
	BidSubmitted(ctx context.Context, project *domain.Project, bid *domain.Bid)
	BidAccepted(ctx context.Context, project *domain.Project, bid *domain.Bid)
	BidRejected(ctx context.Context, project *domain.Project, bid *domain.Bid)
}

// Bid event types carried on the project bid channel.
const (
	EventBidSubmitted = "bid.submitted"
	EventBidAccepted  = "bid.accepted"
	EventBidRejected  = "bid.rejected"
)

// BidEvent is the wire shape published to the project bid channel and
// forwarded verbatim to websocket subscribers.
type BidEvent struct {
	Type      string      `json:"type"`
	ProjectID uuid.UUID   `json:"project_id"`
	Bid       *domain.Bid `json:"bid"`
}

// ProjectBidsChannel is the pub/sub channel carrying bid events for one
// project. The websocket hub subscribes to the same name.
func ProjectBidsChannel(projectID uuid.UUID) string {
	return "project:" + projectID.String() + ":bids"
}

// publishBidEvent is best effort: a pub/sub outage must not fail the
// mutation that already committed.
func publishBidEvent(ctx context.Context, pub PubSubPublisher, eventType string, bid *domain.Bid) {
	if pub == nil {
		return
	}

	payload, err := json.Marshal(BidEvent{Type: eventType, ProjectID: bid.ProjectID, Bid: bid})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to marshal bid event")
		return
	}

	if err := pub.Publish(ctx, ProjectBidsChannel(bid.ProjectID), payload); err != nil {
		log.Warn().Err(err).Str("event", eventType).Stringer("project_id", bid.ProjectID).
			Msg("failed to publish bid event")
	}
}
