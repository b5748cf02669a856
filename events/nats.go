package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events as JSON to a NATS subject per auction and
// event type: "auctions.<auction_id>.<type>". Subscribers can use wildcards
// to follow one auction ("auctions.3.*") or one event kind
// ("auctions.*.bid_placed").
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the broker at the given URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := fmt.Sprintf("auctions.%d.%s", ev.AuctionID, ev.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains and closes the broker connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
