package service

import (
	"encoding/json"

	"gradaid-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ActivityFeedTopic is the in-process topic carrying committed activity
// entries to the websocket hub.
const ActivityFeedTopic = "ACTIVITY_FEED"

type IFeedPublisher interface {
	PublishActivity(entry *entity.ActivityEntry)
}

type feedPublisher struct {
	publisher message.Publisher
}

func NewFeedPublisher(publisher message.Publisher) IFeedPublisher {
	return &feedPublisher{publisher: publisher}
}

// PublishActivity pushes an already-committed activity entry onto the feed
// topic. Failures are swallowed: the feed is best-effort and must never fail
// the mutation that produced the entry.
func (p *feedPublisher) PublishActivity(entry *entity.ActivityEntry) {
	if p.publisher == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	_ = p.publisher.Publish(ActivityFeedTopic, msg)
}
