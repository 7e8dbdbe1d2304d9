package enums

// OutboxEventType names the domain events routed through the outbox table.
type OutboxEventType string

const (
	OutboxEventTypeOrderConfirmed     OutboxEventType = "order.confirmed"
	OutboxEventTypePayoutRecorded     OutboxEventType = "payout.recorded"
	OutboxEventTypeNotificationQueued OutboxEventType = "notification.queued"
)

var validOutboxEventTypes = []OutboxEventType{
	OutboxEventTypeOrderConfirmed,
	OutboxEventTypePayoutRecorded,
	OutboxEventTypeNotificationQueued,
}

func (t OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateTypeOrder        OutboxAggregateType = "order"
	OutboxAggregateTypeNotification OutboxAggregateType = "notification"
)

func (t OutboxAggregateType) IsValid() bool {
	return t == OutboxAggregateTypeOrder || t == OutboxAggregateTypeNotification
}
