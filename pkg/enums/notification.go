package enums

import "fmt"

// NotificationKind distinguishes the templated messages queued for dispatch.
type NotificationKind string

const (
	NotificationKindPaymentReceived NotificationKind = "payment_received"
	NotificationKindOrderConfirmed  NotificationKind = "order_confirmed"
	NotificationKindRunnerAssigned  NotificationKind = "runner_assigned"
)

var validNotificationKinds = []NotificationKind{
	NotificationKindPaymentReceived,
	NotificationKindOrderConfirmed,
	NotificationKindRunnerAssigned,
}

func (k NotificationKind) String() string {
	return string(k)
}

func (k NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}
