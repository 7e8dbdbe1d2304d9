package enums

import "fmt"

// PayoutStatus tracks per-recipient payout progress on an order.
type PayoutStatus string

const (
	PayoutStatusUnallocated PayoutStatus = "unallocated"
	PayoutStatusPending     PayoutStatus = "pending"
	PayoutStatusCompleted   PayoutStatus = "completed"
)

var validPayoutStatuses = []PayoutStatus{
	PayoutStatusUnallocated,
	PayoutStatusPending,
	PayoutStatusCompleted,
}

func (p PayoutStatus) String() string {
	return string(p)
}

func (p PayoutStatus) IsValid() bool {
	for _, candidate := range validPayoutStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParsePayoutStatus(value string) (PayoutStatus, error) {
	for _, candidate := range validPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payout status %q", value)
}
