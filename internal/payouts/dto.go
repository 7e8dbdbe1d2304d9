package payouts

import (
	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// AllocateInput identifies the settled charge to allocate. The breakdown is
// supplied by the caller (webhook metadata or the manual reconciliation
// endpoint) and is trusted as checked at intent-creation time.
type AllocateInput struct {
	PaymentIntentID string
	MerchantID      uuid.UUID
	Breakdown       types.Breakdown
}

// PayoutShare is one recipient's slice of the allocation.
type PayoutShare struct {
	AmountCents int64                   `json:"amount_cents"`
	Status      enums.TransactionStatus `json:"status"`
}

// AllocateResult reports the recorded three-way split.
type AllocateResult struct {
	OrderID          uuid.UUID   `json:"order_id"`
	AlreadyAllocated bool        `json:"already_allocated"`
	Merchant         PayoutShare `json:"merchant"`
	Driver           PayoutShare `json:"driver"`
	House            PayoutShare `json:"house"`
}
