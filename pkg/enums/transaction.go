package enums

import "fmt"

// TransactionType classifies a ledger row by the share of the order total it
// represents.
type TransactionType string

const (
	TransactionTypeOrderPayment TransactionType = "order_payment"
	TransactionTypeDeliveryFee  TransactionType = "delivery_fee"
	TransactionTypeServiceFee   TransactionType = "service_fee"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeOrderPayment,
	TransactionTypeDeliveryFee,
	TransactionTypeServiceFee,
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}

// TransactionStatus mirrors whether the funds behind a ledger row have been
// released. pending_delivery rows are earmarked and wait for an external
// delivery-completion trigger.
type TransactionStatus string

const (
	TransactionStatusCompleted       TransactionStatus = "completed"
	TransactionStatusPendingDelivery TransactionStatus = "pending_delivery"
)

var validTransactionStatuses = []TransactionStatus{
	TransactionStatusCompleted,
	TransactionStatusPendingDelivery,
}

func (t TransactionStatus) String() string {
	return string(t)
}

func (t TransactionStatus) IsValid() bool {
	for _, candidate := range validTransactionStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// RecipientType identifies which party a ledger row credits.
type RecipientType string

const (
	RecipientTypeMerchant RecipientType = "merchant"
	RecipientTypeDriver   RecipientType = "driver"
	RecipientTypeHouse    RecipientType = "house"
)

var validRecipientTypes = []RecipientType{
	RecipientTypeMerchant,
	RecipientTypeDriver,
	RecipientTypeHouse,
}

func (r RecipientType) String() string {
	return string(r)
}

func (r RecipientType) IsValid() bool {
	for _, candidate := range validRecipientTypes {
		if candidate == r {
			return true
		}
	}
	return false
}
