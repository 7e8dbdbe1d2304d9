package payments

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// Stripe metadata is an opaque string map; these keys define the typed schema
// we serialize through it. The version key lets a future compaction change
// the layout without breaking in-flight intents.
const (
	metaVersionKey = "schema_version"
	metaVersion    = "1"

	metaOrderID     = "order_id"
	metaCustomerID  = "customer_id"
	metaMerchantID  = "merchant_id"
	metaStoreID     = "store_id"
	metaSubtotal    = "subtotal"
	metaDeliveryFee = "delivery_fee"
	metaServiceFee  = "service_fee"
	metaTax         = "tax"

	metaCustomerName    = "customer_name"
	metaCustomerEmail   = "customer_email"
	metaCustomerPhone   = "customer_phone"
	metaDeliveryAddress = "delivery_address"
	metaOrderType       = "order_type"
)

// IntentMetadata is the typed view of the metadata carried on an intent.
type IntentMetadata struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	MerchantID uuid.UUID
	StoreID    *uuid.UUID
	Breakdown  types.Breakdown
	Customer   CustomerMetadata
}

// EncodeMetadata flattens the typed metadata into Stripe's string map.
func EncodeMetadata(meta IntentMetadata) map[string]string {
	out := map[string]string{
		metaVersionKey:  metaVersion,
		metaOrderID:     meta.OrderID.String(),
		metaCustomerID:  meta.CustomerID.String(),
		metaMerchantID:  meta.MerchantID.String(),
		metaSubtotal:    meta.Breakdown.Subtotal.String(),
		metaDeliveryFee: meta.Breakdown.DeliveryFee.String(),
		metaServiceFee:  meta.Breakdown.ServiceFee.String(),
		metaTax:         meta.Breakdown.Tax.String(),
	}
	if meta.StoreID != nil {
		out[metaStoreID] = meta.StoreID.String()
	}
	if meta.Customer.CustomerName != "" {
		out[metaCustomerName] = meta.Customer.CustomerName
	}
	if meta.Customer.CustomerEmail != "" {
		out[metaCustomerEmail] = meta.Customer.CustomerEmail
	}
	if meta.Customer.CustomerPhone != "" {
		out[metaCustomerPhone] = meta.Customer.CustomerPhone
	}
	if meta.Customer.DeliveryAddress != "" {
		out[metaDeliveryAddress] = meta.Customer.DeliveryAddress
	}
	if meta.Customer.OrderType != "" {
		out[metaOrderType] = meta.Customer.OrderType
	}
	return out
}

// DecodeMetadata parses the string map back into the typed view. Webhook
// handlers rely on this to reconstruct the breakdown for payout allocation.
func DecodeMetadata(raw map[string]string) (*IntentMetadata, error) {
	if raw == nil {
		return nil, fmt.Errorf("metadata is empty")
	}
	if v := raw[metaVersionKey]; v != metaVersion {
		return nil, fmt.Errorf("unsupported metadata schema version %q", v)
	}

	orderID, err := uuid.Parse(raw[metaOrderID])
	if err != nil {
		return nil, fmt.Errorf("invalid order_id: %w", err)
	}
	customerID, err := uuid.Parse(raw[metaCustomerID])
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	merchantID, err := uuid.Parse(raw[metaMerchantID])
	if err != nil {
		return nil, fmt.Errorf("invalid merchant_id: %w", err)
	}

	meta := &IntentMetadata{
		OrderID:    orderID,
		CustomerID: customerID,
		MerchantID: merchantID,
		Customer: CustomerMetadata{
			CustomerName:    raw[metaCustomerName],
			CustomerEmail:   raw[metaCustomerEmail],
			CustomerPhone:   raw[metaCustomerPhone],
			DeliveryAddress: raw[metaDeliveryAddress],
			OrderType:       raw[metaOrderType],
		},
	}

	if value, ok := raw[metaStoreID]; ok && value != "" {
		storeID, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid store_id: %w", err)
		}
		meta.StoreID = &storeID
	}

	for key, target := range map[string]*decimal.Decimal{
		metaSubtotal:    &meta.Breakdown.Subtotal,
		metaDeliveryFee: &meta.Breakdown.DeliveryFee,
		metaServiceFee:  &meta.Breakdown.ServiceFee,
		metaTax:         &meta.Breakdown.Tax,
	} {
		parsed, err := decimal.NewFromString(raw[key])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		*target = parsed
	}

	return meta, nil
}
