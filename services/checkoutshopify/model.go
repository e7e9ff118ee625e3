package checkoutshopify

import (
	"time"

	"github.com/arcuswear/storefront/services/checkoutevents"
)

// CheckoutContext records a single hand-off to the hosted Shopify checkout.
// Keyed by the shopper's session uid so the final status can be correlated
// back to the cart that started it.
type CheckoutContext struct {
	SessionUID        string
	ProviderName      string
	PlatformCartUID   string
	CheckoutURL       string
	OriginalReturnURL string
	Amount            float64
	Currency          string
	ItemCount         int
	CreatedAt         time.Time
	FinalizedAt       *time.Time
	Status            checkoutevents.CheckoutStatus
}
