package checkoutstripe

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v74"

	"github.com/arcuswear/storefront/services/cart"
)

// Stripe wants amounts in minor units and has no notion of our bundle promo,
// so the discount is baked into the line items: one unit of each designated
// tee carries half of it, remaining units stay at full price.

const currency = "eur"

func sessionParams(sessionUID string, shopperCart cart.Cart, hostname string) stripe.CheckoutSessionParams {
	receipt := shopperCart.MakeReceipt()
	discountCents := toCents(receipt.BundleDiscount)

	lines := make([]*stripe.CheckoutSessionLineItemParams, 0, len(shopperCart.Items))
	for _, item := range shopperCart.Items {
		unitCents := toCents(item.Price)

		if discountCents > 0 && cart.IsBundleHandle(item.ProductHandle) {
			lines = append(lines, lineItem(item, 1, unitCents-discountCents/2))
			if item.Quantity > 1 {
				lines = append(lines, lineItem(item, item.Quantity-1, unitCents))
			}
			continue
		}

		lines = append(lines, lineItem(item, item.Quantity, unitCents))
	}

	return stripe.CheckoutSessionParams{
		SuccessURL:        stripe.String(hostname + fmt.Sprintf("/stripe/checkout/%s/status/success", sessionUID)),
		CancelURL:         stripe.String(hostname + fmt.Sprintf("/stripe/checkout/%s/status/cancelled", sessionUID)),
		ClientReferenceID: stripe.String(sessionUID),
		LineItems:         lines,
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		Currency:          stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"ideal",
			"card",
		}),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			// correlates the webhook with the shopper's session
			Metadata: map[string]string{
				"sessionUID": sessionUID,
			},
		},
	}
}

func lineItem(item cart.LineItem, quantity int, unitCents int64) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(item.ProductTitle),
				Description: stripe.String(item.VariantTitle),
			},
			UnitAmount: stripe.Int64(unitCents),
		},
		Quantity: stripe.Int64(int64(quantity)),
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
