package cart

// Single hard-coded promotion: buying the two designated tees together takes a
// flat amount off the subtotal. Not a discount engine: no stacking, no
// percentages, no expiry.
const (
	bundleHandleArcusTee    = "arcus-tee"
	bundleHandleAllPathsTee = "all-paths-tee"
	bundleDiscountAmount    = 2.00
)

// Receipt is the priced view of a cart as presented at the checkout boundary.
type Receipt struct {
	Subtotal       float64 `json:"subtotal"`
	BundleDiscount float64 `json:"bundleDiscount"`
	GrandTotal     float64 `json:"grandTotal"`
}

func (c Cart) MakeReceipt() Receipt {
	subtotal := c.Total()

	discount := 0.0
	if c.qualifiesForBundle() {
		discount = bundleDiscountAmount
	}

	return Receipt{
		Subtotal:       subtotal,
		BundleDiscount: discount,
		GrandTotal:     subtotal - discount,
	}
}

// IsBundleHandle reports whether a product participates in the bundle, so
// payment integrations can attach the discount to the right lines.
func IsBundleHandle(productHandle string) bool {
	return productHandle == bundleHandleArcusTee || productHandle == bundleHandleAllPathsTee
}

func (c Cart) qualifiesForBundle() bool {
	return c.containsHandle(bundleHandleArcusTee) && c.containsHandle(bundleHandleAllPathsTee)
}

func (c Cart) containsHandle(productHandle string) bool {
	for _, item := range c.Items {
		if item.ProductHandle == productHandle {
			return true
		}
	}
	return false
}
