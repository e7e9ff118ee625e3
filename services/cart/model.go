package cart

import "time"

// LineItem is one product variant plus the number of units the shopper wants.
// All descriptive fields are opaque pass-throughs from the commerce platform.
type LineItem struct {
	VariantUID    string  `json:"variantId"`
	ProductUID    string  `json:"productId"`
	ProductHandle string  `json:"productHandle"`
	ProductTitle  string  `json:"productTitle"`
	VariantTitle  string  `json:"variantTitle"`
	Size          string  `json:"size"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"image"`
}

func (i LineItem) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the full set of line items for one shopper session. Items are unique
// by VariantUID; insertion order is preserved for display only.
type Cart struct {
	SessionUID   string     `json:"sessionId"`
	Items        []LineItem `json:"items"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// The transitions below are pure: they return a new Cart and never touch
// storage, so they can be tested without any backend.

// Add merges by VariantUID: an existing line item gets one more unit, a new
// variant is appended with quantity 1. The Quantity field on the argument is ignored.
func (c Cart) Add(item LineItem) Cart {
	next := c.copyItems()

	for i := range next.Items {
		if next.Items[i].VariantUID == item.VariantUID {
			next.Items[i].Quantity++
			return next
		}
	}

	item.Quantity = 1
	next.Items = append(next.Items, item)

	return next
}

// Remove deletes the line item with the given key; removing an absent variant is a no-op.
func (c Cart) Remove(variantUID string) Cart {
	next := c
	next.Items = make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.VariantUID != variantUID {
			next.Items = append(next.Items, item)
		}
	}

	return next
}

// WithQuantity sets the quantity of the given variant to an absolute value.
// A quantity of zero or less deletes the line item: a zero-quantity line item must never exist.
func (c Cart) WithQuantity(variantUID string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(variantUID)
	}

	next := c.copyItems()
	for i := range next.Items {
		if next.Items[i].VariantUID == variantUID {
			next.Items[i].Quantity = quantity
			break
		}
	}

	return next
}

func (c Cart) Cleared() Cart {
	next := c
	next.Items = []LineItem{}
	return next
}

// Total is the sum over all line items of price times quantity. No rounding is
// applied here; formatting is up to the display layer.
func (c Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.TotalPrice()
	}
	return total
}

// ItemCount is the total number of units, not the number of distinct variants.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) Contains(variantUID string) bool {
	for _, item := range c.Items {
		if item.VariantUID == variantUID {
			return true
		}
	}
	return false
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) copyItems() Cart {
	next := c
	next.Items = make([]LineItem, len(c.Items))
	copy(next.Items, c.Items)
	return next
}
