package shopify

import (
	"context"
)

// Client talks to the Shopify Storefront GraphQL API. All methods return the
// platform's own shapes; translating them into our domain is up to the caller.
type Client interface {
	FetchProducts(c context.Context, first int) ([]Product, error)
	FetchProductByHandle(c context.Context, handle string) (*Product, error)
	FetchVariant(c context.Context, variantUID string) (*Variant, error)
	CreateCart(c context.Context, lines []CartLine) (CreatedCart, error)
}

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	UID     string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	UID               string           `json:"id"`
	Title             string           `json:"title"`
	Price             Money            `json:"price"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
}

type Product struct {
	UID         string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	PriceRange  struct {
		MinVariantPrice Money `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images   Connection[Image]   `json:"images"`
	Variants Connection[Variant] `json:"variants"`
}

// Connection is the GraphQL edges/node pagination wrapper.
type Connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func NewConnection[T any](nodes ...T) Connection[T] {
	connection := Connection[T]{}
	for _, node := range nodes {
		connection.Edges = append(connection.Edges, struct {
			Node T `json:"node"`
		}{Node: node})
	}
	return connection
}

func (c Connection[T]) Nodes() []T {
	nodes := make([]T, 0, len(c.Edges))
	for _, edge := range c.Edges {
		nodes = append(nodes, edge.Node)
	}
	return nodes
}

// CartLine is one line of a cartCreate mutation: a variant gid plus a quantity.
type CartLine struct {
	MerchandiseUID string `json:"merchandiseId"`
	Quantity       int    `json:"quantity"`
}

// CreatedCart is what cartCreate returns: the platform-side cart with the
// hosted checkout page to hand the shopper off to.
type CreatedCart struct {
	UID           string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		TotalAmount Money `json:"totalAmount"`
	} `json:"cost"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
