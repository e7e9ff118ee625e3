package cart

import (
	"context"
	"fmt"

	"github.com/arcuswear/storefront/lib/myhttp"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/services/checkoutevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	return nil
}

// OnCheckoutCompleted clears the session's cart once the external platform
// reports a successful order. The cart does not verify payment itself.
func (s *service) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	s.logger.Log(c, event.CheckoutUID, mylog.SeverityInfo, "Webhook: checkout of session %s completed with status %s", event.CheckoutUID, event.Status)

	if !event.Success() {
		return nil
	}

	// must be idempotent: clearing an already cleared cart is a no-op
	s.clear(c, event.CheckoutUID)

	return nil
}
