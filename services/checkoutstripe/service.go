package checkoutstripe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stripe/stripe-go/v74"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/checkoutevents"
	"github.com/arcuswear/storefront/services/checkoutshopify"
)

const providerName = "stripe"

type service struct {
	payer         Payer
	cartStore     mystore.Store[cart.Cart]
	checkoutStore mystore.Store[checkoutshopify.CheckoutContext]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(apiKey string, payer Payer, cartStore mystore.Store[cart.Cart], checkoutStore mystore.Store[checkoutshopify.CheckoutContext], publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	payer.UseAPIKey(apiKey)

	return &service{
		payer:         payer,
		cartStore:     cartStore,
		checkoutStore: checkoutStore,
		publisher:     publisher,
		nower:         nower,
		logger:        logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

// startCheckout starts a hosted checkout session on the Stripe platform
func (s *service) startCheckout(c context.Context, sessionUID string, returnURL string, hostname string) (string, error) {
	shopperCart, found, err := s.cartStore.Get(c, sessionUID)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error fetching cart of session %s: %s", sessionUID, err))
	}
	if !found || shopperCart.IsEmpty() {
		return "", myerrors.NewInvalidInputError(fmt.Errorf("cannot create checkout with empty cart"))
	}

	session, err := s.payer.CreateCheckoutSession(c, sessionParams(sessionUID, shopperCart, hostname))
	if err != nil {
		return "", err
	}

	receipt := shopperCart.MakeReceipt()
	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := s.checkoutStore.Put(c, sessionUID, checkoutshopify.CheckoutContext{
			SessionUID:        sessionUID,
			ProviderName:      providerName,
			PlatformCartUID:   session.ID,
			CheckoutURL:       session.URL,
			OriginalReturnURL: returnURL,
			Amount:            receipt.GrandTotal,
			Currency:          string(session.Currency),
			ItemCount:         shopperCart.ItemCount(),
			CreatedAt:         s.nower.Now(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout context of session %s: %s", sessionUID, err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:  sessionUID,
			ProviderName: providerName,
			Amount:       receipt.GrandTotal,
			Currency:     string(session.Currency),
			ItemCount:    shopperCart.ItemCount(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing start of checkout of session %s: %s", sessionUID, err))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Handed session %s off to stripe checkout %s", sessionUID, session.ID)

	return session.URL, nil
}

// finalizeCheckout handles the shopper coming back from the hosted page. The
// status here is only what the redirect claims; the webhook is authoritative.
func (s *service) finalizeCheckout(c context.Context, sessionUID string, status string) (string, error) {
	now := s.nower.Now()

	adjustedReturnURL := ""
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		checkoutContext, found, err := s.checkoutStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout context of session %s: %s", sessionUID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("no checkout known for session %s", sessionUID))
		}

		checkoutContext.Status = checkoutevents.CheckoutStatus(status)
		checkoutContext.FinalizedAt = &now

		err = s.checkoutStore.Put(c, sessionUID, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		adjustedReturnURL, err = addStatusQueryParam(checkoutContext.OriginalReturnURL, status)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Shopper returned from stripe checkout of session %s with status %s", sessionUID, status)

	return adjustedReturnURL, nil
}

// webhookNotification processes the server-to-server event stream from Stripe.
func (s *service) webhookNotification(c context.Context, event stripe.Event) error {
	sessionUID := eventMetadata(event, "sessionUID")
	if sessionUID == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("event %s lacks a sessionUID", event.Type))
	}

	status := statusFromEventType(event.Type)
	if status == checkoutevents.CheckoutStatusUndefined {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Ignoring stripe event %s for session %s", event.Type, sessionUID)
		return nil
	}

	now := s.nower.Now()
	return s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		checkoutContext, found, err := s.checkoutStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout context of session %s: %s", sessionUID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("no checkout known for session %s", sessionUID))
		}

		checkoutContext.Status = status
		checkoutContext.FinalizedAt = &now

		err = s.checkoutStore.Put(c, sessionUID, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:   sessionUID,
			ProviderName:  providerName,
			PaymentMethod: paymentMethod(event),
			Status:        status,
			StatusDetails: string(event.Type),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing completion of checkout of session %s: %s", sessionUID, err))
		}

		return nil
	})
}

func statusFromEventType(eventType string) checkoutevents.CheckoutStatus {
	switch eventType {
	case "payment_intent.succeeded", "checkout.session.completed":
		return checkoutevents.CheckoutStatusSuccess
	case "payment_intent.payment_failed":
		return checkoutevents.CheckoutStatusFailed
	case "checkout.session.expired":
		return checkoutevents.CheckoutStatusCancelled
	default:
		return checkoutevents.CheckoutStatusUndefined
	}
}

func eventMetadata(event stripe.Event, key string) string {
	metadata, ok := event.Data.Object["metadata"].(map[string]interface{})
	if !ok {
		return ""
	}
	value, _ := metadata[key].(string)
	return value
}

func paymentMethod(event stripe.Event) string {
	methods, ok := event.Data.Object["payment_method_types"].([]interface{})
	if !ok || len(methods) == 0 {
		return ""
	}
	method, _ := methods[0].(string)
	return method
}

func addStatusQueryParam(orgURL string, status string) (string, error) {
	u, err := url.Parse(orgURL)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error parsing return URL %s: %s", orgURL, err))
	}
	params := u.Query()
	params.Set("status", status)
	u.RawQuery = params.Encode()
	return u.String(), nil
}
