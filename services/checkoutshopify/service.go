package checkoutshopify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/checkoutevents"
	"github.com/arcuswear/storefront/services/shopify"
)

const providerName = "shopify"

type service struct {
	client        shopify.Client
	cartStore     mystore.Store[cart.Cart]
	checkoutStore mystore.Store[CheckoutContext]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client shopify.Client, cartStore mystore.Store[cart.Cart], checkoutStore mystore.Store[CheckoutContext], publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		client:        client,
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

// startCheckout turns the stored cart into a platform-side cart and hands back
// the hosted checkout page. The shopper is sent back to returnURL afterwards.
func (s *service) startCheckout(c context.Context, sessionUID string, returnURL string) (CheckoutContext, error) {
	shopperCart, found, err := s.cartStore.Get(c, sessionUID)
	if err != nil {
		return CheckoutContext{}, myerrors.NewInternalError(fmt.Errorf("error fetching cart of session %s: %s", sessionUID, err))
	}
	if !found || shopperCart.IsEmpty() {
		return CheckoutContext{}, myerrors.NewInvalidInputError(fmt.Errorf("cannot create checkout with empty cart"))
	}

	lines := make([]shopify.CartLine, 0, len(shopperCart.Items))
	for _, item := range shopperCart.Items {
		lines = append(lines, shopify.CartLine{
			MerchandiseUID: item.VariantUID,
			Quantity:       item.Quantity,
		})
	}

	created, err := s.client.CreateCart(c, lines)
	if err != nil {
		return CheckoutContext{}, err
	}

	receipt := shopperCart.MakeReceipt()
	checkoutContext := CheckoutContext{
		SessionUID:      sessionUID,
		ProviderName:    providerName,
		PlatformCartUID: created.UID,
		CheckoutURL:     withReturnURL(created.CheckoutURL, returnURL),
		Amount:          receipt.GrandTotal,
		Currency:        created.Cost.TotalAmount.CurrencyCode,
		ItemCount:       shopperCart.ItemCount(),
		CreatedAt:       s.nower.Now(),
	}

	// keep the stored context and the published event atomic
	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := s.checkoutStore.Put(c, sessionUID, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout context of session %s: %s", sessionUID, err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:  sessionUID,
			ProviderName: providerName,
			Amount:       checkoutContext.Amount,
			Currency:     checkoutContext.Currency,
			ItemCount:    checkoutContext.ItemCount,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing start of checkout of session %s: %s", sessionUID, err))
		}

		return nil
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Handed session %s off to hosted checkout %s", sessionUID, created.UID)

	return checkoutContext, nil
}

// finalizeCheckout records the status the shopper came back with and notifies
// interested services. Repeated delivery of the same status is a no-op.
func (s *service) finalizeCheckout(c context.Context, sessionUID string, status checkoutevents.CheckoutStatus) (CheckoutContext, error) {
	checkoutContext, found, err := s.checkoutStore.Get(c, sessionUID)
	if err != nil {
		return CheckoutContext{}, myerrors.NewInternalError(fmt.Errorf("error fetching checkout context of session %s: %s", sessionUID, err))
	}
	if !found {
		return CheckoutContext{}, myerrors.NewNotFoundError(fmt.Errorf("no checkout known for session %s", sessionUID))
	}

	if checkoutContext.Status == status {
		return checkoutContext, nil
	}

	now := s.nower.Now()
	checkoutContext.Status = status
	checkoutContext.FinalizedAt = &now

	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		err := s.checkoutStore.Put(c, sessionUID, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout context of session %s: %s", sessionUID, err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:  sessionUID,
			ProviderName: providerName,
			Status:       status,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing completion of checkout of session %s: %s", sessionUID, err))
		}

		return nil
	})
	if err != nil {
		return CheckoutContext{}, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Checkout of session %s finalized with status %s", sessionUID, status)

	return checkoutContext, nil
}

func withReturnURL(checkoutURL string, returnURL string) string {
	if returnURL == "" {
		return checkoutURL
	}

	parsed, err := url.Parse(checkoutURL)
	if err != nil {
		return checkoutURL
	}

	query := parsed.Query()
	query.Set("return_to", returnURL)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
