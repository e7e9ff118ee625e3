package cart

import (
	"time"

	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mypubsub"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
)

type service struct {
	cartStore  mystore.Store[Cart]
	subscriber mypubsub.PubSub
	nower      mytime.Nower
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Cart], subscriber mypubsub.PubSub, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cartStore:  store,
		subscriber: subscriber,
		nower:      nower,
		logger:     logger,
	}
}

func newCart(sessionUID string, createdAt time.Time) Cart {
	return Cart{
		SessionUID: sessionUID,
		Items:      []LineItem{},
		CreatedAt:  createdAt,
	}
}
