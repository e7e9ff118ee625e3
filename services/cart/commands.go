package cart

import (
	"context"

	"github.com/arcuswear/storefront/lib/mylog"
)

// None of the cart mutations can fail from the shopper's perspective: the new
// state is computed in memory first and persistence is a best-effort
// write-through. A broken storage backend is logged and the session continues
// on in-memory state.

func (s *service) getCart(c context.Context, sessionUID string) Cart {
	current, found, err := s.cartStore.Get(c, sessionUID)
	if err != nil {
		// fail open: unreadable persisted state means an empty cart, never an error
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error restoring cart of session %s, starting empty: %s", sessionUID, err)
		return newCart(sessionUID, s.nower.Now())
	}
	if !found {
		return newCart(sessionUID, s.nower.Now())
	}

	return current
}

func (s *service) addItem(c context.Context, sessionUID string, item LineItem) Cart {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Add variant %s to cart of session %s", item.VariantUID, sessionUID)

	return s.persist(c, s.getCart(c, sessionUID).Add(item))
}

func (s *service) updateQuantity(c context.Context, sessionUID string, variantUID string, quantity int) Cart {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Set quantity of variant %s to %d for session %s", variantUID, quantity, sessionUID)

	return s.persist(c, s.getCart(c, sessionUID).WithQuantity(variantUID, quantity))
}

func (s *service) removeItem(c context.Context, sessionUID string, variantUID string) Cart {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Remove variant %s from cart of session %s", variantUID, sessionUID)

	return s.persist(c, s.getCart(c, sessionUID).Remove(variantUID))
}

func (s *service) clear(c context.Context, sessionUID string) Cart {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Clear cart of session %s", sessionUID)

	err := s.cartStore.Delete(c, sessionUID)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error erasing persisted cart of session %s: %s", sessionUID, err)
	}

	return newCart(sessionUID, s.nower.Now()).Cleared()
}

func (s *service) persist(c context.Context, cart Cart) Cart {
	now := s.nower.Now()
	cart.LastModified = &now

	err := s.cartStore.Put(c, cart.SessionUID, cart)
	if err != nil {
		s.logger.Log(c, cart.SessionUID, mylog.SeverityWarn, "Error persisting cart of session %s, continuing in-memory: %s", cart.SessionUID, err)
	}

	return cart
}
