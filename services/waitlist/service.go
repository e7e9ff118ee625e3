package waitlist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
)

const defaultSource = "landing_page"

type service struct {
	entryStore mystore.Store[Entry]
	emailer    Emailer
	nower      mytime.Nower
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(entryStore mystore.Store[Entry], emailer Emailer, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		entryStore: entryStore,
		emailer:    emailer,
		nower:      nower,
		logger:     logger,
	}
}

func (s *service) join(c context.Context, email string, source string) error {
	normalized := normalizeEmail(email)
	if normalized == "" || !strings.Contains(normalized, "@") {
		return myerrors.NewInvalidInputError(fmt.Errorf("please provide a valid email address"))
	}
	if source == "" {
		source = defaultSource
	}

	err := s.entryStore.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.entryStore.Get(c, normalized)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error checking waitlist for %s: %s", normalized, err))
		}
		if exists {
			return myerrors.NewInvalidInputError(fmt.Errorf("you're already on the waitlist with this email"))
		}

		err = s.entryStore.Put(c, normalized, Entry{
			Email:     normalized,
			Source:    source,
			CreatedAt: s.nower.Now(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing waitlist entry for %s: %s", normalized, err))
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Log(c, normalized, mylog.SeverityInfo, "Added %s to the waitlist", normalized)

	// fire and forget: a broken mail setup must never cost us a signup
	go s.sendWelcome(normalized)

	return nil
}

func (s *service) sendWelcome(email string) {
	c := context.Background()

	err := s.emailer.Send(c, email, welcomeSubject, welcomeHTML, welcomeText)
	if err != nil {
		s.logger.Log(c, email, mylog.SeverityWarn, "Error sending welcome email to %s: %s", email, err)
		return
	}

	s.logger.Log(c, email, mylog.SeverityInfo, "Welcome email sent to %s", email)
}

func (s *service) list(c context.Context) ([]Entry, error) {
	entries, err := s.entryStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching waitlist entries: %s", err))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}
