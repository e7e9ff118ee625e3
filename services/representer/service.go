package representer

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/lib/myuuid"
)

type service struct {
	masterCode   string
	codeStore    mystore.Store[AccessCode]
	sessionStore mystore.Store[Session]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(masterCode string, codeStore mystore.Store[AccessCode], sessionStore mystore.Store[Session], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		masterCode:   masterCode,
		codeStore:    codeStore,
		sessionStore: sessionStore,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

// login accepts the shared master code or an unused one-time code. A one-time
// code is burned atomically so two logins can never share it.
func (s *service) login(c context.Context, code string) (Session, error) {
	if code == "" {
		return Session{}, myerrors.NewInvalidInputError(fmt.Errorf("missing access code"))
	}

	if s.masterCode != "" && subtle.ConstantTimeCompare([]byte(code), []byte(s.masterCode)) == 1 {
		s.logger.Log(c, "", mylog.SeverityInfo, "Representer logged in with master code")
		return s.createSession(c)
	}

	err := s.codeStore.RunInTransaction(c, func(c context.Context) error {
		accessCode, found, err := s.codeStore.Get(c, code)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching access code: %s", err))
		}
		if !found || accessCode.Used {
			return myerrors.NewAuthenticationError(fmt.Errorf("invalid or already used code"))
		}

		now := s.nower.Now()
		accessCode.Used = true
		accessCode.UsedAt = &now

		err = s.codeStore.Put(c, code, accessCode)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error marking access code as used: %s", err))
		}

		return nil
	})
	if err != nil {
		return Session{}, err
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Representer logged in with one-time code")

	return s.createSession(c)
}

func (s *service) createSession(c context.Context) (Session, error) {
	session := Session{
		UID:       s.uuider.Create(),
		CreatedAt: s.nower.Now(),
	}

	err := s.sessionStore.Put(c, session.UID, session)
	if err != nil {
		return Session{}, myerrors.NewInternalError(fmt.Errorf("error storing session: %s", err))
	}

	return session, nil
}

func (s *service) logout(c context.Context, sessionUID string) {
	err := s.sessionStore.Delete(c, sessionUID)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error removing session %s: %s", sessionUID, err)
	}
}

// authorize verifies the session cookie belongs to a logged-in representer.
func (s *service) authorize(c context.Context, sessionUID string) error {
	if sessionUID == "" {
		return myerrors.NewAuthenticationError(fmt.Errorf("not logged in"))
	}

	_, found, err := s.sessionStore.Get(c, sessionUID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session %s: %s", sessionUID, err))
	}
	if !found {
		return myerrors.NewAuthenticationError(fmt.Errorf("not logged in"))
	}

	return nil
}

// createCode mints a fresh one-time code for handing out to a representer.
func (s *service) createCode(c context.Context) (AccessCode, error) {
	accessCode := AccessCode{
		Code:      s.uuider.Create(),
		CreatedAt: s.nower.Now(),
	}

	err := s.codeStore.Put(c, accessCode.Code, accessCode)
	if err != nil {
		return AccessCode{}, myerrors.NewInternalError(fmt.Errorf("error storing access code: %s", err))
	}

	return accessCode, nil
}
