package representer

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcuswear/storefront/lib/mycontext"
	"github.com/arcuswear/storefront/lib/myerrors"
	"github.com/arcuswear/storefront/lib/myhttp"
	"github.com/arcuswear/storefront/lib/mylog"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/lib/myuuid"
)

const sessionCookieName = "arcus_representer_session"

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(masterCode string, codeStore mystore.Store[AccessCode], sessionStore mystore.Store[Session], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("representer")

	return &webService{
		logger:  logger,
		service: newService(masterCode, codeStore, sessionStore, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/representer/login", s.loginPage()).Methods("POST")
	router.HandleFunc("/representer/logout", s.logoutPage()).Methods("POST")
	router.HandleFunc("/representer/codes", s.createCodePage()).Methods("POST")

	return nil
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		session, err := s.service.login(c, r.Form.Get("code"))
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    session.UID,
			Path:     "/representer",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "logged in",
		})
	}
}

func (s *webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			s.service.logout(c, cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/representer",
			MaxAge:   -1,
			HttpOnly: true,
		})

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "logged out",
		})
	}
}

func (s *webService) createCodePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessionUID := ""
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessionUID = cookie.Value
		}

		err := s.service.authorize(c, sessionUID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		accessCode, err := s.service.createCode(c)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, accessCode)
	}
}
