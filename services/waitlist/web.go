package waitlist

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
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(entryStore mystore.Store[Entry], emailer Emailer, nower mytime.Nower) *webService {
	logger := mylog.New("waitlist")

	return &webService{
		logger:  logger,
		service: newService(entryStore, emailer, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/waitlist", s.joinPage()).Methods("POST")
	router.HandleFunc("/api/waitlist", s.listPage()).Methods("GET")

	return nil
}

// WaitlistResponse is what the signup admin view reads.
type WaitlistResponse struct {
	Count   int     `json:"count"`
	Entries []Entry `json:"entries"`
}

func (s *webService) joinPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		err = s.service.join(c, r.Form.Get("email"), r.Form.Get("source"))
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "you're on the list",
		})
	}
}

func (s *webService) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		entries, err := s.service.list(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, WaitlistResponse{
			Count:   len(entries),
			Entries: entries,
		})
	}
}
