package waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
)

func TestWaitlistService(t *testing.T) {

	t.Run("Join waitlist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, emailer, nower := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		emailSent := make(chan struct{})
		emailer.EXPECT().Send(gomock.Any(), "shopper@example.com", welcomeSubject, welcomeHTML, welcomeText).
			DoAndReturn(func(c context.Context, recipient, subject, htmlBody, textBody string) error {
				close(emailSent)
				return nil
			})

		// when
		response := doJoin(router, "Shopper@Example.com")

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		entry, exists, _ := storer.Get(c, "shopper@example.com")
		assert.True(t, exists)
		assert.Equal(t, "shopper@example.com", entry.Email)
		assert.Equal(t, "landing_page", entry.Source)

		select {
		case <-emailSent:
		case <-time.After(time.Second):
			t.Fatal("welcome email was never sent")
		}
	})

	t.Run("Join waitlist twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, _, _ := setup(t, ctrl)

		// given
		storer.Put(c, "shopper@example.com", Entry{
			Email:     "shopper@example.com",
			Source:    "landing_page",
			CreatedAt: mytime.ExampleTime,
		})

		// when
		response := doJoin(router, "shopper@example.com")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "already on the waitlist")
	})

	t.Run("Join waitlist without email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doJoin(router, "   ")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "valid email")
	})

	t.Run("List waitlist entries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, _, _ := setup(t, ctrl)

		// given
		storer.Put(c, "a@example.com", Entry{Email: "a@example.com", Source: "landing_page", CreatedAt: mytime.ExampleTime})
		storer.Put(c, "b@example.com", Entry{Email: "b@example.com", Source: "landing_page", CreatedAt: mytime.ExampleTime.Add(time.Minute)})

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/waitlist", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `"count": 2`)
		assert.Contains(t, response.Body.String(), "a@example.com")
		assert.Contains(t, response.Body.String(), "b@example.com")
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[Entry], *MockEmailer, *mytime.MockNower) {
	c := context.TODO()
	router := mux.NewRouter()
	storer, _, _ := mystore.NewInMemoryStore[Entry](c)
	emailer := NewMockEmailer(ctrl)
	nower := mytime.NewMockNower(ctrl)

	sut := NewService(storer, emailer, nower)
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, emailer, nower
}

func doJoin(router *mux.Router, email string) *httptest.ResponseRecorder {
	form := url.Values{"email": []string{email}}

	request, _ := http.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}
