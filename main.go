package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arcuswear/storefront/lib/mypublisher"
	"github.com/arcuswear/storefront/lib/mypubsub"
	"github.com/arcuswear/storefront/lib/myqueue"
	"github.com/arcuswear/storefront/lib/mystore"
	"github.com/arcuswear/storefront/lib/mytime"
	"github.com/arcuswear/storefront/lib/myuuid"
	"github.com/arcuswear/storefront/services/cart"
	"github.com/arcuswear/storefront/services/catalog"
	"github.com/arcuswear/storefront/services/checkoutshopify"
	"github.com/arcuswear/storefront/services/checkoutstripe"
	"github.com/arcuswear/storefront/services/representer"
	"github.com/arcuswear/storefront/services/shopify"
	"github.com/arcuswear/storefront/services/waitlist"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	shopifyClient := shopify.NewClient(
		os.Getenv("SHOPIFY_STORE_DOMAIN"),
		os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN"))

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	cartService := cart.NewService(cartStore, nower, uuider, pubsub)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart service: %s", err)
	}

	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	catalogService := catalog.NewService(shopifyClient, productStore)
	err = catalogService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering catalog service: %s", err)
	}

	checkoutStore, checkoutStoreCleanup, err := mystore.New[checkoutshopify.CheckoutContext](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer checkoutStoreCleanup()

	checkoutService := checkoutshopify.NewService(shopifyClient, cartStore, checkoutStore, publisher, nower)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering shopify checkout service: %s", err)
	}

	stripeService := checkoutstripe.NewWebService(
		os.Getenv("STRIPE_API_KEY"),
		checkoutstripe.NewPayer(),
		cartStore, checkoutStore, publisher, nower)
	err = stripeService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering stripe checkout service: %s", err)
	}

	entryStore, entryStoreCleanup, err := mystore.New[waitlist.Entry](c)
	if err != nil {
		log.Fatalf("Error creating waitlist store: %s", err)
	}
	defer entryStoreCleanup()

	waitlistService := waitlist.NewService(entryStore, waitlist.NewEmailer(smtpConfigFromEnv()), nower)
	err = waitlistService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering waitlist service: %s", err)
	}

	codeStore, codeStoreCleanup, err := mystore.New[representer.AccessCode](c)
	if err != nil {
		log.Fatalf("Error creating access-code store: %s", err)
	}
	defer codeStoreCleanup()

	sessionStore, sessionStoreCleanup, err := mystore.New[representer.Session](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	representerService := representer.NewService(os.Getenv("REPRESENTER_ACCESS_CODE"), codeStore, sessionStore, nower, uuider)
	err = representerService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering representer service: %s", err)
	}

	startWebServerBlocking(router)
}

func smtpConfigFromEnv() waitlist.SMTPConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return waitlist.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   os.Getenv("SMTP_SENDER"),
	}
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
