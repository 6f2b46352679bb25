package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutform/lib/myhttpclient"
	"github.com/MarcGrol/checkoutform/lib/mypubsub"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
	"github.com/MarcGrol/checkoutform/services/checkoutapi"
	"github.com/MarcGrol/checkoutform/services/paymentform"
)

func main() {
	c := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	cartStore, cartStoreCleanup, err := mystore.New[cartmodel.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	cartService := cart.NewWebService(cartStore, nower, uuider)
	cartService.RegisterEndpoints(c, router)

	formStore, formStoreCleanup, err := mystore.New[paymentform.FormState](c)
	if err != nil {
		log.Fatalf("Error creating checkout form store: %s", err)
	}
	defer formStoreCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	var submitter checkoutapi.Submitter = checkoutapi.NewClient(myhttpclient.New(cfg.CheckoutTimeout), cfg.CheckoutEndpointURL)
	if cfg.CheckoutEndpointURL == checkoutapi.FakeEndpointURL {
		log.Printf("Using in-process fake checkout service")
		submitter = checkoutapi.NewFakeCheckoutService()
	}

	formService := paymentform.NewWebService(
		paymentform.Config{
			PublishableKey: cfg.StripePublishableKey,
			SuccessAlert:   cfg.SuccessAlert,
		},
		formStore,
		cartService,
		paymentform.NewStripeTokenizer(cfg.StripeAPIKey),
		submitter,
		nower,
		uuider,
		paymentform.NewPubSubNotifier(pubsub, nower, uuider, cfg.PaymentTopic),
	)
	formService.RegisterEndpoints(c, router)

	startWebServerBlocking(cfg.Port, router)
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
