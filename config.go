package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/MarcGrol/checkoutform/services/checkoutapi"
	"github.com/MarcGrol/checkoutform/services/paymentform/paymentevents"
)

type config struct {
	Port                 string
	StripeAPIKey         string
	StripePublishableKey string
	CheckoutEndpointURL  string
	CheckoutTimeout      time.Duration
	SuccessAlert         bool
	PaymentTopic         string
}

// loadConfig reads the environment, optionally seeded from a .env file in the working directory.
// GOOGLE_CLOUD_PROJECT is read by the logging and pubsub packages at init-time, so it must come from the real environment.
func loadConfig() (config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found, using environment variables")
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (config, error) {
	cfg := config{
		Port:                 getenv("PORT"),
		StripeAPIKey:         getenv("STRIPE_API_KEY"),
		StripePublishableKey: getenv("STRIPE_PUBLISHABLE_KEY"),
		CheckoutEndpointURL:  getenv("CHECKOUT_ENDPOINT_URL"),
		CheckoutTimeout:      5 * time.Second,
		SuccessAlert:         true,
		PaymentTopic:         getenv("PAYMENT_TOPIC"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CheckoutEndpointURL == "" {
		cfg.CheckoutEndpointURL = checkoutapi.DefaultEndpointURL
	}
	if cfg.PaymentTopic == "" {
		cfg.PaymentTopic = paymentevents.TopicName
	}

	if timeout := getenv("CHECKOUT_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid CHECKOUT_TIMEOUT '%s': %s", timeout, err)
		}
		cfg.CheckoutTimeout = d
	}

	if alert := getenv("SUCCESS_ALERT"); alert != "" {
		enabled, err := strconv.ParseBool(alert)
		if err != nil {
			return cfg, fmt.Errorf("invalid SUCCESS_ALERT '%s': %s", alert, err)
		}
		cfg.SuccessAlert = enabled
	}

	if cfg.StripeAPIKey == "" {
		return cfg, fmt.Errorf("missing env-var STRIPE_API_KEY")
	}
	if cfg.StripePublishableKey == "" {
		return cfg, fmt.Errorf("missing env-var STRIPE_PUBLISHABLE_KEY")
	}

	return cfg, nil
}
