package config

import (
	"log"
	"os"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	JWTSecret      string
	PaymentAPIKey  string
	PaymentBaseURL string
	WebhookSecret  string
	ClientOrigin   string
	// RoleOverrides pins roles for the fixed demo addresses; every other
	// account signs in as a customer until an admin escalates it.
	RoleOverrides map[string]string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bookcourier.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bookcourier.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Println("[config] JWT_SECRET not set, using dev default")
	}
	payKey := os.Getenv("PAYMENT_API_KEY")
	payURL := os.Getenv("PAYMENT_BASE_URL")
	if payURL == "" {
		payURL = "https://api.stripe.com"
	}
	whSecret := os.Getenv("WEBHOOK_SECRET")
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	overrides := map[string]string{
		"admin@bookcourier.com":    "admin",
		"seller@bookcourier.com":   "seller",
		"customer@bookcourier.com": "customer",
	}
	if extra := os.Getenv("ADMIN_EMAIL"); extra != "" {
		overrides[extra] = "admin"
	}

	cfg := Config{
		Port:           port,
		DBDSN:          dsn,
		LogFile:        logFile,
		JWTSecret:      secret,
		PaymentAPIKey:  payKey,
		PaymentBaseURL: payURL,
		WebhookSecret:  whSecret,
		ClientOrigin:   origin,
		RoleOverrides:  overrides,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CLIENT_ORIGIN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.ClientOrigin, cfg.LogFile)
	return cfg
}
