package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	voltax "github.com/voltaxhq/voltax-go"
)

// NewLogger creates a zap logger with a colored console encoder.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

// loadConfig assembles the provider credentials from the environment. Only
// providers with credentials present end up configured; the rest fail with
// a validation error on first use.
func loadConfig() voltax.Config {
	cfg := voltax.Config{}

	if key := os.Getenv("PAYSTACK_SECRET_KEY"); key != "" {
		cfg.Paystack = &voltax.PaystackConfig{SecretKey: key}
	}
	if id := os.Getenv("HUBTEL_CLIENT_ID"); id != "" {
		cfg.Hubtel = &voltax.HubtelConfig{
			ClientID:              id,
			ClientSecret:          os.Getenv("HUBTEL_CLIENT_SECRET"),
			MerchantAccountNumber: os.Getenv("HUBTEL_MERCHANT_ACCOUNT"),
		}
	}
	if key := os.Getenv("FLUTTERWAVE_SECRET_KEY"); key != "" {
		cfg.Flutterwave = &voltax.FlutterwaveConfig{SecretKey: key}
	}
	if user := os.Getenv("MOOLRE_API_USER"); user != "" {
		cfg.Moolre = &voltax.MoolreConfig{
			APIUser:       user,
			APIPublicKey:  os.Getenv("MOOLRE_API_PUBKEY"),
			AccountNumber: os.Getenv("MOOLRE_ACCOUNT_NUMBER"),
		}
	}
	if key := os.Getenv("LIBERTEPAY_SECRET_KEY"); key != "" {
		cfg.LibertePay = &voltax.LibertePayConfig{
			SecretKey: key,
			TestEnv:   os.Getenv("LIBERTEPAY_TEST_ENV") == "true",
		}
	}

	return cfg
}

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	client := voltax.New(loadConfig(), voltax.WithLogger(logger))

	if err := newRootCmd(client, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
