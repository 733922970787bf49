package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// GatewayClient talks to the sandbox payment gateway over HTTP
type GatewayClient struct {
	client *resty.Client
}

// NewGatewayClient builds a client against the configured gateway
func NewGatewayClient() *GatewayClient {
	client := resty.New().
		SetBaseURL(config.AppConfig.PaymentApiURL).
		SetTimeout(10 * time.Second).
		SetHeader("x-api-key", config.AppConfig.PaymentApiKey).
		SetHeader("Content-Type", "application/json")

	return &GatewayClient{client: client}
}

type gatewayResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Authorize opens a checkout for the given reference and amount
func (g *GatewayClient) Authorize(reference string, amount float64) error {
	return g.post("checkout/authorize", map[string]interface{}{
		"reference": reference,
		"amount":    amount,
		"currency":  "USD",
	})
}

// Capture commits a previously authorized checkout
func (g *GatewayClient) Capture(reference string) error {
	return g.post("checkout/capture", map[string]interface{}{
		"reference": reference,
	})
}

// Cancel voids a previously authorized checkout
func (g *GatewayClient) Cancel(reference string) error {
	return g.post("checkout/cancel", map[string]interface{}{
		"reference": reference,
	})
}

func (g *GatewayClient) post(path string, body map[string]interface{}) error {
	var result gatewayResponse

	resp, err := g.client.R().
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		log.Printf("Payment gateway request to %s failed: %v", path, err)
		return err
	}

	if resp.IsError() {
		log.Printf("Payment gateway %s returned %d: %s", path, resp.StatusCode(), result.Message)
		return fmt.Errorf("payment gateway error, code: %d", resp.StatusCode())
	}

	return nil
}
