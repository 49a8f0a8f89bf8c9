// Package voltax unifies several payment-gateway HTTP APIs (Paystack,
// Hubtel, Flutterwave, Moolre, LibertePay) behind one contract: initiate a
// payment, verify a transaction. Each gateway keeps its own adapter with its
// own wire mapping and status table; callers only ever see the canonical
// request/response shapes and the shared error taxonomy.
package voltax

import (
	"fmt"
	"sync"
)

// Provider name tokens accepted by Client.Provider.
const (
	ProviderPaystack    = "paystack"
	ProviderHubtel      = "hubtel"
	ProviderFlutterwave = "flutterwave"
	ProviderMoolre      = "moolre"
	ProviderLibertePay  = "libertepay"
)

// ProviderNames lists every supported provider token.
func ProviderNames() []string {
	return []string{ProviderPaystack, ProviderHubtel, ProviderFlutterwave, ProviderMoolre, ProviderLibertePay}
}

// Config carries the per-provider credentials. Only configured providers can
// be resolved; accessing an unconfigured one fails with a ValidationError.
type Config struct {
	Paystack    *PaystackConfig
	Hubtel      *HubtelConfig
	Flutterwave *FlutterwaveConfig
	Moolre      *MoolreConfig
	LibertePay  *LibertePayConfig
}

// Client resolves provider names to adapter instances. Each adapter is built
// lazily, at most once, and cached; the client is safe for concurrent use.
type Client struct {
	config Config
	opts   []Option

	mu          sync.Mutex
	paystack    *PaystackAdapter
	hubtel      *HubtelAdapter
	flutterwave *FlutterwaveAdapter
	moolre      *MoolreAdapter
	libertePay  *LibertePayAdapter
}

// New builds a Client. Adapter construction (and therefore credential
// validation) is deferred until a provider is first accessed.
func New(cfg Config, opts ...Option) *Client {
	return &Client{config: cfg, opts: opts}
}

// Paystack returns the Paystack adapter, constructing it on first access.
func (c *Client) Paystack() (*PaystackAdapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paystack != nil {
		return c.paystack, nil
	}
	if c.config.Paystack == nil {
		return nil, newValidationError("Paystack configuration is missing. Provide Paystack in the client config")
	}
	adapter, err := NewPaystackAdapter(*c.config.Paystack, c.opts...)
	if err != nil {
		return nil, err
	}
	c.paystack = adapter
	return adapter, nil
}

// Hubtel returns the Hubtel adapter, constructing it on first access.
func (c *Client) Hubtel() (*HubtelAdapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hubtel != nil {
		return c.hubtel, nil
	}
	if c.config.Hubtel == nil {
		return nil, newValidationError("Hubtel configuration is missing. Provide Hubtel in the client config")
	}
	adapter, err := NewHubtelAdapter(*c.config.Hubtel, c.opts...)
	if err != nil {
		return nil, err
	}
	c.hubtel = adapter
	return adapter, nil
}

// Flutterwave returns the Flutterwave adapter, constructing it on first
// access.
func (c *Client) Flutterwave() (*FlutterwaveAdapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flutterwave != nil {
		return c.flutterwave, nil
	}
	if c.config.Flutterwave == nil {
		return nil, newValidationError("Flutterwave configuration is missing. Provide Flutterwave in the client config")
	}
	adapter, err := NewFlutterwaveAdapter(*c.config.Flutterwave, c.opts...)
	if err != nil {
		return nil, err
	}
	c.flutterwave = adapter
	return adapter, nil
}

// Moolre returns the Moolre adapter, constructing it on first access.
func (c *Client) Moolre() (*MoolreAdapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.moolre != nil {
		return c.moolre, nil
	}
	if c.config.Moolre == nil {
		return nil, newValidationError("Moolre configuration is missing. Provide Moolre in the client config")
	}
	adapter, err := NewMoolreAdapter(*c.config.Moolre, c.opts...)
	if err != nil {
		return nil, err
	}
	c.moolre = adapter
	return adapter, nil
}

// LibertePay returns the LibertePay adapter, constructing it on first
// access.
func (c *Client) LibertePay() (*LibertePayAdapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.libertePay != nil {
		return c.libertePay, nil
	}
	if c.config.LibertePay == nil {
		return nil, newValidationError("LibertePay configuration is missing. Provide LibertePay in the client config")
	}
	adapter, err := NewLibertePayAdapter(*c.config.LibertePay, c.opts...)
	if err != nil {
		return nil, err
	}
	c.libertePay = adapter
	return adapter, nil
}

// Provider resolves a provider name token to its adapter. An unrecognized
// token fails with a ValidationError naming it.
func (c *Client) Provider(name string) (Provider, error) {
	var (
		adapter Provider
		err     error
	)
	switch name {
	case ProviderPaystack:
		adapter, err = c.Paystack()
	case ProviderHubtel:
		adapter, err = c.Hubtel()
	case ProviderFlutterwave:
		adapter, err = c.Flutterwave()
	case ProviderMoolre:
		adapter, err = c.Moolre()
	case ProviderLibertePay:
		adapter, err = c.LibertePay()
	default:
		return nil, newValidationError(fmt.Sprintf("unsupported provider: %s", name))
	}
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
