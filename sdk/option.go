package vaultsdk

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/api"
)

// Option configures the client.
type Option func(*options) error

type options struct {
	timeout     time.Duration
	tlsConfig   *tls.Config
	httpClient  *http.Client
	namespace   string
	logger      hclog.Logger
	vaultClient *api.Client
}

// WithTimeout sets the request timeout of the Vault API client. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.timeout = d
		return nil
	}
}

// WithTLSConfig provides a custom TLS configuration.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) error {
		o.tlsConfig = cfg
		return nil
	}
}

// WithCACert loads a PEM-encoded CA certificate from a file path
// and adds it to the TLS root CA pool. This is the most common way
// to configure TLS for Vault instances using self-signed certificates.
func WithCACert(path string) Option {
	return func(o *options) error {
		pem, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read CA cert file: %w", err)
		}
		return withCAPEM(pem)(o)
	}
}

// WithCAPEM adds a PEM-encoded CA certificate to the TLS root CA pool
// from raw bytes. Useful when the CA cert is loaded from environment
// variables or secret managers (e.g., Kubernetes Secrets).
func WithCAPEM(pem []byte) Option {
	return withCAPEM(pem)
}

func withCAPEM(pem []byte) Option {
	return func(o *options) error {
		if o.tlsConfig == nil {
			o.tlsConfig = &tls.Config{}
		}
		if o.tlsConfig.RootCAs == nil {
			pool, err := x509.SystemCertPool()
			if err != nil {
				pool = x509.NewCertPool()
			}
			o.tlsConfig.RootCAs = pool
		}
		if !o.tlsConfig.RootCAs.AppendCertsFromPEM(pem) {
			return fmt.Errorf("failed to parse CA certificate PEM")
		}
		return nil
	}
}

// WithHTTPClient provides a fully custom *http.Client.
// When set, TLS options (WithTLSConfig, WithCACert, WithCAPEM) are ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		o.httpClient = client
		return nil
	}
}

// WithNamespace sets the Vault Enterprise namespace sent with every request.
func WithNamespace(namespace string) Option {
	return func(o *options) error {
		o.namespace = namespace
		return nil
	}
}

// WithLogger sets the logger used for request tracing. Default: no output.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithVaultClient uses a pre-configured Vault API client. When set, the
// address, token and every transport option are ignored.
func WithVaultClient(client *api.Client) Option {
	return func(o *options) error {
		if client == nil {
			return fmt.Errorf("vault client is nil")
		}
		o.vaultClient = client
		return nil
	}
}
