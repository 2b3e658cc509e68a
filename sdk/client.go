package vaultsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/api"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/endpoint"
)

const defaultTimeout = 30 * time.Second

// httpClient is the concrete implementation of the Client interface.
type httpClient struct {
	exec *endpoint.Executor
}

// Compile-time check that httpClient implements Client.
var _ Client = (*httpClient)(nil)

// NewClient creates a new Quorum Vault plugin client.
//
// addr is the Vault server address (e.g., "https://vault.example.com:8200").
// token is the Vault authentication token. Empty values fall back to the
// VAULT_ADDR and VAULT_TOKEN environment variables.
func NewClient(addr, token string, opts ...Option) (Client, error) {
	cfg := &options{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("vaultsdk: option error: %w", err)
		}
	}

	vc := cfg.vaultClient
	if vc == nil {
		var err error
		vc, err = newVaultClient(addr, token, cfg)
		if err != nil {
			return nil, fmt.Errorf("vaultsdk: %w", err)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &httpClient{exec: endpoint.NewExecutor(vc, logger.Named("vaultsdk"))}, nil
}

func newVaultClient(addr, token string, o *options) (*api.Client, error) {
	conf := api.DefaultConfig()
	if conf.Error != nil {
		return nil, conf.Error
	}
	if addr != "" {
		conf.Address = strings.TrimRight(addr, "/")
	}
	conf.Timeout = defaultTimeout
	if o.timeout > 0 {
		conf.Timeout = o.timeout
	}
	conf.MaxRetries = 0

	if o.httpClient != nil {
		conf.HttpClient = o.httpClient
	} else if o.tlsConfig != nil {
		transport, ok := conf.HttpClient.Transport.(*http.Transport)
		if !ok {
			return nil, errors.New("unexpected default transport type")
		}
		transport.TLSClientConfig = o.tlsConfig
	}

	vc, err := api.NewClient(conf)
	if err != nil {
		return nil, err
	}
	if token != "" {
		vc.SetToken(token)
	}
	if o.namespace != "" {
		vc.SetNamespace(o.namespace)
	}
	return vc, nil
}

// call sends d to mount and decodes the response data into out. Every
// failure is wrapped in a *ClientError tagged with op.
func (c *httpClient) call(ctx context.Context, op, mount string, d *endpoint.Descriptor, out any) error {
	if err := requireMount(op, mount); err != nil {
		return err
	}
	if d.Path == nil {
		d.Path = make(map[string]string, 1)
	}
	d.Path["mount"] = mount

	if err := c.exec.Execute(ctx, d, out); err != nil {
		return newClientError(op, err)
	}
	return nil
}

type signBody struct {
	Data string `json:"data"`
}

// sign encodes data per mode and posts it to the signing route of an account.
func (c *httpClient) sign(ctx context.Context, op, mount, template string, path map[string]string, data []byte, mode encoding.SigningMode) (*SignResponse, error) {
	if err := requireMount(op, mount); err != nil {
		return nil, err
	}
	payload, err := encoding.EncodeSigningPayload(data, mode)
	if err != nil {
		return nil, newClientError(op, err)
	}

	var result SignResponse
	err = c.call(ctx, op, mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: template,
		Path:     path,
		Body:     signBody{Data: payload},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func requireMount(op, mount string) error {
	if mount == "" {
		return newClientError(op, ErrEmptyMount)
	}
	return nil
}

func tagsOrEmpty(tags map[string]string) map[string]string {
	if tags == nil {
		return map[string]string{}
	}
	return tags
}
