package endpoint

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/api"
	"github.com/mitchellh/mapstructure"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// ErrEmptyResponse is returned when an operation expects a data payload but
// the backend sent none.
var ErrEmptyResponse = errors.New("response has no data")

// Executor runs descriptors against a Vault server.
type Executor struct {
	client *api.Client
	logger hclog.Logger
}

// NewExecutor wraps client. A nil logger discards output.
func NewExecutor(client *api.Client, logger hclog.Logger) *Executor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Executor{client: client, logger: logger}
}

// Client returns the underlying Vault API client.
func (e *Executor) Client() *api.Client {
	return e.client
}

// Execute issues d and decodes the "data" field of the Vault response
// envelope into out. Transport and backend errors are returned unchanged so
// callers can inspect *api.ResponseError.
func (e *Executor) Execute(ctx context.Context, d *Descriptor, out any) error {
	path := d.Render()
	req := e.client.NewRequest(d.Method, "/v1/"+path)
	if d.Body != nil {
		if err := req.SetJSONBody(d.Body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	e.logger.Trace("vault request", "method", d.Method, "path", path)

	// Logical() returns nil for a 404 and hides the response envelope.
	//nolint:staticcheck // RawRequestWithContext is deprecated
	resp, err := e.client.RawRequestWithContext(ctx, req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if d.Empty || out == nil {
		return nil
	}

	secret, err := api.ParseSecret(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return ErrEmptyResponse
	}
	return Decode(secret.Data, out)
}

// Decode copies data into out. Every field of out must be present in data
// with a compatible type; no weak conversions are applied.
func Decode(data map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(addressHook),
		ErrorUnset: true,
		TagName:    "json",
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

var addressType = reflect.TypeOf(common.Address{})

// addressHook parses hex strings into common.Address targets.
func addressHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != addressType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected address string, got %s", from)
	}
	return encoding.ParseAddress(s)
}
