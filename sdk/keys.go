package vaultsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/endpoint"
)

const (
	pathKeys       = "{mount}/keys"
	pathKey        = "{mount}/keys/{id}"
	pathKeyDestroy = "{mount}/keys/{id}/destroy"
	pathKeyImport  = "{mount}/keys/import"
	pathKeySign    = "{mount}/keys/{id}/sign"
)

type createKeyBody struct {
	SigningAlgorithm string            `json:"signing_algorithm"`
	Curve            string            `json:"curve"`
	Tags             map[string]string `json:"tags"`
	ID               string            `json:"id"`
}

type importKeyBody struct {
	createKeyBody
	PrivateKey string `json:"private_key"`
}

type updateTagsBody struct {
	Tags map[string]string `json:"tags"`
}

func newCreateKeyBody(id string, algorithm Algorithm, tags map[string]string) (createKeyBody, error) {
	if !algorithm.IsValid() {
		return createKeyBody{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	return createKeyBody{
		SigningAlgorithm: algorithm.SigningAlgorithm(),
		Curve:            algorithm.Curve(),
		Tags:             tagsOrEmpty(tags),
		ID:               id,
	}, nil
}

// CreateKey creates a new signing key.
func (c *httpClient) CreateKey(ctx context.Context, mount, id string, algorithm Algorithm, tags map[string]string) (*Key, error) {
	const op = "create_key"
	if err := requireMount(op, mount); err != nil {
		return nil, err
	}
	body, err := newCreateKeyBody(id, algorithm, tags)
	if err != nil {
		return nil, newClientError(op, err)
	}

	var key Key
	err = c.call(ctx, op, mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathKeys,
		Body:     body,
	}, &key)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// ReadKey retrieves a key by ID.
func (c *httpClient) ReadKey(ctx context.Context, mount, id string) (*Key, error) {
	var key Key
	err := c.call(ctx, "read_key", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathKey,
		Path:     map[string]string{"id": id},
	}, &key)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// ListKeys returns the IDs of all keys.
func (c *httpClient) ListKeys(ctx context.Context, mount string) ([]string, error) {
	var result listResponse
	err := c.call(ctx, "list_keys", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathKeys,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Keys, nil
}

// UpdateKeyTags replaces the full tag set of a key.
func (c *httpClient) UpdateKeyTags(ctx context.Context, mount, id string, tags map[string]string) (*Key, error) {
	var key Key
	err := c.call(ctx, "update_key_tags", mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathKey,
		Path:     map[string]string{"id": id},
		Body:     updateTagsBody{Tags: tagsOrEmpty(tags)},
	}, &key)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// DestroyKey permanently deletes a key. The response body is ignored.
func (c *httpClient) DestroyKey(ctx context.Context, mount, id string) error {
	return c.call(ctx, "destroy_key", mount, &endpoint.Descriptor{
		Method:   http.MethodDelete,
		Template: pathKeyDestroy,
		Path:     map[string]string{"id": id},
		Empty:    true,
	}, nil)
}

// ImportKey imports an existing private key under id.
func (c *httpClient) ImportKey(ctx context.Context, mount, id string, algorithm Algorithm, tags map[string]string, privateKey string) (*Key, error) {
	const op = "import_key"
	if err := requireMount(op, mount); err != nil {
		return nil, err
	}
	body, err := newCreateKeyBody(id, algorithm, tags)
	if err != nil {
		return nil, newClientError(op, err)
	}

	var key Key
	err = c.call(ctx, op, mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathKeyImport,
		Body:     importKeyBody{createKeyBody: body, PrivateKey: privateKey},
	}, &key)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// Sign hashes data with Keccak-256 and signs the digest with a key.
func (c *httpClient) Sign(ctx context.Context, mount, id string, data []byte) (*SignResponse, error) {
	return c.sign(ctx, "sign", mount, pathKeySign, map[string]string{"id": id}, data, encoding.RawBytesHashed)
}

// SignHash signs a 32-byte digest with a key.
func (c *httpClient) SignHash(ctx context.Context, mount, id string, digest []byte) (*SignResponse, error) {
	return c.sign(ctx, "sign_hash", mount, pathKeySign, map[string]string{"id": id}, digest, encoding.PrehashedBase64URL)
}
