// Package endpoint describes single REST operations of the Quorum Vault
// plugin and executes them through a HashiCorp Vault API client.
package endpoint

import (
	"strings"
)

// Descriptor declares one backend operation.
//
// Path and Body are disjoint: Path values only parameterize Template and are
// never serialized, Body holds only the fields sent as the JSON payload.
type Descriptor struct {
	// Method is the HTTP method.
	Method string

	// Template is the path relative to /v1/, with {name} placeholders,
	// e.g. "{mount}/keys/{id}/sign".
	Template string

	// Path holds the placeholder values.
	Path map[string]string

	// Body is the request payload. Nil sends no body.
	Body any

	// Empty marks operations whose successful response carries no data.
	Empty bool
}

// Render substitutes the path parameters into the template. Values are
// inserted verbatim; the backend is the source of truth for path validity.
// Placeholders without a value are left untouched.
func (d *Descriptor) Render() string {
	if len(d.Path) == 0 {
		return d.Template
	}
	pairs := make([]string, 0, 2*len(d.Path))
	for name, value := range d.Path {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(d.Template)
}
