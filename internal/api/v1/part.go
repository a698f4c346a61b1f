package v1

import (
	"fmt"
	"strings"
	"time"
)

// Part is the host entity that receives a SAPN.
type Part struct {
	// ID is assigned by the store on creation.
	ID int64 `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// IPN holds the assigned identifier. Empty means "not yet assigned".
	// Unique across all parts when non-empty.
	IPN string `json:"ipn"`

	// Parameters are the part's resolved parameter values, keyed by template
	// name (e.g. "SA_CCC"). Inheritance is applied by the host before storage.
	Parameters map[string]string `json:"parameters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Parameter returns the named parameter value, or "" when absent.
func (p *Part) Parameter(name string) string {
	if p.Parameters == nil {
		return ""
	}
	return p.Parameters[name]
}

// HasIdentifier reports whether the part already carries an IPN.
func (p *Part) HasIdentifier() bool {
	return strings.TrimSpace(p.IPN) != ""
}

// Validate checks the fields a client must supply on creation.
func (p *Part) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
