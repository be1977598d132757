// Package redirect decides whether a client supplied redirect target is safe to follow.
package redirect

import (
	"net/url"
	"strings"

	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
)

const devOrigin = "http://localhost"

// Validator holds the deployment facts the allow-rules depend on.
type Validator struct {
	Dev  bool   // allow http://localhost targets
	Site string // configured public site, empty when unset
}

// NewValidator creates a Validator for the given mode and site.
func NewValidator(dev bool, site string) *Validator {
	return &Validator{Dev: dev, Site: site}
}

// Validate returns the first present candidate if it is allowed.
//
// Only the first present candidate is examined: when first is set but not
// allowed the call fails and second is never tried. Both absent yields nil.
func (v *Validator) Validate(first, second *string) (*string, error) {
	for _, candidate := range []*string{first, second} {
		if candidate == nil {
			continue
		}
		if v.Allowed(*candidate) {
			target := *candidate
			return &target, nil
		}
		return nil, autherrors.BadRequest("invalid redirect")
	}
	return nil, nil
}

// Allowed reports whether target is a relative path, a localhost URL in dev
// mode, or starts with the configured site.
//
// The site check is a literal string prefix, not an origin comparison.
func (v *Validator) Allowed(target string) bool {
	if strings.HasPrefix(target, "/") {
		return true
	}
	if v.Dev && strings.HasPrefix(target, devOrigin) {
		return true
	}
	if v.Site != "" {
		return strings.HasPrefix(target, v.Site)
	}
	return false
}

// ValidateQuery validates the first two of keys found in values. A key that is
// present with an empty value counts as present.
func (v *Validator) ValidateQuery(values url.Values, keys ...string) (*string, error) {
	var candidates [2]*string
	for i := 0; i < len(keys) && i < len(candidates); i++ {
		if values.Has(keys[i]) {
			s := values.Get(keys[i])
			candidates[i] = &s
		}
	}
	return v.Validate(candidates[0], candidates[1])
}

// Validate is shorthand for NewValidator(dev, site).Validate(first, second).
func Validate(first, second *string, dev bool, site string) (*string, error) {
	return NewValidator(dev, site).Validate(first, second)
}
