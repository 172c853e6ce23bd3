package ai

import "strings"

const (
	CredentialFromRequest = "request"
	CredentialFromDefault = "default"
	CredentialNone        = "none"
)

// CredentialResolver picks the API key for one decision request. The default
// key is fixed at construction and never mutated.
type CredentialResolver struct {
	defaultKey string
}

func NewCredentialResolver(defaultKey string) *CredentialResolver {
	return &CredentialResolver{defaultKey: strings.TrimSpace(defaultKey)}
}

// Resolve returns the explicit key if given, otherwise the default.
func (r *CredentialResolver) Resolve(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if r.defaultKey != "" {
		return r.defaultKey, nil
	}
	return "", newError(KindConfiguration, ErrNoCredential)
}

// Source names where Resolve would take the key from.
func (r *CredentialResolver) Source(explicit string) string {
	switch {
	case strings.TrimSpace(explicit) != "":
		return CredentialFromRequest
	case r.defaultKey != "":
		return CredentialFromDefault
	default:
		return CredentialNone
	}
}

func (r *CredentialResolver) HasDefault() bool {
	return r.defaultKey != ""
}
