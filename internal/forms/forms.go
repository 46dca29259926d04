// Package forms centralizes the lenient parsing policy for JSON-typed
// multipart form fields. Structured sub-objects (pricing, dates, location,
// ...) arrive as JSON strings inside multipart bodies; a malformed or absent
// value falls back to a default instead of failing the request.
package forms

import "encoding/json"

// ParseOr decodes raw into T, returning fallback when raw is empty or not
// valid JSON for T. Used on create paths, where a bad sub-object silently
// becomes the zero document rather than a validation error.
func ParseOr[T any](raw string, fallback T) T {
	if raw == "" {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback
	}
	return v
}

// ParseOrNil decodes raw into *T, returning nil when raw is empty or
// malformed. Used on update paths, where nil means "leave the stored value
// unchanged".
func ParseOrNil[T any](raw string) *T {
	if raw == "" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}
	return &v
}
