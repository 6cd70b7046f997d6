// Package locale carries the negotiated request language through a context.
package locale

import (
	"context"

	"golang.org/x/text/language"
)

// Default is used when no locale was negotiated for the request.
var Default = language.English

type contextKey struct{}

// WithLocale returns a copy of ctx carrying tag.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// FromContext returns the locale stored in ctx or Default.
func FromContext(ctx context.Context) language.Tag {
	if ctx == nil {
		return Default
	}
	if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	return Default
}
