// Package formatter provides code formatters keyed by language name.
package formatter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when no formatter handles a language.
var ErrNotFound = errors.New("no formatter for language")

// Formatter reformats source code of one or more languages.
type Formatter interface {
	Name() string
	Languages() []string
	Format(ctx context.Context, lang, src string) (string, error)
}

// Registry maps language names to formatters.
// Adding a language = registering a formatter that lists it.
type Registry struct {
	byLang map[string]Formatter
}

// NewRegistry creates a registry holding the given formatters.
// Later formatters override earlier ones for shared languages.
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{byLang: make(map[string]Formatter)}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

// Register adds f for every language it lists.
func (r *Registry) Register(f Formatter) {
	for _, lang := range f.Languages() {
		r.byLang[normalizeLang(lang)] = f
	}
}

// Lookup returns the formatter for a language, normalizing to lowercase.
func (r *Registry) Lookup(lang string) (Formatter, bool) {
	f, ok := r.byLang[normalizeLang(lang)]
	return f, ok
}

// Languages returns all registered languages in sorted order.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.byLang))
	for lang := range r.byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Format formats src with the formatter registered for lang.
func (r *Registry) Format(ctx context.Context, lang, src string) (string, error) {
	f, ok := r.Lookup(lang)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, lang)
	}
	return f.Format(ctx, normalizeLang(lang), src)
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
