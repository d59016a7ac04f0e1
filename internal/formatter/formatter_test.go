package formatter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperFormatter struct {
	langs []string
}

func (f upperFormatter) Name() string        { return "upper" }
func (f upperFormatter) Languages() []string { return f.langs }
func (f upperFormatter) Format(_ context.Context, lang, src string) (string, error) {
	return lang + ":" + src, nil
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(upperFormatter{langs: []string{"Go", "css"}})

	tests := []struct {
		name  string
		lang  string
		found bool
	}{
		{"exact", "css", true},
		{"registered uppercase", "go", true},
		{"lookup uppercase", "CSS", true},
		{"surrounding space", " go ", true},
		{"unknown", "cobol", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.Lookup(tt.lang)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestRegistry_Languages(t *testing.T) {
	r := NewRegistry(upperFormatter{langs: []string{"go", "css"}}, upperFormatter{langs: []string{"c"}})
	assert.Equal(t, []string{"c", "css", "go"}, r.Languages())
}

func TestRegistry_Format(t *testing.T) {
	r := NewRegistry(upperFormatter{langs: []string{"go"}})

	out, err := r.Format(context.Background(), "GO", "x")
	require.NoError(t, err)
	assert.Equal(t, "go:x", out)

	_, err = r.Format(context.Background(), "cobol", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "cobol")
}

func TestRegistry_LaterOverrides(t *testing.T) {
	md := NewMarkdownFormatter()
	r := NewRegistry(md, upperFormatter{langs: []string{"markdown"}})

	f, ok := r.Lookup("markdown")
	require.True(t, ok)
	assert.Equal(t, "upper", f.Name())

	f, ok = r.Lookup("md")
	require.True(t, ok)
	assert.Equal(t, "markdown", f.Name())
}

func TestExtension(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"csharp", "cs"},
		{"objectivec", "m"},
		{"javascript", "js"},
		{"Python", "py"},
		{"go", "go"},
		{"text", "txt"},
		{"", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.lang))
		})
	}

	assert.Equal(t, "format.cpp", FileName("cpp"))
}

func TestDefaultCommands(t *testing.T) {
	r := NewRegistryFromCommands(DefaultCommands(), 0)

	for _, lang := range []string{"c", "cpp", "csharp", "java", "objectivec", "css", "html", "javascript", "json", "go", "python", "markdown"} {
		_, ok := r.Lookup(lang)
		assert.True(t, ok, "expected formatter for %s", lang)
	}

	f, _ := r.Lookup("markdown")
	assert.Equal(t, "markdown", f.Name())
	f, _ = r.Lookup("go")
	assert.Equal(t, "gofmt", f.Name())
}
