package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewCatalog_LoadsBundledLanguages(t *testing.T) {
	c, err := NewCatalog(language.English)
	require.NoError(t, err)

	langs := c.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, language.English, langs[0])
	assert.Contains(t, langs, language.Spanish)
}

func TestNewCatalog_RejectsUnbundledFallback(t *testing.T) {
	_, err := NewCatalog(language.Japanese)
	require.Error(t, err)
}

func TestNewCatalog_ResolvesRegionalFallback(t *testing.T) {
	c, err := NewCatalog(language.AmericanEnglish)
	require.NoError(t, err)

	assert.Equal(t, language.English, c.Languages()[0])
	assert.Equal(t, language.English, c.Match(""))
	assert.Equal(t, language.English, c.Match("ja"))
	assert.Equal(t, "Email must not be blank", c.Message("NotBlank.user.email", nil, language.German))

	c, err = NewCatalog(language.MustParse("es-MX"))
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, c.Languages()[0])
}

func TestMessage_InterpolatesParams(t *testing.T) {
	c := MustNewCatalog(language.English)

	msg := c.Message("user.message.notfound", []any{"42"}, language.English)
	assert.Equal(t, "User with ID 42 not found", msg)

	msg = c.Message("Size.user.phone", []any{15}, language.English)
	assert.Equal(t, "Phone must be at most 15 characters long", msg)
}

func TestMessage_UsesRequestedLanguage(t *testing.T) {
	c := MustNewCatalog(language.English)

	msg := c.Message("user.message.notfound", []any{"42"}, language.Spanish)
	assert.Equal(t, "No se encontró el usuario con ID 42", msg)
}

func TestMessage_UnsupportedLanguageFallsBack(t *testing.T) {
	c := MustNewCatalog(language.English)

	msg := c.Message("NotBlank.user.email", nil, language.German)
	assert.Equal(t, "Email must not be blank", msg)
}

func TestMessage_UnknownCodeReturnedVerbatim(t *testing.T) {
	c := MustNewCatalog(language.English)

	assert.Equal(t, "user.message.unknown", c.Message("user.message.unknown", []any{"x"}, language.English))
}

func TestMatch(t *testing.T) {
	c := MustNewCatalog(language.English)

	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{name: "empty header", header: "", want: language.English},
		{name: "spanish region", header: "es-MX,es;q=0.9", want: language.Spanish},
		{name: "weighted preference", header: "fr;q=0.9, es;q=0.8", want: language.Spanish},
		{name: "unsupported", header: "ja", want: language.English},
		{name: "garbage", header: ";;;", want: language.English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Match(tt.header))
		})
	}
}
