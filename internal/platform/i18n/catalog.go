// Package i18n loads the embedded message bundles and formats localized messages.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
)

//go:embed messages/*.yaml
var bundles embed.FS

const bundlePrefix = "messages."

// Catalog resolves message codes against the embedded bundles.
type Catalog struct {
	builder  *catalog.Builder
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	keys     map[string]struct{}
}

var _ userports.MessageSource = (*Catalog)(nil)

// NewCatalog parses every embedded bundle. fallback is resolved to the closest
// bundled language, so a regional tag such as en-US selects the en bundle.
func NewCatalog(fallback language.Tag) (*Catalog, error) {
	entries, err := bundles.ReadDir("messages")
	if err != nil {
		return nil, err
	}
	parsed := map[language.Tag]map[string]string{}
	var tags []language.Tag
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		tag, err := bundleLanguage(entry.Name())
		if err != nil {
			return nil, err
		}
		raw, err := bundles.ReadFile(path.Join("messages", entry.Name()))
		if err != nil {
			return nil, err
		}
		var messages map[string]string
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("parse bundle %s: %w", entry.Name(), err)
		}
		parsed[tag] = messages
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	resolved, err := resolveFallback(tags, fallback)
	if err != nil {
		return nil, err
	}
	// The matcher prefers the first tag when nothing matches.
	sort.SliceStable(tags, func(i, j int) bool { return tags[i] == resolved && tags[j] != resolved })

	builder := catalog.NewBuilder(catalog.Fallback(resolved))
	c := &Catalog{builder: builder, fallback: resolved, tags: tags, keys: map[string]struct{}{}}
	for _, tag := range tags {
		for key, msg := range parsed[tag] {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s for %s: %w", key, tag, err)
			}
			c.keys[key] = struct{}{}
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func resolveFallback(tags []language.Tag, fallback language.Tag) (language.Tag, error) {
	if len(tags) == 0 {
		return language.Und, fmt.Errorf("no message bundles embedded")
	}
	_, idx, confidence := language.NewMatcher(tags).Match(fallback)
	if confidence == language.No {
		return language.Und, fmt.Errorf("fallback locale %s has no bundle", fallback)
	}
	return tags[idx], nil
}

// MustNewCatalog is NewCatalog for bundles known to be valid at build time.
func MustNewCatalog(fallback language.Tag) *Catalog {
	c, err := NewCatalog(fallback)
	if err != nil {
		panic(err)
	}
	return c
}

// Message formats the message registered under code. Unknown codes are returned verbatim.
func (c *Catalog) Message(code string, params []any, locale language.Tag) string {
	if _, ok := c.keys[code]; !ok {
		return code
	}
	printer := message.NewPrinter(c.Match(locale.String()), message.Catalog(c.builder))
	return printer.Sprintf(code, params...)
}

// Languages lists the bundled languages, fallback first.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Match picks the best bundled language for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

func bundleLanguage(name string) (language.Tag, error) {
	if !strings.HasPrefix(name, bundlePrefix) || !strings.HasSuffix(name, ".yaml") {
		return language.Und, fmt.Errorf("unexpected bundle name %q", name)
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(name, bundlePrefix), ".yaml")
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("bundle %q: %w", name, err)
	}
	return tag, nil
}
