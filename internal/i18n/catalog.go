package i18n

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Key is a stable message identifier such as "homepage.features.about.title".
type Key string

// Message declares a key together with its literal default-locale text.
type Message struct {
	Key         Key
	Default     string
	Description string
}

// Msg is shorthand for declaring a Message.
func Msg(key Key, literal string) Message { return Message{Key: key, Default: literal} }

// Catalog maps keys to localized strings per locale.
type Catalog struct {
	mu            sync.RWMutex
	locales       []string
	tags          []language.Tag
	matcher       language.Matcher
	messages      map[Key]Message
	byLiteral     map[string]Key
	tables        map[string]map[Key]string
	defaultLocale string
}

// NewCatalog creates a catalog for the ordered locale list; the first locale is the default.
func NewCatalog(locales []string) (*Catalog, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("catalog requires at least one locale")
	}
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	c := &Catalog{
		locales:       append([]string(nil), locales...),
		tags:          tags,
		matcher:       language.NewMatcher(tags),
		messages:      make(map[Key]Message),
		byLiteral:     make(map[string]Key),
		tables:        make(map[string]map[Key]string, len(locales)),
		defaultLocale: locales[0],
	}
	for _, l := range locales {
		c.tables[l] = make(map[Key]string)
	}
	return c, nil
}

// DefaultLocale returns the first configured locale.
func (c *Catalog) DefaultLocale() string { return c.defaultLocale }

// Locales returns the configured locales in order.
func (c *Catalog) Locales() []string { return append([]string(nil), c.locales...) }

// Register declares messages. Re-registering a key replaces its literal.
func (c *Catalog) Register(msgs ...Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		if prev, ok := c.messages[m.Key]; ok {
			delete(c.byLiteral, prev.Default)
		}
		c.messages[m.Key] = m
		if m.Default != "" {
			c.byLiteral[m.Default] = m.Key
		}
	}
}

// Messages returns registered messages sorted by key.
func (c *Catalog) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Set stores a translation. The locale is matched against the configured list first.
func (c *Catalog) Set(locale string, key Key, value string) {
	loc := c.Match(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[loc][key] = value
}

// ResolveKey maps a raw catalog entry name onto a registered key. Entries written
// against the literal default message (the way translation files are usually
// extracted) resolve to the key that declared that literal.
func (c *Catalog) ResolveKey(raw string) (Key, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.messages[Key(raw)]; ok {
		return Key(raw), true
	}
	if k, ok := c.byLiteral[raw]; ok {
		return k, true
	}
	return Key(raw), false
}

// Lookup returns the translation stored for locale without any fallback.
func (c *Catalog) Lookup(locale string, key Key) (string, bool) {
	loc := c.Match(locale)
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.tables[loc][key]
	return v, ok
}

// Translate resolves key for locale using the catalog's fallback order.
func (c *Catalog) Translate(locale string, key Key) string {
	if v, ok := c.Lookup(locale, key); ok {
		return v
	}
	if v, ok := c.Lookup(c.defaultLocale, key); ok {
		return v
	}
	c.mu.RLock()
	m, ok := c.messages[key]
	c.mu.RUnlock()
	if ok && m.Default != "" {
		slog.Debug("Translation missing; using literal", logfields.Locale(locale), logfields.MessageKey(string(key)))
		return m.Default
	}
	return string(key)
}

// Missing lists registered keys that have no translation for locale.
func (c *Catalog) Missing(locale string) []Key {
	loc := c.Match(locale)
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Key
	for k := range c.messages {
		if _, ok := c.tables[loc][k]; !ok {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Table returns every registered key resolved for locale (fallbacks applied),
// plus any extra keys stored directly for that locale.
func (c *Catalog) Table(locale string) map[Key]string {
	out := make(map[Key]string)
	for _, m := range c.Messages() {
		out[m.Key] = c.Translate(locale, m.Key)
	}
	loc := c.Match(locale)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.tables[loc] {
		out[k] = v
	}
	return out
}

// Match maps an arbitrary language tag onto the closest configured locale.
// Unmatched tags resolve to the default locale.
func (c *Catalog) Match(requested string) string {
	for _, l := range c.locales {
		if l == requested {
			return l
		}
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return c.defaultLocale
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return c.defaultLocale
	}
	return c.locales[idx]
}

// LanguageName returns the autonym of a configured locale ("简体中文", "English").
func (c *Catalog) LanguageName(locale string) string {
	loc := c.Match(locale)
	for i, l := range c.locales {
		if l == loc {
			if name := display.Self.Name(c.tags[i]); name != "" {
				return name
			}
		}
	}
	return loc
}

// Localizer binds a catalog to one locale.
type Localizer struct {
	catalog *Catalog
	locale  string
}

// For returns a Localizer for locale.
func (c *Catalog) For(locale string) Localizer {
	return Localizer{catalog: c, locale: c.Match(locale)}
}

// Locale returns the matched locale.
func (l Localizer) Locale() string { return l.locale }

// T translates key.
func (l Localizer) T(key Key) string { return l.catalog.Translate(l.locale, key) }
