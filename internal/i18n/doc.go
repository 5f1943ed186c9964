// Package i18n holds the site's message catalog.
//
// Every user-facing string is addressed by a stable Key and carries a literal
// default-locale message. Lookups fall back in a fixed order: the requested
// locale, the default locale, the registered literal, and finally the key itself.
// A missing translation is never an error.
package i18n
