// Package errors classifies blogsite failures.
//
// A ClassifiedError carries a category (config, i18n, render, hugo, links,
// ...), a severity and log attributes. Build stages look at the severity to
// decide between aborting and warning; the CLI turns the category into an
// exit code:
//
//	err := errors.ConfigError("locale list is empty").
//		WithContext("file", path).
//		Build()
package errors
