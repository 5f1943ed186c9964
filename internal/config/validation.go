package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

// validatorInstance configures and returns the shared validator used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report YAML names so messages match what the user wrote.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("link_policy", func(fl validator.FieldLevel) bool {
			return linkPolicyNormalizer.Valid(LinkPolicy(fl.Field().String()))
		})

		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			return themeNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// ValidateConfig checks the shape of a normalized, defaulted config. It does not
// look at the file system.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.ValidationError("configuration is nil").Build()
	}
	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError("", err)
	}
	if err := validateNavbarItems(v, "navbar.items", cfg.Navbar.Items); err != nil {
		return err
	}
	if cfg.Comments != nil {
		if err := cfg.Comments.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateNavbarItems(v *validator.Validate, path string, items []NavbarItem) error {
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", path, i)
		if item.Spec == nil {
			return errors.ValidationError(field+" has no type").WithContext("field", field).Build()
		}
		if !positionNormalizer.Valid(item.Position) {
			return errors.ValidationError(fmt.Sprintf("%s.position must be left or right", field)).
				WithContext("field", field).Build()
		}
		switch s := item.Spec.(type) {
		case SearchItem:
			continue
		case DropdownItem:
			if !s.Locales && len(s.Items) == 0 {
				return errors.ValidationError(field+" dropdown needs locales or items").WithContext("field", field).Build()
			}
			if item.Label == "" && !s.Locales {
				return errors.ValidationError(field+".label is required").WithContext("field", field).Build()
			}
			if err := validateNavbarItems(v, field+".items", s.Items); err != nil {
				return err
			}
			continue
		}
		if item.Label == "" {
			return errors.ValidationError(field+".label is required").WithContext("field", field).Build()
		}
		if err := v.Struct(item.Spec); err != nil {
			return convertValidationError(field, err)
		}
	}
	return nil
}

// convertValidationError normalizes validator errors into classified validation errors.
func convertValidationError(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		field := yamlishFieldName(prefix, fe)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
		if fe.Field() == "locales" && (fe.Tag() == "required" || fe.Tag() == "min") {
			msg = "i18n.locales must list at least one locale"
		}
		return errors.ValidationError(msg).WithContext("field", field).Build()
	}
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").Fatal().Build()
}

// yamlishFieldName drops the root struct name from the namespace.
func yamlishFieldName(prefix string, fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if prefix == "" {
		return ns
	}
	return prefix + "." + ns
}
