// Package embed renders the giscus discussion widget attached to documentation pages.
//
// A Binding pins the widget to one GitHub Discussions category; Props combines it
// with the page's color mode and language. The widget is loaded by the browser and
// its failures (network, id mismatch) never flow back into the build.
package embed

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/normalization"
)

// Mapping is the rule the discussion service uses to associate a page with a thread.
type Mapping string

const (
	MappingPathname Mapping = "pathname"
	MappingURL      Mapping = "url"
	MappingTitle    Mapping = "title"
	MappingOGTitle  Mapping = "og:title"
	MappingSpecific Mapping = "specific"
	MappingNumber   Mapping = "number"
)

var mappingNormalizer = normalization.NewNormalizer("mapping", map[string]Mapping{
	"pathname": MappingPathname,
	"url":      MappingURL,
	"title":    MappingTitle,
	"og:title": MappingOGTitle,
	"specific": MappingSpecific,
	"number":   MappingNumber,
}, MappingPathname)

// ParseMapping converts raw into a Mapping; empty input yields MappingPathname.
func ParseMapping(raw string) (Mapping, error) { return mappingNormalizer.Parse(raw) }

// Binding is the fixed set of identifiers tying pages to discussion threads.
type Binding struct {
	Repo             string  `yaml:"repo" validate:"required,github_repo"`
	RepoID           string  `yaml:"repo_id" validate:"required,startswith=R_"`
	Category         string  `yaml:"category" validate:"required"`
	CategoryID       string  `yaml:"category_id" validate:"required,startswith=DIC_"`
	Mapping          Mapping `yaml:"mapping" validate:"required,mapping"`
	Term             string  `yaml:"term,omitempty"`
	Strict           bool    `yaml:"strict,omitempty"`
	ReactionsEnabled bool    `yaml:"reactions_enabled"`
	EmitMetadata     bool    `yaml:"emit_metadata,omitempty"`
	InputPosition    string  `yaml:"input_position,omitempty" validate:"omitempty,oneof=top bottom"`
	Lang             string  `yaml:"lang,omitempty"`
	Loading          string  `yaml:"loading,omitempty" validate:"omitempty,oneof=lazy eager"`
}

// UnmarshalYAML decodes a binding; reactions stay enabled unless the
// document turns them off.
func (b *Binding) UnmarshalYAML(value *yaml.Node) error {
	type plain Binding
	p := plain{ReactionsEnabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*b = Binding(p)
	return nil
}

// DefaultBinding is the binding compiled into the site.
func DefaultBinding() Binding {
	return Binding{
		Repo:             "chenyuan-new/blogByDocusaurus",
		RepoID:           "R_kgDOIl9CDQ",
		Category:         "Announcements",
		CategoryID:       "DIC_kwDOIl9CDc4CdbwV",
		Mapping:          MappingOGTitle,
		Term:             "Welcome to @giscus/react component!",
		Strict:           false,
		ReactionsEnabled: true,
		EmitMetadata:     false,
		InputPosition:    "bottom",
		Lang:             "en",
		Loading:          "lazy",
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	repoPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})/[A-Za-z0-9._-]{1,100}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("github_repo", func(fl validator.FieldLevel) bool {
			return repoPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("mapping", func(fl validator.FieldLevel) bool {
			return mappingNormalizer.Valid(Mapping(fl.Field().String()))
		})
		validateInst = v
	})
	return validateInst
}

// Validate performs structural checks on the binding. It cannot detect ids that
// belong to a different repository; see Verifier for that.
func (b Binding) Validate() error {
	if err := validatorInstance().Struct(b); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			fe := ves[0]
			return errors.ValidationError(fmt.Sprintf("comments.%s failed validation for tag '%s'", fe.Field(), fe.Tag())).
				WithContext("field", fe.Field()).Build()
		}
		return errors.WrapError(err, errors.CategoryValidation, "invalid comment binding").Fatal().Build()
	}
	switch b.Mapping {
	case MappingSpecific:
		if b.Term == "" {
			return errors.ValidationError("comments.term is required when mapping is specific").Build()
		}
	case MappingNumber:
		if n, err := strconv.Atoi(b.Term); err != nil || n <= 0 {
			return errors.ValidationError("comments.term must be a positive discussion number when mapping is number").Build()
		}
	}
	return nil
}
