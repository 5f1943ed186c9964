package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

const repoURL = "https://github.com/chenyuan-new/blogByDocusaurus"

// Default returns the compiled-in site configuration, already resolved.
func Default() *Config {
	comments := embed.DefaultBinding()
	cfg := &Config{
		Title:                 "Chen yuan",
		Tagline:               "Always eager to learn",
		URL:                   "https://chen-yuan-blog.vercel.app/",
		BaseURL:               "/",
		Favicon:               "img/favicon.ico",
		OrganizationName:      "chen yuan",
		ProjectName:           "blog",
		OnBrokenLinks:         LinkPolicyThrow,
		OnBrokenMarkdownLinks: LinkPolicyWarn,
		Plugins:               []string{"live-codeblock"},
		Presets:               []string{"classic"},
		I18n: I18nConfig{
			DefaultLocale: "zh-Hans",
			Locales:       []string{"zh-Hans", "en"},
		},
		Docs: DocsConfig{
			SidebarPath:        "sidebars.yaml",
			SidebarHideable:    true,
			ShowLastUpdateTime: true,
			EditURL:            repoURL + "/blob/main/",
		},
		Blog: BlogConfig{
			ShowReadingTime: true,
			EditURL:         repoURL + "/blob/main/",
		},
		Theme: ThemeConfig{CustomCSS: "src/css/custom.css"},
		AnnouncementBar: &AnnouncementBar{
			ID:              "support_us",
			Content:         `⭐️ 如果这个网站能帮助到你，欢迎给一个star支持作者  <a target="_blank" rel="noopener noreferrer" href="` + repoURL + `">GitHub</a>`,
			BackgroundColor: "#fafbfc",
			TextColor:       "#091E42",
			IsCloseable:     true,
		},
		Navbar: NavbarConfig{
			Title:        "Chen yuan的博客",
			HideOnScroll: true,
			Items: []NavbarItem{
				{Position: PositionRight, Spec: SearchItem{}},
				{Label: "知识库", Position: PositionRight, Spec: DocItem{DocID: "frontend/index"}},
				{Label: "Blog", Position: PositionRight, Spec: BlogItem{To: "blog"}},
				{Position: PositionRight, Spec: DropdownItem{Locales: true}},
				{Label: "GitHub", Position: PositionRight, Spec: LinkItem{Href: repoURL}},
			},
		},
		Prism: PrismConfig{
			Theme:               "dracula",
			DarkTheme:           "github",
			DefaultLanguage:     "js",
			AdditionalLanguages: []string{"rust", "typescript", "markup", "css", "tsx", "jsx", "json"},
		},
		ColorMode: colormode.Preference{RespectPrefersColorScheme: true},
		Algolia: &AlgoliaConfig{
			AppID:     "4P8N3GM9K9",
			APIKey:    "e6cfcacca2f69ee4177b2c74f1fa7376",
			IndexName: "chen-yuan-vercel",
		},
		Comments: &comments,
	}
	if err := Resolve(cfg); err != nil {
		panic(fmt.Sprintf("compiled-in configuration is invalid: %v", err))
	}
	return cfg
}

// Init writes the compiled-in configuration to path as an editable example.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).Build()
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").WithContext("path", path).Build()
	}
	return nil
}

// Marshal renders cfg as YAML in the same shape Load accepts.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	return data, nil
}
