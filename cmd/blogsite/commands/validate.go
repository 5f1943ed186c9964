package commands

import (
	"fmt"
)

// ValidateCmd loads the configuration through the full pipeline and reports
// what it resolved to.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if cfg.Comments != nil {
		if err := cfg.Comments.Validate(); err != nil {
			return err
		}
	}
	fmt.Printf("Configuration valid: %s\n", cfg.Title)
	fmt.Printf("  locales:  %v (default %s)\n", cfg.I18n.Locales, cfg.DefaultLocale())
	fmt.Printf("  navbar:   %d item(s)\n", len(cfg.Navbar.Items))
	fmt.Printf("  theme:    %s (code %s / %s)\n", cfg.Hugo.Theme, cfg.Prism.Theme, cfg.Prism.DarkTheme)
	fmt.Printf("  snapshot: %s\n", cfg.Snapshot())
	return nil
}
