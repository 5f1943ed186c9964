package hugo

import "git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"

// Sentinel errors for stage classification. Compare with errors.Is; wrapped
// copies carry the same category and message.
var (
	ErrHugoNotFound      = errors.HugoError("hugo binary not found").Build()
	ErrHugoExecution     = errors.HugoError("hugo execution failed").Build()
	ErrUnknownTheme      = errors.ConfigError("unknown hugo theme").Build()
	ErrConfigWrite       = errors.FileSystemError("write hugo config").Build()
	ErrComponentRender   = errors.RenderError("render component").Build()
	ErrBrokenLinks       = errors.LinkError("broken links").Build()
	ErrBrokenSourceLinks = errors.LinkError("broken markdown links").Build()
)
