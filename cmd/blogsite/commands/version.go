package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"git.home.luguber.info/chenyuan/blogsite/internal/version"
)

// VersionCmd prints build information.
type VersionCmd struct {
	JSON bool `name:"json" help:"Print JSON"`
}

func (v *VersionCmd) Run(_ *Global) error {
	info := version.Get()
	if v.JSON {
		return json.NewEncoder(os.Stdout).Encode(info)
	}
	fmt.Println(info.String())
	return nil
}
