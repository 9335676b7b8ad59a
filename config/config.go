package config

import (
	"embed"
)

// DefaultName is the name of the configuration file.
const DefaultName = "lumen.yaml"

//go:embed lumen.yaml
var embeddedFiles embed.FS

func ConfigFS() embed.FS {
	return embeddedFiles
}
