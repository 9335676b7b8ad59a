// The lumen command reads and sets display brightness, and runs a small
// daemon driving a brightness slider popup.
package main

import (
	"os"

	"github.com/hoppxi/lumen/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
