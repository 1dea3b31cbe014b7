package main

import (
	"fmt"
	"os"

	"github.com/saffronjam/plugify-bindgen/internal/bindgen"
	"github.com/saffronjam/plugify-bindgen/internal/common"
)

// Prints the bindings of the sample manifest without touching the disk.
func main() {
	m, err := common.ReadManifest("example/player_manager.pplugin")
	if err != nil {
		panic(err)
	}

	config := common.DefaultConfig()
	targets, err := bindgen.Targets(config.Targets, config)
	if err != nil {
		panic(err)
	}

	files, err := bindgen.Generate(m, targets)
	if err != nil {
		panic(err)
	}

	for _, p := range files.Paths() {
		fmt.Fprintf(os.Stdout, "// ===== %s =====\n%s\n", p, files[p])
	}
}
