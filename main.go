package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/saffronjam/plugify-bindgen/internal/bindgen"
	"github.com/saffronjam/plugify-bindgen/internal/common"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(common.GeneratorName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [manifest] [output]\n\n", common.GeneratorName)
		fmt.Fprintln(stderr, "Generates language bindings from plugin manifests (.pplugin).")
		fmt.Fprintln(stderr, "manifest may be a file or a directory of manifests.")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	manifestPath := flags.String("manifest", "", "Path to a manifest or a directory of manifests")
	outputDir := flags.String("output", "", "Output directory (default \"./generated\")")
	lang := flags.String("lang", "", "Comma-separated targets: "+strings.Join(bindgen.Names(), ", "))
	override := flags.Bool("override", false, "Overwrite existing output files")
	configPath := flags.String("config", "", "YAML or TOML config file (default "+common.DefaultConfigFile+" if present)")
	verbose := flags.Bool("v", false, "Verbose logging")
	showVersion := flags.Bool("version", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", common.GeneratorName, version)
		return 0
	}

	rest := flags.Args()
	if *manifestPath == "" && len(rest) > 0 {
		*manifestPath, rest = rest[0], rest[1:]
	}
	if *outputDir == "" && len(rest) > 0 {
		*outputDir, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(rest, " "))
		return 1
	}
	if *manifestPath == "" {
		flags.Usage()
		return 1
	}

	config, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *outputDir != "" {
		config.Output = *outputDir
	}
	if *override {
		config.Override = true
	}
	if *lang != "" {
		config.Targets = strings.Split(*lang, ",")
	}
	if *verbose {
		config.Verbose = true
	}

	verbosity := 0
	if config.Verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	targets, err := bindgen.Targets(config.Targets, config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	report, err := bindgen.Run(bindgen.Request{
		Manifest: *manifestPath,
		Output:   config.Output,
		Override: config.Override,
		Targets:  targets,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, res := range report.Results {
		if res.Status != bindgen.StatusOK {
			fmt.Fprintf(stderr, "Error: %s: %v\n", res.Manifest, res.Err)
			continue
		}
		for _, p := range res.Written {
			fmt.Fprintf(stdout, "Generated: %s\n", p)
		}
	}

	if report.Failed() {
		return 1
	}
	return 0
}
