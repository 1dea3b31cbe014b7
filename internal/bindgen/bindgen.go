package bindgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/saffronjam/plugify-bindgen/internal/common"
)

// Status is the outcome of one manifest.
type Status int

const (
	StatusOK Status = iota
	StatusInputError
	StatusSchemaError
	StatusConflict
	StatusFilesystemError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInputError:
		return "input error"
	case StatusSchemaError:
		return "schema error"
	case StatusConflict:
		return "output conflict"
	case StatusFilesystemError:
		return "filesystem error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Request describes one run over a manifest file or a directory of them.
type Request struct {
	Manifest string // file or directory
	Output   string
	Override bool
	Targets  []Target
}

// Result is the outcome of one manifest.
type Result struct {
	Manifest string
	Status   Status
	Written  []string
	Err      error
}

type Report struct {
	Results []Result
}

// Failed reports whether any manifest did not generate.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status != StatusOK {
			return true
		}
	}
	return false
}

// Generate builds a model per target from m and renders it. Each target gets
// its own model because reserved-word renaming is target specific.
func Generate(m *common.Manifest, targets []Target) (common.Files, error) {
	files := common.Files{}
	for _, t := range targets {
		model, err := common.NewConverter(t.ReservedWords()).Convert(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		out, err := t.Generate(model)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		if err := files.Merge(out); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return files, nil
}

// Run generates every manifest of req independently. A failing manifest is
// recorded in the report and does not stop the others. The returned error
// covers problems with the request itself.
func Run(req Request) (*Report, error) {
	if len(req.Targets) == 0 {
		return nil, errors.New("no target selected")
	}

	paths, err := FindManifests(req.Manifest)
	if err != nil {
		return nil, err
	}

	log := commonlog.GetLogger("plugify-bindgen.bindgen")
	report := &Report{}
	for _, path := range paths {
		res := runOne(log, path, req)
		if res.Err != nil {
			log.Debugf("%s: %s: %v", path, res.Status, res.Err)
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func runOne(log commonlog.Logger, path string, req Request) Result {
	res := Result{Manifest: path}

	m, err := common.ReadManifest(path)
	if err != nil {
		res.Status, res.Err = StatusInputError, err
		return res
	}
	log.Infof("loaded plugin %s from %s (%d methods)", m.Name, path, len(m.Methods))

	files, err := Generate(m, req.Targets)
	if err != nil {
		res.Status, res.Err = StatusSchemaError, err
		return res
	}

	res.Written, err = common.WriteFiles(req.Output, files, req.Override)
	if err != nil {
		var conflict *common.ConflictError
		if errors.As(err, &conflict) {
			res.Status = StatusConflict
		} else {
			res.Status = StatusFilesystemError
		}
		res.Err = err
		return res
	}

	for _, p := range res.Written {
		log.Debugf("wrote %s", p)
	}
	return res
}

// FindManifests returns path itself for a file, or the .pplugin and
// .pplugin.in files of a directory in name order.
func FindManifests(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &common.InputError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &common.InputError{Path: path, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(name, ".pplugin") || strings.HasSuffix(name, ".pplugin.in") {
			paths = append(paths, filepath.Join(path, name))
		}
	}
	if len(paths) == 0 {
		return nil, &common.InputError{Path: path, Err: errors.New("no .pplugin manifests found")}
	}
	return paths, nil
}
