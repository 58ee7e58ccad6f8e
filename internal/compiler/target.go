package compiler

import (
	"os"

	"github.com/grailbio/base/errors"

	"github.com/lhaig/lukasiewicz/internal/backend"
	"github.com/lhaig/lukasiewicz/internal/config"
)

// EmitToTarget compiles source in the given mode and writes the output
// to baseName plus the mode's extension. It returns the path written.
func EmitToTarget(source, mode, baseName string, cfg *config.Config) (string, error) {
	be, err := backend.Lookup(mode)
	if err != nil {
		return "", err
	}

	withMode := *orDefault(cfg)
	withMode.Mode = mode
	res := Compile(source, &withMode)
	if res.Diagnostics.HasErrors() {
		return "", errors.E(errors.Invalid, "compilation errors:\n"+res.Diagnostics.Format(baseName))
	}

	outPath := baseName + be.Extension()
	if err := os.WriteFile(outPath, []byte(res.Output), 0644); err != nil {
		return "", errors.E("write output", outPath, err)
	}
	return outPath, nil
}
