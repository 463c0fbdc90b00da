package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	NameFile      = "name.def"
	ParamIDFile   = "paramId.def"
	ShortNameFile = "shortName.def"
	UnitsFile     = "units.def"
)

var rename = os.Rename

type outputFile struct {
	name    string
	content string
}

func (d *Definitions) files() []outputFile {
	return []outputFile{
		{name: NameFile, content: d.Name.String()},
		{name: ParamIDFile, content: d.ParamID.String()},
		{name: ShortNameFile, content: d.ShortName.String()},
		{name: UnitsFile, content: d.Units.String()},
	}
}

// WriteDefinitions writes the four definition files into dir and returns
// their paths. Every file is staged first; if any write or rename fails, the
// staged files and the files already moved into place are removed.
func WriteDefinitions(defs *Definitions, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	files := defs.files()
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p)
		}
	}

	for _, f := range files {
		tmp := filepath.Join(dir, "."+f.name+".tmp")
		if err := os.WriteFile(tmp, []byte(f.content), 0o644); err != nil {
			cleanup()
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		staged = append(staged, tmp)
	}

	paths := make([]string, 0, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.name)
		if err := rename(staged[i], target); err != nil {
			cleanup()
			for _, p := range paths {
				_ = os.Remove(p)
			}
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		paths = append(paths, target)
	}
	return paths, nil
}
