package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dkinzler/autogen/errors"
)

// Render returns the formatted source code of the file.
func (gf GeneratedFile) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := gf.File.Render(&buf); err != nil {
		return nil, errors.Newf(err, "gen", errors.Internal, "could not render %v", gf.Path)
	}
	return buf.Bytes(), nil
}

// Save writes the file to its path, creating any missing directories.
func (gf GeneratedFile) Save() error {
	if err := os.MkdirAll(filepath.Dir(gf.Path), os.ModePerm); err != nil {
		return errors.Newf(err, "gen", errors.Internal, "could not create directory for %v", gf.Path)
	}
	if err := gf.File.Save(gf.Path); err != nil {
		return errors.Newf(err, "gen", errors.Internal, "could not save file %v", gf.Path)
	}
	return nil
}
