package sink

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	_ "image/png" // register decoder for DecodeConfig
	"os"
	"path/filepath"

	"github.com/matzehuels/figforge/pkg/errors"
)

// Entry describes one written figure.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
	Cached bool   `json:"cached"`
}

// WritePNG writes encoded PNG data to path, creating parent directories.
func WritePNG(path string, data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "refusing to write %s", path)
	}
	return writeAtomic(path, data)
}

// Describe builds the manifest entry for PNG data written to path.
func Describe(name, path string, data []byte, cached bool) (Entry, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", name)
	}
	if format != "png" {
		return Entry{}, errors.New(errors.ErrCodeInvalidFormat, "%s is %s, not png", name, format)
	}
	sum := sha256.Sum256(data)
	return Entry{
		Name:   name,
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
		Cached: cached,
	}, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "rename into %s", path)
	}
	return nil
}
