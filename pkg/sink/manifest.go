package sink

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/figforge/pkg/buildinfo"
	"github.com/matzehuels/figforge/pkg/errors"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.json"

// Manifest records what a run produced.
type Manifest struct {
	RunID       string    `json:"run_id"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Scale       float64   `json:"scale"`
	Figures     []Entry   `json:"figures"`
	Sheet       string    `json:"sheet,omitempty"`
}

// NewManifest starts a manifest for a run at the given scale.
func NewManifest(scale float64) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		Version:     buildinfo.Version,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Scale:       scale,
	}
}

// Add appends an entry.
func (m *Manifest) Add(e Entry) { m.Figures = append(m.Figures, e) }

// Sort orders entries by name so manifests from concurrent runs diff
// cleanly.
func (m *Manifest) Sort() {
	slices.SortFunc(m.Figures, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
}

// Lookup returns the entry for name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Figures {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// WriteJSON encodes the manifest as indented JSON.
func (m *Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	var buf bytes.Buffer
	if err := m.WriteJSON(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	return writeAtomic(path, buf.Bytes())
}

// ReadManifest loads a manifest written by Save.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse manifest %s", path)
	}
	return &m, nil
}
