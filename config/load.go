package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a project source holds no document.
var ErrEmptyDocument = errors.New("config: empty project document")

// Load decodes a project tree from YAML. JSON input is accepted as well,
// since it is a subset of YAML.
func Load(r io.Reader) (*Project, error) {
	var data map[string]any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("config: decode project: %w", err)
	}
	if data == nil {
		return nil, ErrEmptyDocument
	}
	return NewProject(data), nil
}

// LoadFile decodes the project tree stored in the named file.
func LoadFile(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("config: open project: %w", err)
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file: %s)", err, name)
	}
	return p, nil
}

// Encode writes the project tree as YAML.
func Encode(w io.Writer, p *Project) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p.Data()); err != nil {
		return fmt.Errorf("config: encode project: %w", err)
	}
	return enc.Close()
}
