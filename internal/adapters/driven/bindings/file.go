package bindings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// File represents the structure of a bindings file. Both fields hold
// whitespace-delimited lists with 1:1 positional correspondence, exactly as
// the inline request_attributes / assertion_attributes options do.
//
// YAML example:
//
//	request_attributes: |
//	  UNIQUE_ID
//	  REMOTE_USER
//	assertion_attributes: |
//	  uid
//	  [user]@vt.edu
type File struct {
	RequestAttributes   string `json:"request_attributes" yaml:"request_attributes"`
	AssertionAttributes string `json:"assertion_attributes" yaml:"assertion_attributes"`
}

// LoadFile reads a JSON or YAML bindings file. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}

	var file File
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse YAML bindings file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse JSON bindings file: %w", err)
		}
	}
	return &file, nil
}

// Bindings parses the file's lists into bindings.
func (f *File) Bindings() (domain.Bindings, error) {
	return domain.NewBindings(f.RequestAttributes, f.AssertionAttributes)
}

// Load reads path and builds its bindings.
func Load(path string) (domain.Bindings, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := file.Bindings()
	if err != nil {
		return nil, fmt.Errorf("bindings file %s: %w", path, err)
	}
	return b, nil
}
