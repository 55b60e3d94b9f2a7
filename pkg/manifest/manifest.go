// Package manifest reads the dependency names declared in a package.json.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sambabib/depstale/pkg/logger"
)

// FileName is the manifest looked up in the project directory.
const FileName = "package.json"

// ErrUnavailable wraps every read or parse failure. Without a manifest there
// is nothing to check, so callers treat it as fatal.
var ErrUnavailable = errors.New("manifest unavailable")

// Manifest holds the dependency names of a package.json in declaration order.
// Version constraints are not kept.
type Manifest struct {
	Name            string
	Dependencies    []string
	DevDependencies []string
}

// packageJSON mirrors the fields of package.json the checker cares about.
type packageJSON struct {
	Name            string      `json:"name"`
	Dependencies    orderedKeys `json:"dependencies"`
	DevDependencies orderedKeys `json:"devDependencies"`
}

// Read loads dir/package.json.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	logger.Debugf("Reading manifest from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrUnavailable, FileName, err)
	}
	return Parse(data)
}

// Parse decodes manifest contents.
func Parse(data []byte) (*Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %w", ErrUnavailable, FileName, err)
	}
	return &Manifest{
		Name:            pkg.Name,
		Dependencies:    []string(pkg.Dependencies),
		DevDependencies: []string(pkg.DevDependencies),
	}, nil
}

// Names returns the runtime dependencies, followed by the dev dependencies
// when includeDev is set. A name listed in both appears once.
func (m *Manifest) Names(includeDev bool) []string {
	names := make([]string, 0, len(m.Dependencies)+len(m.DevDependencies))
	seen := make(map[string]bool, cap(names))
	add := func(list []string) {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(m.Dependencies)
	if includeDev {
		add(m.DevDependencies)
	}
	return names
}

// orderedKeys decodes a JSON object into its keys, in document order.
// A null or missing field decodes to an empty list.
type orderedKeys []string

func (k *orderedKeys) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*k = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		// The constraint value is ignored, whatever its shape.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	*k = keys
	return nil
}
