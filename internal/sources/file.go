package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a registry definition from YAML:
//
//	national:
//	  - id: times_of_india
//	    url: https://...
//	local:
//	  kanpur:
//	    - https://...
//	lexicon:
//	  kanpur: [kanpur, uttar pradesh]
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var def Definition
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(def.National)+len(def.Global) == 0 {
		return nil, fmt.Errorf("%s: at least one national or global feed is required", path)
	}
	return New(def)
}

// Load returns the registry from path, or the built-in one when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
