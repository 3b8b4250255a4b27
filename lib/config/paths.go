package config

import (
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

// CfgPath is a filesystem path that, when relative, is resolved against
// the directory of the config file it was read from.
type CfgPath string

// UnmarshalBase is the directory relative CfgPaths are joined to. Parse
// sets it before decoding.
var UnmarshalBase string

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string

	err := yaml.Unmarshal(b, &path)
	if err != nil {
		return err
	}

	if path == "" || filepath.IsAbs(path) {
		*c = CfgPath(path)
	} else {
		*c = CfgPath(filepath.Join(UnmarshalBase, path))
	}
	return nil
}
