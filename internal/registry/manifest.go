package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional per-module overlay read from the modules
// directory. Files are named after the module they configure:
// <modules-dir>/<name>.yaml. A module without a manifest runs with defaults.
type Manifest struct {
	Enabled  *bool          `yaml:"enabled"`
	Settings map[string]any `yaml:"settings"`
}

func (m *Manifest) enabled() bool {
	return m == nil || m.Enabled == nil || *m.Enabled
}

// loadManifests reads every *.yaml / *.yml overlay under dir, keyed by module
// name. A missing directory is not an error. A file that cannot be read or
// parsed yields a per-module DiscoveryError; the rest of the directory is
// still loaded.
func loadManifests(dir string) (map[string]*Manifest, []error) {
	if dir == "" {
		return nil, nil
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("read modules dir %s: %w", dir, err)}
	}

	var fileNames []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		fileNames = append(fileNames, entry.Name())
	}
	sort.Strings(fileNames)

	manifests := make(map[string]*Manifest)
	var errs []error
	for _, fileName := range fileNames {
		moduleName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		raw, err := os.ReadFile(filepath.Join(dir, fileName))
		if err != nil {
			errs = append(errs, &DiscoveryError{Module: moduleName, Err: err})
			continue
		}
		var manifest Manifest
		if err := yaml.Unmarshal(raw, &manifest); err != nil {
			errs = append(errs, &DiscoveryError{Module: moduleName, Err: fmt.Errorf("parse manifest: %w", err)})
			continue
		}
		if _, exists := manifests[moduleName]; exists {
			// Both .yaml and .yml present for the same module.
			errs = append(errs, &DiscoveryError{Module: moduleName, Err: fmt.Errorf("duplicate manifest %s", fileName)})
			continue
		}
		manifests[moduleName] = &manifest
	}
	return manifests, errs
}
