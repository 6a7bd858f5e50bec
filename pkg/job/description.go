// Package job builds a domain.Job from an on-disk description: the station
// list, the links between them (distance, capacity, local demand), any
// cross-station demand with no direct link, and the two solver settings
// (accuracy, max_saturation). It also assigns each loaded job a UUID and a
// structural hash, so cmd/mcfsolve and pkg/store can address one solve
// attempt without re-parsing its source file.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mcfsolver/pkg/apperror"
)

// Description is the on-disk shape of a job file, in either YAML or JSON.
type Description struct {
	Stations []string            `yaml:"stations" json:"stations"`
	Links    []LinkDescription   `yaml:"links" json:"links"`
	Demands  []DemandDescription `yaml:"demands" json:"demands"`
	Settings SettingsDescription `yaml:"settings" json:"settings"`
}

// LinkDescription is one routing link between two stations, with its own
// local demand.
type LinkDescription struct {
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
	Distance uint64 `yaml:"distance" json:"distance"`
	Capacity uint64 `yaml:"capacity" json:"capacity"`
	Demand   uint64 `yaml:"demand" json:"demand"`
}

// DemandDescription is demand between a (from, to) pair that has no direct
// routing link.
type DemandDescription struct {
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
	Amount uint64 `yaml:"amount" json:"amount"`
}

// SettingsDescription carries the two solver knobs: accuracy and
// max_saturation.
type SettingsDescription struct {
	Accuracy      uint64 `yaml:"accuracy" json:"accuracy"`
	MaxSaturation uint64 `yaml:"max_saturation" json:"max_saturation"`
}

// LoadFile reads and parses a job description from path, dispatching on its
// extension (.yaml, .yml, or .json).
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidJob, "failed to read job file").WithField(path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes raw description bytes, dispatching on ext (".yaml", ".yml",
// ".json", or "" which is treated as YAML).
func Parse(data []byte, ext string) (*Description, error) {
	var desc Description
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidJob, "failed to parse job description as JSON")
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &desc); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidJob, "failed to parse job description as YAML")
		}
	default:
		return nil, apperror.New(apperror.CodeInvalidJob, fmt.Sprintf("unsupported job file extension %q", ext))
	}
	return &desc, nil
}
