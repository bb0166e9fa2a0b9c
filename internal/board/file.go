package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// exportFile is the on-disk layout of a board export. JSON exports decode too.
type exportFile struct {
	AuxOrigin  Point             `yaml:"aux_origin"`
	Components []exportComponent `yaml:"components"`
}

type exportComponent struct {
	Reference           string            `yaml:"reference"`
	Fields              map[string]string `yaml:"fields"`
	Position            Point             `yaml:"position"`
	Rotation            float64           `yaml:"rotation"`
	Side                int               `yaml:"side"`
	DNP                 bool              `yaml:"dnp"`
	ExcludeFromBOM      bool              `yaml:"exclude_from_bom"`
	ExcludeFromPosFiles bool              `yaml:"exclude_from_pos_files"`
}

// FileSource reads components from a board export file.
type FileSource struct {
	path   string
	parsed *exportFile
}

// NewFileSource creates a FileSource for path. The file is read lazily.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the export file path.
func (f *FileSource) Path() string {
	return f.path
}

// Name returns the board name derived from the export file name.
func (f *FileSource) Name() string {
	base := filepath.Base(f.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (f *FileSource) load() (*exportFile, error) {
	if f.parsed != nil {
		return f.parsed, nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board export: %w", err)
	}
	var parsed exportFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse board export %s: %w", f.path, err)
	}
	f.parsed = &parsed
	return f.parsed, nil
}

// Components implements Source.
func (f *FileSource) Components() ([]Component, error) {
	parsed, err := f.load()
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, len(parsed.Components))
	for i, ec := range parsed.Components {
		if ec.Reference == "" {
			return nil, fmt.Errorf("component #%d in %s has no reference", i+1, f.path)
		}
		fields := make(map[string]string, len(ec.Fields)+1)
		for k, v := range ec.Fields {
			fields[k] = v
		}
		if _, ok := fields[ReferenceField]; !ok {
			fields[ReferenceField] = ec.Reference
		}
		components = append(components, Component{
			Ref:                 ec.Reference,
			Fields:              fields,
			Position:            ec.Position,
			Rotation:            ec.Rotation,
			Side:                Side(ec.Side),
			DNP:                 ec.DNP,
			ExcludeFromBOM:      ec.ExcludeFromBOM,
			ExcludeFromPosFiles: ec.ExcludeFromPosFiles,
		})
	}
	return components, nil
}

// AuxOrigin implements Source.
func (f *FileSource) AuxOrigin() (Point, error) {
	parsed, err := f.load()
	if err != nil {
		return Point{}, err
	}
	return parsed.AuxOrigin, nil
}
