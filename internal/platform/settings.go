package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
	"github.com/aretw0/auditnotes/pkg/scan"
)

// SettingsFile is the name of the per-project settings file.
const SettingsFile = ".auditnotes.yaml"

// ErrSettingsExist is returned by WriteSettings when the file is already there.
var ErrSettingsExist = errors.New("settings file already exists")

// Settings is the content of the settings file. Fields left empty fall back
// to the defaults.
type Settings struct {
	Markers          []string `yaml:"markers"`
	CheckableMarkers []string `yaml:"checkableMarkers"`
	FileExtensions   []string `yaml:"fileExtensions"`
	Exclude          []string `yaml:"exclude"`
	ScanMode         string   `yaml:"scanMode"`
	Document         string   `yaml:"document"`
	Versioned        bool     `yaml:"versioned"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	markers := scan.DefaultMarkerConfig()
	return Settings{
		Markers:          markers.Markers,
		CheckableMarkers: markers.Checkable,
		FileExtensions:   []string{"js", "ts", "jsx", "tsx", "sol"},
		Exclude:          append([]string(nil), fs.DefaultExclude...),
		ScanMode:         string(scan.DefaultMode),
		Document:         fs.DefaultDocumentName,
	}
}

// LoadSettings reads the settings file of root. A missing file yields the
// defaults.
func LoadSettings(root string) (Settings, error) {
	data, err := os.ReadFile(filepath.Join(root, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes settings and fills in defaults for missing fields.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	s.fill(DefaultSettings())

	if _, err := scan.ParseMode(s.ScanMode); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
}

func (s *Settings) fill(def Settings) {
	if len(s.Markers) == 0 {
		s.Markers = def.Markers
	}
	if s.CheckableMarkers == nil {
		s.CheckableMarkers = def.CheckableMarkers
	}
	if len(s.FileExtensions) == 0 {
		s.FileExtensions = def.FileExtensions
	}
	if s.Exclude == nil {
		s.Exclude = def.Exclude
	}
	if s.ScanMode == "" {
		s.ScanMode = def.ScanMode
	}
	if s.Document == "" {
		s.Document = def.Document
	}
}

// WriteSettings writes s to the settings file of root. Unless force is set,
// an existing file is left alone and ErrSettingsExist is returned.
func WriteSettings(root string, s Settings, force bool) (string, error) {
	path := filepath.Join(root, SettingsFile)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, ErrSettingsExist
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# auditnotes settings\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write settings: %w", err)
	}
	return path, nil
}
