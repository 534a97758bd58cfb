package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/auroral-oval/internal/domain"
)

// LoadModel returns the oval model tables. With an empty path it returns the
// built-in tables; otherwise the YAML file at path overrides them. Keys left
// out of the file keep their built-in values.
func LoadModel(path string) (domain.Model, error) {
	m := domain.DefaultModel()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Model{}, fmt.Errorf("read MODEL_FILE: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return domain.Model{}, fmt.Errorf("parse MODEL_FILE %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return domain.Model{}, fmt.Errorf("invalid MODEL_FILE %s: %w", path, err)
	}
	return m, nil
}
