package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// RequiredFields toggles which optional debt fields must be filled in
type RequiredFields struct {
	Name        bool `json:"name"`
	Category    bool `json:"category"`
	Bank        bool `json:"bank"`
	Description bool `json:"description"`
}

// EnabledFeatures gates whole feature paths (reference data, notes)
type EnabledFeatures struct {
	Categories bool `json:"categories"`
	Banks      bool `json:"banks"`
	Notes      bool `json:"notes"`
}

// FormSettings is the deployment-time policy consumed by validation and by
// whichever client renders the debt form.
type FormSettings struct {
	RequiredFields  RequiredFields  `json:"requiredFields"`
	EnabledFeatures EnabledFeatures `json:"enabledFeatures"`
}

// DefaultFormSettings returns the settings used when nothing is configured
func DefaultFormSettings() FormSettings {
	return FormSettings{
		RequiredFields: RequiredFields{
			Name:        true,
			Category:    false,
			Bank:        false,
			Description: true,
		},
		EnabledFeatures: EnabledFeatures{
			Categories: true,
			Banks:      true,
			Notes:      true,
		},
	}
}

// LoadFormSettings starts from the defaults, replaces whole sections present in
// the optional JSON file, then applies per-flag environment overrides.
func LoadFormSettings(path string) (FormSettings, error) {
	settings := DefaultFormSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := settings.merge(data); err != nil {
			return settings, fmt.Errorf("invalid settings file %s: %w", path, err)
		}
	}

	rf := &settings.RequiredFields
	rf.Name = getEnvAsBool("REQUIRED_FIELDS_NAME", rf.Name)
	rf.Category = getEnvAsBool("REQUIRED_FIELDS_CATEGORY", rf.Category)
	rf.Bank = getEnvAsBool("REQUIRED_FIELDS_BANK", rf.Bank)
	rf.Description = getEnvAsBool("REQUIRED_FIELDS_DESCRIPTION", rf.Description)

	ef := &settings.EnabledFeatures
	ef.Categories = getEnvAsBool("FEATURE_CATEGORIES", ef.Categories)
	ef.Banks = getEnvAsBool("FEATURE_BANKS", ef.Banks)
	ef.Notes = getEnvAsBool("FEATURE_NOTES", ef.Notes)

	return settings, nil
}

func (s *FormSettings) merge(data []byte) error {
	var partial struct {
		RequiredFields  *RequiredFields  `json:"requiredFields"`
		EnabledFeatures *EnabledFeatures `json:"enabledFeatures"`
	}
	if err := json.Unmarshal(data, &partial); err != nil {
		return err
	}
	if partial.RequiredFields != nil {
		s.RequiredFields = *partial.RequiredFields
	}
	if partial.EnabledFeatures != nil {
		s.EnabledFeatures = *partial.EnabledFeatures
	}
	return nil
}
