package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormSettings_Defaults(t *testing.T) {
	settings, err := LoadFormSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormSettings(), settings)
}

func TestLoadFormSettings_FileReplacesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"requiredFields": {"name": false, "category": true, "bank": true, "description": false}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	settings, err := LoadFormSettings(path)
	require.NoError(t, err)

	assert.Equal(t, RequiredFields{Name: false, Category: true, Bank: true, Description: false}, settings.RequiredFields)
	// Section absent from the file keeps the defaults
	assert.Equal(t, DefaultFormSettings().EnabledFeatures, settings.EnabledFeatures)
}

func TestLoadFormSettings_EnvOverrides(t *testing.T) {
	t.Setenv("REQUIRED_FIELDS_DESCRIPTION", "false")
	t.Setenv("FEATURE_NOTES", "0")

	settings, err := LoadFormSettings("")
	require.NoError(t, err)

	assert.False(t, settings.RequiredFields.Description)
	assert.False(t, settings.EnabledFeatures.Notes)
	assert.True(t, settings.RequiredFields.Name)
}

func TestLoadFormSettings_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFormSettings(path)
	assert.Error(t, err)
}
