package sight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutumagi/perception/config"
)

func TestSettingsFromConfig(t *testing.T) {
	s, err := SettingsFromConfig(config.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsFromConfigInvalid(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Set("perception.sight.maxtracespertick", -1)

	_, err := SettingsFromConfig(cfg)
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	tables := []struct {
		name    string
		mutate  func(s *Settings)
		invalid bool
	}{
		{"default", func(s *Settings) {}, false},
		{"zero budget", func(s *Settings) { s.MaxTracesPerTick = 0 }, false},
		{"negative importance", func(s *Settings) { s.MaxQueryImportance = -1 }, true},
		{"negative slice", func(s *Settings) { s.MaxTimeSlicePerTick = -1 }, true},
		{"fraction over one", func(s *Settings) { s.ImportanceLimitTraceFraction = 1.5 }, true},
	}
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			s := DefaultSettings()
			table.mutate(&s)
			err := s.Validate()
			if table.invalid {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsMinimums(t *testing.T) {
	s := Settings{}
	assert.Equal(t, 1, s.traceCost())
	assert.Equal(t, 1, s.minQueriesPerTimeSliceCheck())
}
