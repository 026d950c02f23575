package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/core/domain"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := domain.DefaultSettings()

	require.NoError(t, s.Validate())
	assert.Equal(t, "clang", s.Compiler)
	assert.Equal(t, "ccls", s.Indexer)
	assert.Equal(t, ".ccls", s.MarkerFile)
	assert.Equal(t, "compile_flags.txt", s.FlagsFile)
	assert.Equal(t, 128, s.MaxIncludePaths)
	assert.Equal(t, 10*time.Second, s.ProbeTimeout)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Settings)
	}{
		{"empty compiler", func(s *domain.Settings) { s.Compiler = " " }},
		{"empty indexer", func(s *domain.Settings) { s.Indexer = "" }},
		{"same file names", func(s *domain.Settings) { s.FlagsFile = s.MarkerFile }},
		{"zero max include paths", func(s *domain.Settings) { s.MaxIncludePaths = 0 }},
		{"zero probe timeout", func(s *domain.Settings) { s.ProbeTimeout = 0 }},
		{"negative debounce", func(s *domain.Settings) { s.WatchDebounce = -time.Second }},
		{"unknown log level", func(s *domain.Settings) { s.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		})
	}
}
