package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"default", false},
		{"", false}, // default
		{"aggressive", false},
		{"conservative", false},
		{"paranoid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := PolicyByName(tt.name)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if policy.DecisionThreshold <= 0 {
				t.Error("Expected a usable policy")
			}
		})
	}
}

func TestBuiltinPoliciesAreCoherent(t *testing.T) {
	for _, policy := range []Policy{DefaultPolicy(), AggressivePolicy(), ConservativePolicy()} {
		t.Run(policy.Name, func(t *testing.T) {
			tu := policy.Tuning
			wsum := tu.TemporalFaceWeight + tu.TemporalArtifactWeight + tu.TemporalQualityWeight
			assert.InDelta(t, 1.0, wsum, 0.001, "temporal weights must sum to 1")

			// Ladder ordering, most severe first.
			assert.Greater(t, policy.CriticalConfidence, policy.HighConfidence)
			assert.Greater(t, policy.HighConfidence, policy.MediumConfidence)
			assert.Greater(t, policy.CriticalArtifact, policy.HighArtifact)

			assert.Greater(t, tu.FrequencyDivisor, 0.0)
			assert.Greater(t, tu.QualityDivisor, 0.0)
			assert.Greater(t, tu.ColorScale, 0.0)
			assert.False(t, math.Signbit(policy.JitterAmplitude))
		})
	}
}

func TestPolicyRoundTrip(t *testing.T) {
	policy := AggressivePolicy()
	path := filepath.Join(t.TempDir(), "policy.yaml")

	require.NoError(t, WritePolicy(&policy, path))

	loaded, err := ReadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, policy, *loaded)
}

func TestReadPolicyPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, writeFile(path, "name: custom\ndecision_threshold: 42\n"))

	loaded, err := ReadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", loaded.Name)
	assert.Equal(t, 42.0, loaded.DecisionThreshold)
	// Untouched fields keep default values.
	assert.Equal(t, DefaultPolicy().Tuning, loaded.Tuning)
	assert.Equal(t, DefaultPolicy().SuspiciousKeywords, loaded.SuspiciousKeywords)
}
