package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/agnivade/levenshtein"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var metricSamples = []string{
	"", "a", "ab", "ba", "cat", "dog", "helloworld", "hellowrold",
	"kitten", "sitting", "straße", "strasse", "日本語", "日本",
}

func TestMetric(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"levenshtein", false},
		{" Levenshtein ", false},
		{"damerau", false},
		{"osa", false},
		{"jaro", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Metric(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownMetric))
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestMetricContract(t *testing.T) {
	metrics := map[string]Func{"levenshtein": Levenshtein, "damerau": Damerau}
	for name, f := range metrics {
		t.Run(name, func(t *testing.T) {
			for _, a := range metricSamples {
				assert.Equal(t, 1.0, f(a, a), "reflexive %q", a)
				for _, b := range metricSamples {
					v := f(a, b)
					assert.Equal(t, v, f(b, a), "symmetric %q %q", a, b)
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 1.0)
				}
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"helloworld", "hellowrold", 0.8},
		{"cat", "dog", 0},
		{"kitten", "sitting", 4.0 / 7.0},
		{"", "abc", 0},
		{"日本語", "日本", 2.0 / 3.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Levenshtein(tt.a, tt.b), 1e-12, "%q %q", tt.a, tt.b)
	}
	// exact: compared against 80/100 at the threshold
	assert.Equal(t, 80.0/100, Levenshtein("helloworld", "hellowrold"))
}

func TestDamerau(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"helloworld", "hellowrold", 0.9},
		{"ab", "ba", 0.5},
		{"ca", "abc", 0},
		{"kitten", "sitting", 4.0 / 7.0},
		{"", "", 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Damerau(tt.a, tt.b), 1e-12, "%q %q", tt.a, tt.b)
	}
}

func TestDamerauLevenshtein(t *testing.T) {
	assert.Equal(t, 0, damerauLevenshtein("abc", "abc"))
	assert.Equal(t, 1, damerauLevenshtein("abcd", "abdc"))
	assert.Equal(t, 3, damerauLevenshtein("", "abc"))
	assert.Equal(t, 3, damerauLevenshtein("abc", ""))
	// OSA does not edit a substring twice
	assert.Equal(t, 3, damerauLevenshtein("ca", "abc"))
}

func TestWideLevenshtein_AgreesWithLibrary(t *testing.T) {
	for _, a := range metricSamples {
		for _, b := range metricSamples {
			assert.Equal(t, levenshtein.ComputeDistance(a, b), wideLevenshtein(a, b), "%q vs %q", a, b)
		}
	}
}

func TestLevenshtein_BeyondUint16(t *testing.T) {
	long := strings.Repeat("a", MaxTokenRunes+100)

	assert.Equal(t, MaxTokenRunes+100, levenshteinDistance(long, "b"))
	assert.Equal(t, 0.0, Levenshtein(long, "b"))
	assert.InDelta(t, 1.0/float64(MaxTokenRunes+100), Levenshtein(long, "a"), 1e-12)
}
