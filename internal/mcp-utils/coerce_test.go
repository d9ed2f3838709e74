package mcputils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockArgumentGetter implements ArgumentGetter for testing
type mockArgumentGetter struct {
	args map[string]any
}

func (m *mockArgumentGetter) GetArguments() map[string]any {
	return m.args
}

// testRequest mirrors the shape of a tool request: required string plus optional pointers.
type testRequest struct {
	Pattern string   `json:"pattern"`
	Glob    *string  `json:"glob,omitempty"`
	Context *int     `json:"context,omitempty"`
	DryRun  *bool    `json:"dryRun,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func TestCoerceBindArguments(t *testing.T) {
	t.Parallel()

	t.Run("proper types", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo($A)",
			"glob":    "*.go",
			"context": float64(3), // JSON numbers decode as float64
			"dryRun":  false,
			"tags":    []any{"a", "b"},
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))

		assert.Equal(t, "foo($A)", result.Pattern)
		require.NotNil(t, result.Glob)
		assert.Equal(t, "*.go", *result.Glob)
		require.NotNil(t, result.Context)
		assert.Equal(t, 3, *result.Context)
		require.NotNil(t, result.DryRun)
		assert.False(t, *result.DryRun)
		assert.Equal(t, []string{"a", "b"}, result.Tags)
	})

	t.Run("stringly typed values", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"context": "5",
			"dryRun":  "false",
			"tags":    `["x", "y"]`,
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))

		assert.Equal(t, 5, *result.Context)
		assert.False(t, *result.DryRun)
		assert.Equal(t, []string{"x", "y"}, result.Tags)
	})

	t.Run("absent and null stay nil", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"context": nil,
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))

		assert.Nil(t, result.Context)
		assert.Nil(t, result.DryRun)
		assert.Nil(t, result.Glob)
	})

	t.Run("zero values are kept distinct from absent", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"context": 0,
			"glob":    "",
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))

		require.NotNil(t, result.Context)
		assert.Equal(t, 0, *result.Context)
		require.NotNil(t, result.Glob)
		assert.Equal(t, "", *result.Glob)
	})

	t.Run("comma-separated fallback", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"tags":    "go,test,example",
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))
		assert.Equal(t, []string{"go", "test", "example"}, result.Tags)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern":  "foo",
			"langauge": "go",
		}}

		var result testRequest
		err := CoerceBindArguments(request, &result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "langauge")
	})

	t.Run("fractional numbers are rejected for integers", func(t *testing.T) {
		for _, v := range []any{2.5, "2.5"} {
			request := &mockArgumentGetter{args: map[string]any{
				"pattern": "foo",
				"context": v,
			}}

			var result testRequest
			err := CoerceBindArguments(request, &result)
			require.Error(t, err, "value %v", v)
			assert.Contains(t, err.Error(), "expected an integer")
		}
	})

	t.Run("non-numeric string is rejected for integers", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"context": "lots",
		}}

		var result testRequest
		assert.Error(t, CoerceBindArguments(request, &result))
	})

	t.Run("integral floats are accepted", func(t *testing.T) {
		request := &mockArgumentGetter{args: map[string]any{
			"pattern": "foo",
			"context": 20.0,
		}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result))
		assert.Equal(t, 20, *result.Context)
	})
}

func TestCoerceBindArguments_StrictScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{"empty string for bool", "dryRun", "", "expected a boolean"},
		{"zero for bool", "dryRun", float64(0), "expected a boolean"},
		{"string zero for bool", "dryRun", "0", "expected a boolean"},
		{"abbreviation for bool", "dryRun", "f", "expected a boolean"},
		{"uppercase for bool", "dryRun", "FALSE", "expected a boolean"},
		{"bool for string", "pattern", true, "expected a string"},
		{"number for string", "glob", float64(1), "expected a string"},
		{"object for string", "pattern", map[string]any{"a": 1}, "expected a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"pattern": "foo"}
			args[tt.key] = tt.value
			request := &mockArgumentGetter{args: args}

			var result testRequest
			err := CoerceBindArguments(request, &result)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoerceBindArguments_ExactBooleanStrings(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]bool{"true": true, "false": false} {
		request := &mockArgumentGetter{args: map[string]any{"pattern": "foo", "dryRun": raw}}

		var result testRequest
		require.NoError(t, CoerceBindArguments(request, &result), raw)
		require.NotNil(t, result.DryRun)
		assert.Equal(t, want, *result.DryRun, raw)
	}
}
