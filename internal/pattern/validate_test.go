package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func modePtr(m Mode) *Mode    { return &m }

func newTestValidator(t *testing.T, deny ...string) (*Validator, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "lib"), 0755))

	v, err := NewValidator(root, deny)
	require.NoError(t, err)
	return v, root
}

func TestValidate(t *testing.T) {
	t.Parallel()

	v, root := newTestValidator(t)

	tests := []struct {
		name      string
		req       *SearchRequest
		expectErr string
	}{
		{name: "nil request", req: nil, expectErr: "pattern required"},
		{name: "empty pattern", req: &SearchRequest{}, expectErr: "pattern required"},
		{name: "whitespace pattern", req: &SearchRequest{Pattern: " \t\n "}, expectErr: "pattern required"},
		{
			name:      "unsupported language",
			req:       &SearchRequest{Pattern: "foo($A)", Language: strPtr("cobol")},
			expectErr: "unsupported language: cobol",
		},
		{
			name:      "context too low",
			req:       &SearchRequest{Pattern: "foo", Context: intPtr(-1)},
			expectErr: "context must be between 0 and 20",
		},
		{
			name:      "context too high",
			req:       &SearchRequest{Pattern: "foo", Context: intPtr(21)},
			expectErr: "context must be between 0 and 20",
		},
		{
			name:      "head limit zero",
			req:       &SearchRequest{Pattern: "foo", HeadLimit: intPtr(0)},
			expectErr: "headLimit must be between 1 and 1000",
		},
		{
			name:      "head limit too high",
			req:       &SearchRequest{Pattern: "foo", HeadLimit: intPtr(1001)},
			expectErr: "headLimit must be between 1 and 1000",
		},
		{
			name:      "missing path",
			req:       &SearchRequest{Pattern: "foo", Path: strPtr("does/not/exist")},
			expectErr: "path does not exist: does/not/exist",
		},
		{
			name:      "invalid mode",
			req:       &SearchRequest{Pattern: "foo", Mode: modePtr("delete")},
			expectErr: "invalid mode: delete",
		},
		{
			name:      "replace mode without replacement",
			req:       &SearchRequest{Pattern: "foo", Mode: modePtr(ModeReplace)},
			expectErr: "replacement required when mode is replace",
		},
		{name: "minimal", req: &SearchRequest{Pattern: "console.log($A)"}},
		{name: "context lower bound", req: &SearchRequest{Pattern: "foo", Context: intPtr(0)}},
		{name: "context upper bound", req: &SearchRequest{Pattern: "foo", Context: intPtr(20)}},
		{name: "head limit lower bound", req: &SearchRequest{Pattern: "foo", HeadLimit: intPtr(1)}},
		{name: "head limit upper bound", req: &SearchRequest{Pattern: "foo", HeadLimit: intPtr(1000)}},
		{name: "relative dir", req: &SearchRequest{Pattern: "foo", Path: strPtr("src")}},
		{name: "relative file", req: &SearchRequest{Pattern: "foo", Path: strPtr("src/main.go")}},
		{name: "absolute path", req: &SearchRequest{Pattern: "foo", Path: strPtr(filepath.Join(root, "src"))}},
		{
			name: "everything set",
			req: &SearchRequest{
				Pattern:     "var $A = $B",
				Replacement: strPtr("let $A = $B"),
				Path:        strPtr("src"),
				Glob:        strPtr("*.js"),
				Language:    strPtr("javascript"),
				Mode:        modePtr(ModeSearch),
				Context:     intPtr(3),
				DryRun:      boolPtr(false),
				HeadLimit:   intPtr(10),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
			assert.Equal(t, KindInvalidParams, KindOf(err))
		})
	}
}

func TestValidate_UnsupportedLanguageListsAll(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	err := v.Validate(&SearchRequest{Pattern: "foo", Language: strPtr("cobol")})
	require.Error(t, err)

	require.Len(t, SupportedLanguages, 21)
	for _, lang := range SupportedLanguages {
		assert.Contains(t, err.Error(), lang)
	}
}

func TestValidate_AllSupportedLanguages(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	for _, lang := range SupportedLanguages {
		assert.NoError(t, v.Validate(&SearchRequest{Pattern: "foo", Language: strPtr(lang)}), lang)
	}
}

func TestValidate_CheckOrder(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)

	// Every field is wrong; the pattern check must be the one reported.
	req := &SearchRequest{
		Pattern:   "  ",
		Language:  strPtr("cobol"),
		Context:   intPtr(99),
		HeadLimit: intPtr(0),
		Path:      strPtr("nope"),
	}
	err := v.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "pattern required", err.Error())

	req.Pattern = "foo"
	assert.Contains(t, v.Validate(req).Error(), "unsupported language")

	req.Language = nil
	assert.Contains(t, v.Validate(req).Error(), "context must be")

	req.Context = nil
	assert.Contains(t, v.Validate(req).Error(), "headLimit must be")

	req.HeadLimit = nil
	assert.Contains(t, v.Validate(req).Error(), "path does not exist")
}

func TestValidate_DenyRules(t *testing.T) {
	t.Parallel()

	v, root := newTestValidator(t, "vendor/**", "**/*.min.js")

	err := v.Validate(&SearchRequest{Pattern: "foo", Path: strPtr("vendor/lib")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `denied by rule "vendor/**"`)
	assert.Equal(t, KindInvalidParams, KindOf(err))

	err = v.Validate(&SearchRequest{Pattern: "foo", Path: strPtr(filepath.Join(root, "vendor", "lib"))})
	require.Error(t, err, "absolute paths are matched relative to the root")

	assert.NoError(t, v.Validate(&SearchRequest{Pattern: "foo", Path: strPtr("src")}))
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	v, root := newTestValidator(t)

	assert.Equal(t, filepath.Join(root, "src"), v.ResolvePath("src"))
	assert.Equal(t, filepath.Join(root, "src"), v.ResolvePath("./src/"))
	assert.Equal(t, root, v.ResolvePath("."))

	abs := filepath.Join(root, "src", "..", "src")
	assert.Equal(t, filepath.Join(root, "src"), v.ResolvePath(abs))
	assert.True(t, filepath.IsAbs(v.Root()))
}
