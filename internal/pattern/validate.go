package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// SupportedLanguages lists the language tags ast-grep accepts for -l.
var SupportedLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "go", "html",
	"java", "javascript", "json", "kotlin", "lua", "php", "python",
	"ruby", "rust", "scala", "swift", "tsx", "typescript", "yaml",
}

var supportedLanguageSet = func() map[string]bool {
	m := make(map[string]bool, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		m[lang] = true
	}
	return m
}()

const (
	MinContextLines = 0
	MaxContextLines = 20

	MinHeadLimit = 1
	MaxHeadLimit = 1000
)

// IsSupportedLanguage reports whether lang is a known ast-grep language tag.
func IsSupportedLanguage(lang string) bool {
	return supportedLanguageSet[lang]
}

// Validator checks a SearchRequest before anything is derived from it.
type Validator struct {
	root string
	deny []denyRule
}

type denyRule struct {
	pattern string
	glob    glob.Glob
}

// NewValidator creates a validator that resolves relative paths against root
// and rejects paths matching any of the deny globs.
func NewValidator(root string, deny []string) (*Validator, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	v := &Validator{root: absRoot}
	for _, p := range deny {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid deny pattern %q: %w", p, err)
		}
		v.deny = append(v.deny, denyRule{pattern: p, glob: g})
	}
	return v, nil
}

// Root returns the directory relative paths are resolved against.
func (v *Validator) Root() string {
	return v.root
}

// Validate returns an InvalidParams error describing the first failed check.
// Checks run in a fixed order so the reported error is deterministic.
func (v *Validator) Validate(req *SearchRequest) error {
	if req == nil || strings.TrimSpace(req.Pattern) == "" {
		return invalidParams("pattern required")
	}

	if req.Language != nil && !IsSupportedLanguage(*req.Language) {
		return invalidParams("unsupported language: %s (supported: %s)",
			*req.Language, strings.Join(SupportedLanguages, ", "))
	}

	if req.Context != nil && (*req.Context < MinContextLines || *req.Context > MaxContextLines) {
		return invalidParams("context must be between %d and %d, got %d",
			MinContextLines, MaxContextLines, *req.Context)
	}

	if req.HeadLimit != nil && (*req.HeadLimit < MinHeadLimit || *req.HeadLimit > MaxHeadLimit) {
		return invalidParams("headLimit must be between %d and %d, got %d",
			MinHeadLimit, MaxHeadLimit, *req.HeadLimit)
	}

	if req.Path != nil {
		abs := v.ResolvePath(*req.Path)
		if _, err := os.Stat(abs); err != nil {
			return invalidParams("path does not exist: %s", *req.Path)
		}
		if rule, ok := v.denied(abs); ok {
			return invalidParams("path %s is denied by rule %q", *req.Path, rule)
		}
	}

	if req.Mode != nil && *req.Mode != "" && !validMode(*req.Mode) {
		return invalidParams("invalid mode: %s (valid: search, replace, count)", *req.Mode)
	}
	if req.EffectiveMode() == ModeReplace && req.Replacement == nil {
		return invalidParams("replacement required when mode is replace")
	}

	return nil
}

// ResolvePath makes p absolute, treating relative paths as relative to the root.
func (v *Validator) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(v.root, p)
}

func (v *Validator) denied(abs string) (string, bool) {
	if len(v.deny) == 0 {
		return "", false
	}
	rel, err := filepath.Rel(v.root, abs)
	if err != nil {
		rel = abs
	}
	rel = filepath.ToSlash(rel)
	for _, rule := range v.deny {
		if rule.glob.Match(rel) {
			return rule.pattern, true
		}
	}
	return "", false
}

func validMode(m Mode) bool {
	for _, valid := range ValidModes {
		if m == valid {
			return true
		}
	}
	return false
}
