package meta

import (
	"reflect"
	"testing"
	"time"

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

func validParams() VersionParams {
	return VersionParams{
		Date:     "20240131T120000",
		Path:     "corpus.txt",
		Provider: "opus",
		Langs:    []string{"en"},
		Encoding: "utf-8",
		Format:   "txt",
		License:  "cc-by",
	}
}

func TestNewCorpusVersion(t *testing.T) {
	env := testEnv(t)

	v, err := NewCorpusVersion(env, validParams())
	if err != nil {
		t.Fatalf("NewCorpusVersion() error = %v", err)
	}

	want := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	if !v.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", v.Date, want)
	}
	if v.Checksum == "" {
		t.Error("Checksum should be computed at construction")
	}
	if len(v.Checksum) != 64 {
		t.Errorf("Checksum length = %d, want 64 hex chars", len(v.Checksum))
	}
}

func TestNewCorpusVersionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VersionParams)
	}{
		{"malformed date", func(p *VersionParams) { p.Date = "2024-01-31 12:00" }},
		{"missing content file", func(p *VersionParams) { p.Path = "absent.txt" }},
		{"absolute path", func(p *VersionParams) { p.Path = "/etc/passwd" }},
		{"empty path", func(p *VersionParams) { p.Path = "" }},
		{"empty provider", func(p *VersionParams) { p.Provider = "" }},
		{"uppercase provider", func(p *VersionParams) { p.Provider = "Opus" }},
		{"no languages", func(p *VersionParams) { p.Langs = nil }},
		{"unknown language", func(p *VersionParams) { p.Langs = []string{"xx"} }},
		{"parallel single language", func(p *VersionParams) { p.Parallel = true }},
		{"unknown encoding", func(p *VersionParams) { p.Encoding = "utf8" }},
		{"unknown format", func(p *VersionParams) { p.Format = "docx" }},
		{"malformed release url", func(p *VersionParams) { p.Released = "not-a-url" }},
		{"scheme-only url", func(p *VersionParams) { p.Released = "https://" }},
		{"empty license", func(p *VersionParams) { p.License = "" }},
		{"uppercase license", func(p *VersionParams) { p.License = "CC-BY" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			p := validParams()
			tt.mutate(&p)

			_, err := NewCorpusVersion(env, p)
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("NewCorpusVersion() = %v, want ValidationError", err)
			}
			if got := env.Registry.Attributes(TagCorpusVersion); got != nil {
				t.Errorf("registry mutated by failed construction: %v", got)
			}
		})
	}
}

func TestNewCorpusVersionAccepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VersionParams)
	}{
		{"single known language", func(p *VersionParams) { p.Langs = []string{"en"} }},
		{"parallel two languages", func(p *VersionParams) {
			p.Parallel = true
			p.Langs = []string{"en", "de"}
		}},
		{"release url", func(p *VersionParams) { p.Released = "https://zenodo.org/record/123" }},
		{"no release", func(p *VersionParams) { p.Released = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			p := validParams()
			tt.mutate(&p)

			if _, err := NewCorpusVersion(env, p); err != nil {
				t.Errorf("NewCorpusVersion() error = %v", err)
			}
		})
	}
}

func TestVersionRegistryExclusions(t *testing.T) {
	env := testEnv(t)

	p := validParams()
	p.Released = "https://zenodo.org/record/123"
	if _, err := NewCorpusVersion(env, p); err != nil {
		t.Fatalf("NewCorpusVersion() error = %v", err)
	}

	// Statically enumerated attributes never reach the registry.
	for _, excluded := range []string{"format", "encoding", "langs", "lang", "checksum", "actions"} {
		if got := env.Registry.Suggestions(TagCorpusVersion, excluded); got != nil {
			t.Errorf("Suggestions(corpus_version, %s) = %v, want nil", excluded, got)
		}
	}

	wantAttrs := []string{"date", "license", "parallel", "path", "provider", "released"}
	if got := env.Registry.Attributes(TagCorpusVersion); !reflect.DeepEqual(got, wantAttrs) {
		t.Errorf("Attributes(corpus_version) = %v, want %v", got, wantAttrs)
	}

	if got := env.Registry.Suggestions(TagCorpusVersion, "date"); !reflect.DeepEqual(got, []string{"20240131T120000"}) {
		t.Errorf("Suggestions(corpus_version, date) = %v", got)
	}
}
