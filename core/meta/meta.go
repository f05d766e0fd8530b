// Package meta provides the corpus provenance entities: Corpus,
// CorpusVersion and Action. Construction is atomic validate-then-register:
// a constructor either returns a fully valid entity whose eligible attribute
// values have been recorded in the shared suggestion registry, or an error
// and no registry mutation. Entities are not mutated after construction;
// correcting metadata means building a new entity.
package meta

import (
	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/validation"
)

// Stable registry tags per entity variant. These are deliberately decoupled
// from the Go type names so renaming a type never invalidates a persisted
// registry.
const (
	TagAction        = "action"
	TagCorpusVersion = "corpus_version"
	TagCorpus        = "corpus"
)

// ScriptExtensions are the recognized action script extensions.
var ScriptExtensions = map[string]bool{
	".sh": true,
	".py": true,
	".pl": true,
}

// Env carries the shared construction context: the suggestion registry and
// the filesystem locations that content paths and script references resolve
// against. Every constructor takes an Env; there is no package-level state.
type Env struct {
	// Registry receives the eligible attribute values of every
	// successfully constructed entity. It must be initialized.
	Registry *registry.Registry

	// Root is the directory content paths are relative to,
	// typically the corpus directory.
	Root string

	// ScriptsDir is the directory action scripts must live in directly,
	// without nested subdirectories.
	ScriptsDir string
}

func (e *Env) check() error {
	if e == nil || e.Registry == nil {
		return errors.NewState("construct", "no registry in construction context")
	}
	if !e.Registry.Ready() {
		return errors.NewState("construct", "registry not initialized")
	}
	return nil
}

func requireLower(field, value string) error {
	if value == "" {
		return errors.NewValidation(field, "must not be empty")
	}
	if !validation.IsLower(value) {
		return errors.NewValidationValue(field, value, "must be lowercase")
	}
	return nil
}
