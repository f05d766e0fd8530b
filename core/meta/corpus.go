package meta

import (
	"github.com/google/uuid"

	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/validation"
)

// Corpus is a named collection of related corpus versions sharing a common
// origin. It is the top-level, independently constructed entity; versions
// and actions are owned transitively beneath it.
type Corpus struct {
	// ID is a construction-time identifier used in logs and exports.
	ID string `json:"id"`

	// DirName is the corpus's storage directory name. The scanner checks
	// it against the actual directory; the entity itself only enforces
	// its form.
	DirName string `json:"dir_name"`

	// PrettyName is the display form of the corpus name.
	PrettyName string `json:"pretty_name"`

	// Versions is the corpus lineage, root first.
	Versions []*CorpusVersion `json:"versions"`
}

// NewCorpus validates and constructs a Corpus, recording its eligible
// attribute values in the registry. Construction is all-or-nothing.
func NewCorpus(env *Env, dirName, prettyName string, versions []*CorpusVersion) (*Corpus, error) {
	if err := env.check(); err != nil {
		return nil, err
	}

	c := &Corpus{
		ID:         uuid.New().String(),
		DirName:    dirName,
		PrettyName: prettyName,
		Versions:   versions,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	if err := env.Registry.Record(TagCorpus, c.recordFields()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Corpus) validate() error {
	if err := requireLower("dir_name", c.DirName); err != nil {
		return err
	}
	if err := validation.ValidateFilename(c.DirName); err != nil {
		return errors.NewValidationValue("dir_name", c.DirName, err.Error())
	}
	if c.PrettyName == "" {
		return errors.NewValidation("pretty_name", "must not be empty")
	}
	if len(c.Versions) == 0 {
		return errors.NewValidation("versions", "at least one version required")
	}
	return c.checkLineage()
}

// checkLineage enforces referential integrity of the predecessor chain:
// exactly one root and it comes first, every other version's prev resolves
// to a version in this corpus, and every version reaches the root. The last
// rule makes cycles among non-root versions a validation failure.
func (c *Corpus) checkLineage() error {
	root := c.Versions[0]
	if root.Prev != "" {
		return errors.NewValidationValue("prev", root.Prev,
			"first version must be the root and have no predecessor")
	}

	byPath := make(map[string]*CorpusVersion, len(c.Versions))
	for _, v := range c.Versions {
		if _, dup := byPath[v.Path]; dup {
			return errors.NewValidationValue("path", v.Path,
				"duplicate content path within corpus")
		}
		byPath[v.Path] = v
	}

	for _, v := range c.Versions[1:] {
		if v.Prev == "" {
			return errors.NewValidationValue("prev", v.Path,
				"only the first version may omit a predecessor")
		}
		if _, ok := byPath[v.Prev]; !ok {
			return errors.NewValidationValue("prev", v.Prev,
				"predecessor path not found in corpus")
		}
	}

	// Walk each chain upward. A chain longer than the version count can
	// only mean a predecessor cycle.
	for _, v := range c.Versions {
		cur := v
		for steps := 0; cur.Prev != ""; steps++ {
			if steps > len(c.Versions) {
				return errors.NewValidationValue("prev", v.Prev,
					"predecessor cycle detected")
			}
			cur = byPath[cur.Prev]
		}
	}
	return nil
}

// Root returns the corpus's original version.
func (c *Corpus) Root() *CorpusVersion {
	return c.Versions[0]
}

// recordFields declares the attribute values eligible for registry
// recording. The version collection is structured data, not a suggestion.
func (c *Corpus) recordFields() []registry.Field {
	return []registry.Field{
		{Name: "dir_name", Value: c.DirName},
		{Name: "pretty_name", Value: c.PrettyName},
	}
}
