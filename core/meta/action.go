package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/validation"
)

// Action is a single processing step transforming a corpus version's
// content from one format to another, such as tokenization or a format
// conversion. An action is owned by exactly one CorpusVersion.
type Action struct {
	// ID is a construction-time identifier used in logs and exports.
	ID string `json:"id"`

	// Name of the action (e.g. "tokenization"). Should be as standard
	// a name as possible so suggestions converge.
	Name string `json:"name"`

	// Src and Tgt are the content formats before and after the action.
	Src string `json:"src"`
	Tgt string `json:"tgt"`

	// Script is the bare filename of the script implementing the action,
	// resolved inside the designated scripts directory. Empty for
	// bookkeeping-only steps.
	Script string `json:"script,omitempty"`

	// Order is the position of the action in its version's pipeline.
	// Zero is reserved for actions without a script.
	Order int `json:"order"`
}

// NewAction validates and constructs an Action, recording its eligible
// attribute values in the registry. Construction is all-or-nothing.
func NewAction(env *Env, name, src, tgt, script string, order int) (*Action, error) {
	if err := env.check(); err != nil {
		return nil, err
	}

	a := &Action{
		ID:     uuid.New().String(),
		Name:   name,
		Src:    src,
		Tgt:    tgt,
		Script: script,
		Order:  order,
	}
	if err := a.validate(env); err != nil {
		return nil, err
	}

	if err := env.Registry.Record(TagAction, a.recordFields()); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Action) validate(env *Env) error {
	if err := requireLower("name", a.Name); err != nil {
		return err
	}
	if err := requireLower("src", a.Src); err != nil {
		return err
	}
	if err := requireLower("tgt", a.Tgt); err != nil {
		return err
	}

	if a.Order < 0 {
		return errors.NewValidationValue("order", strconv.Itoa(a.Order), "must not be negative")
	}

	if a.Script == "" {
		if a.Order != 0 {
			return errors.NewValidationValue("order", strconv.Itoa(a.Order),
				"must be 0 when no script is given")
		}
		return nil
	}

	return a.validateScript(env)
}

// validateScript enforces the script reference rules: a bare filename with a
// recognized extension, resolving to a regular file directly inside the
// designated scripts directory.
func (a *Action) validateScript(env *Env) error {
	if filepath.IsAbs(a.Script) {
		return errors.NewValidationValue("script", a.Script, "must be a relative path")
	}
	if err := validation.ValidateFilename(a.Script); err != nil {
		return errors.NewValidationValue("script", a.Script, err.Error())
	}
	if ext := filepath.Ext(a.Script); !ScriptExtensions[ext] {
		return errors.NewValidationValue("script", a.Script,
			fmt.Sprintf("unrecognized script extension %q", ext))
	}

	full := filepath.Join(env.ScriptsDir, a.Script)
	info, err := os.Stat(full)
	if err != nil {
		return errors.NewValidationValue("script", a.Script, "script does not exist")
	}
	if !info.Mode().IsRegular() {
		return errors.NewValidationValue("script", a.Script, "script is not a regular file")
	}
	return nil
}

// recordFields declares, as ordered data, the attribute values eligible for
// registry recording. Absent optionals (an empty script) are skipped by the
// registry.
func (a *Action) recordFields() []registry.Field {
	return []registry.Field{
		{Name: "name", Value: a.Name},
		{Name: "src", Value: a.Src},
		{Name: "tgt", Value: a.Tgt},
		{Name: "script", Value: a.Script},
		{Name: "order", Value: strconv.Itoa(a.Order)},
	}
}
