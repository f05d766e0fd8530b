package meta

import (
	"encoding/hex"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/calliope-nlp/corpusmeta/core/codes"
	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/validation"
)

// DateLayout is the timestamp layout version dates are written in
// (YYYYMMDDTHHMMSS).
const DateLayout = "20060102T150405"

// VersionParams carries the raw inputs for a CorpusVersion. The date is the
// unparsed timestamp string; everything else maps one-to-one onto the
// validated record.
type VersionParams struct {
	Date     string
	Prev     string
	Path     string
	Provider string
	Langs    []string
	Parallel bool
	Encoding string
	Format   string
	Released string
	License  string
	Actions  []*Action
}

// CorpusVersion is one snapshot of a corpus's content, either original or
// derived via actions from a prior version. It is owned by exactly one
// Corpus.
type CorpusVersion struct {
	// ID is a construction-time identifier used in logs and exports.
	ID string `json:"id"`

	// Date is when this version was produced.
	Date time.Time `json:"date"`

	// Prev is the content path of the predecessor version, or empty for
	// an original/root version.
	Prev string `json:"prev,omitempty"`

	// Path is the relative path to this version's content file.
	Path string `json:"path"`

	// Provider is who supplied or produced the content.
	Provider string `json:"provider"`

	// Langs are the language codes present in the content.
	Langs []string `json:"langs"`

	// Parallel marks a multi-lingual parallel corpus. Requires at least
	// two languages.
	Parallel bool `json:"parallel"`

	Encoding string `json:"encoding"`
	Format   string `json:"format"`

	// Released is the public release URL, or empty if unreleased.
	Released string `json:"released,omitempty"`

	License string `json:"license"`

	// Checksum is the BLAKE3 digest of the content file, computed at
	// construction time.
	Checksum string `json:"checksum,omitempty"`

	// Actions derive this version from Prev, in application order.
	Actions []*Action `json:"actions,omitempty"`
}

// NewCorpusVersion parses, validates and constructs a CorpusVersion,
// recording its eligible attribute values in the registry. Construction is
// all-or-nothing.
func NewCorpusVersion(env *Env, p VersionParams) (*CorpusVersion, error) {
	if err := env.check(); err != nil {
		return nil, err
	}

	date, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return nil, errors.NewValidationValue("date", p.Date,
			"must match "+DateLayout)
	}

	v := &CorpusVersion{
		ID:       uuid.New().String(),
		Date:     date,
		Prev:     p.Prev,
		Path:     p.Path,
		Provider: p.Provider,
		Langs:    p.Langs,
		Parallel: p.Parallel,
		Encoding: p.Encoding,
		Format:   p.Format,
		Released: p.Released,
		License:  p.License,
		Actions:  p.Actions,
	}
	if err := v.validate(env); err != nil {
		return nil, err
	}

	sum, err := digestFile(filepath.Join(env.Root, v.Path))
	if err != nil {
		return nil, err
	}
	v.Checksum = sum

	if err := env.Registry.Record(TagCorpusVersion, v.recordFields(p.Date)); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *CorpusVersion) validate(env *Env) error {
	if err := v.validatePath(env); err != nil {
		return err
	}
	if err := requireLower("provider", v.Provider); err != nil {
		return err
	}
	if err := requireLower("license", v.License); err != nil {
		return err
	}

	if len(v.Langs) == 0 {
		return errors.NewValidation("langs", "at least one language required")
	}
	for _, lang := range v.Langs {
		if !codes.IsLanguage(lang) {
			return errors.NewValidationValue("langs", lang, "unknown language code")
		}
	}
	if v.Parallel && len(v.Langs) < 2 {
		return errors.NewValidation("parallel",
			"a parallel corpus requires at least two languages")
	}

	if !codes.IsEncoding(v.Encoding) {
		return errors.NewValidationValue("encoding", v.Encoding, "unknown encoding")
	}
	if !codes.IsFormat(v.Format) {
		return errors.NewValidationValue("format", v.Format, "unknown format")
	}

	if v.Released != "" {
		if err := validateURL(v.Released); err != nil {
			return err
		}
	}
	return nil
}

func (v *CorpusVersion) validatePath(env *Env) error {
	if err := validation.ValidateRelPath(v.Path); err != nil {
		return errors.NewValidationValue("path", v.Path, err.Error())
	}
	if err := validation.ValidateFilename(filepath.Base(v.Path)); err != nil {
		return errors.NewValidationValue("path", v.Path, err.Error())
	}

	info, err := os.Stat(filepath.Join(env.Root, v.Path))
	if err != nil {
		return errors.NewValidationValue("path", v.Path, "content file does not exist")
	}
	if !info.Mode().IsRegular() {
		return errors.NewValidationValue("path", v.Path, "content path is not a regular file")
	}
	return nil
}

// validateURL accepts only URLs carrying both a scheme and a host.
// Malformed strings are rejected, never coerced.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewValidationValue("released", raw, "not a valid URL")
	}
	return nil
}

// recordFields declares the attribute values eligible for registry
// recording. Format, encoding and the language list are excluded: their
// valid values are already fully known from the static enumerations.
// Structured children (actions) and the content checksum are excluded as
// well, since neither is a meaningful text suggestion.
func (v *CorpusVersion) recordFields(rawDate string) []registry.Field {
	return []registry.Field{
		{Name: "date", Value: rawDate},
		{Name: "prev", Value: v.Prev},
		{Name: "path", Value: v.Path},
		{Name: "provider", Value: v.Provider},
		{Name: "parallel", Value: strconv.FormatBool(v.Parallel)},
		{Name: "released", Value: v.Released},
		{Name: "license", Value: v.License},
	}
}

func digestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
