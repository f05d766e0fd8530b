// Package importer derives suggested metadata values from corpus content
// files. Suggestions are exactly that: they prefill fields for a new
// version entry and never bypass entity validation.
package importer

import (
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

// Suggestion holds field values sniffed from a content file, ready to be
// offered when a new corpus version is entered.
type Suggestion struct {
	Provider string   `json:"provider,omitempty"`
	Langs    []string `json:"langs,omitempty"`
	Format   string   `json:"format"`
	Encoding string   `json:"encoding"`
}

// SniffTMX reads the header and translation units of a TMX file and returns
// suggested provider, language, format and encoding values. Languages are
// reported lowercase with any region subtag stripped, source language
// first.
func SniffTMX(path string) (*Suggestion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, errors.NewParse("TMX", path, err.Error())
	}
	if xmlquery.FindOne(doc, "//tmx") == nil {
		return nil, errors.NewParse("TMX", path, "no tmx root element")
	}

	s := &Suggestion{
		Format:   "tmx",
		Encoding: "utf-8",
	}

	seen := map[string]bool{}
	addLang := func(raw string) {
		code := normalizeLang(raw)
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		s.Langs = append(s.Langs, code)
	}

	if header := xmlquery.FindOne(doc, "//header"); header != nil {
		if tool := header.SelectAttr("creationtool"); tool != "" {
			s.Provider = strings.ToLower(tool)
		}
		addLang(header.SelectAttr("srclang"))
		if enc := header.SelectAttr("o-encoding"); enc != "" {
			s.Encoding = strings.ToLower(enc)
		}
	}

	for _, tuv := range xmlquery.Find(doc, "//tu/tuv") {
		lang := tuv.SelectAttr("xml:lang")
		if lang == "" {
			lang = tuv.SelectAttr("lang")
		}
		addLang(lang)
	}

	return s, nil
}

// normalizeLang lowercases a TMX language attribute and strips the region
// subtag: "EN-US" becomes "en". The special TMX value "*all*" is dropped.
func normalizeLang(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "*all*" {
		return ""
	}
	if i := strings.IndexByte(raw, '-'); i > 0 {
		raw = raw[:i]
	}
	return raw
}
