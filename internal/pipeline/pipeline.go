// Package pipeline parses the compact action-pipeline notation accepted by
// the CLI as an alternative to spelling actions out in a corpus manifest.
//
// A pipeline is a semicolon-separated list of steps:
//
//	tokenization txt>tok @1/tokenize.sh; truecase tok>tok @2/truecase.pl
//
// Each step is "name src>tgt" with an optional "@order" and "/script". A
// step without an explicit order defaults to its 1-based position when a
// script is present, and to 0 otherwise.
package pipeline

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/calliope-nlp/corpusmeta/core/errors"
)

// Step is one parsed pipeline step. It mirrors the inputs of an Action
// constructor without constructing anything.
type Step struct {
	Name   string
	Src    string
	Tgt    string
	Script string
	Order  int
}

type pipelineGrammar struct {
	Steps []*stepGrammar `parser:"@@ ( ';' @@ )*"`
}

type stepGrammar struct {
	Name   string  `parser:"@Ident"`
	Src    string  `parser:"@Ident"`
	Tgt    string  `parser:"'>' @Ident"`
	Order  *int    `parser:"( '@' @Int )?"`
	Script *string `parser:"( '/' @Ident )?"`
}

// pipelineLexer tokenizes pipeline notation. Identifiers are lowercase and
// may carry dots, so script filenames like "tokenize.sh" are single tokens.
var pipelineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-z][a-z0-9_.\-]*`},
	{Name: "Punct", Pattern: `[>;@/]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var pipelineParser = participle.MustBuild[pipelineGrammar](
	participle.Lexer(pipelineLexer),
	participle.Elide("Whitespace"),
)

// Parse parses pipeline notation into steps.
func Parse(s string) ([]Step, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("pipeline", "", "empty pipeline")
	}

	parsed, err := pipelineParser.ParseString("", s)
	if err != nil {
		return nil, errors.NewParse("pipeline", "", err.Error())
	}

	steps := make([]Step, 0, len(parsed.Steps))
	for i, sg := range parsed.Steps {
		step := Step{
			Name: sg.Name,
			Src:  sg.Src,
			Tgt:  sg.Tgt,
		}
		if sg.Script != nil {
			step.Script = *sg.Script
		}
		switch {
		case sg.Order != nil:
			step.Order = *sg.Order
		case step.Script != "":
			step.Order = i + 1
		}
		steps = append(steps, step)
	}
	return steps, nil
}
