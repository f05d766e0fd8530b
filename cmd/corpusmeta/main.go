// Command corpusmeta maintains the provenance metadata registry of a corpus
// repository. It scans corpus directories, records attribute values for
// later suggestion, and inspects or converts the registry file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/importer"
	"github.com/calliope-nlp/corpusmeta/internal/logging"
	"github.com/calliope-nlp/corpusmeta/internal/pipeline"
	"github.com/calliope-nlp/corpusmeta/internal/scan"
)

const version = "0.2.0"

// CLI defines the command-line interface for corpusmeta.
var CLI struct {
	// Global flags
	Registry string `name:"registry" short:"r" help:"Registry file path (.json, .json.xz, or .db)" default:"registry.json" type:"path"`
	Debug    bool   `help:"Enable debug logging"`
	LogJSON  bool   `name:"log-json" help:"Log in JSON format"`

	Scan        ScanCmd       `cmd:"" help:"Scan a corpus repository and update the registry"`
	Suggest     SuggestCmd    `cmd:"" help:"Print recorded values for an entity attribute"`
	RegistryOps RegistryGroup `cmd:"" name:"reg" help:"Registry file operations (init, show, convert)"`
	Pipeline    PipelineCmd   `cmd:"" help:"Check action pipeline notation"`
	Import      ImportGroup   `cmd:"" help:"Sniff metadata suggestions from content files"`
	Version     VersionCmd    `cmd:"" help:"Print version information"`
}

// storeFor selects a registry store implementation by path suffix.
func storeFor(path string) registry.Store {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		return registry.NewSQLStore(path)
	}
	return registry.NewFileStore(path)
}

// loadRegistry loads the registry from the global --registry path.
func loadRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := reg.Load(storeFor(CLI.Registry)); err != nil {
		return nil, err
	}
	return reg, nil
}

// ScanCmd scans a corpus repository root.
type ScanCmd struct {
	Root    string `arg:"" help:"Corpus repository root" type:"existingdir"`
	Scripts string `help:"Shared scripts directory (default: per-corpus scripts/)" type:"path"`
}

func (c *ScanCmd) Run() error {
	s := &scan.Scanner{
		Root:         c.Root,
		RegistryPath: CLI.Registry,
		ScriptsDir:   c.Scripts,
	}
	result, err := s.Scan(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d corpora (%d failed)\n", len(result.Corpora), len(result.Failed))
	for _, corpus := range result.Corpora {
		fmt.Printf("  %s: %d versions\n", corpus.DirName, len(corpus.Versions))
	}
	if len(result.Failed) > 0 {
		for dir, ferr := range result.Failed {
			fmt.Printf("  FAILED %s: %v\n", dir, ferr)
		}
		return errors.Wrapf(errors.ErrInvalidInput, "%d corpora failed validation", len(result.Failed))
	}
	return nil
}

// SuggestCmd prints recorded values for an entity attribute.
type SuggestCmd struct {
	Entity    string `arg:"" help:"Entity tag (action, corpus_version, corpus)"`
	Attribute string `arg:"" help:"Attribute name"`
}

func (c *SuggestCmd) Run() error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	values := reg.Suggestions(c.Entity, c.Attribute)
	if len(values) == 0 {
		fmt.Printf("no recorded values for %s.%s\n", c.Entity, c.Attribute)
		return nil
	}
	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}

// RegistryGroup contains registry file operations.
type RegistryGroup struct {
	Init    RegistryInitCmd    `cmd:"" help:"Create an empty registry file"`
	Show    RegistryShowCmd    `cmd:"" help:"Dump the registry as JSON"`
	Convert RegistryConvertCmd `cmd:"" help:"Convert the registry to another store"`
}

// RegistryInitCmd creates an empty registry file.
type RegistryInitCmd struct {
	Force bool `help:"Overwrite an existing registry file"`
}

func (c *RegistryInitCmd) Run() error {
	if !c.Force {
		if _, err := os.Stat(CLI.Registry); err == nil {
			return errors.NewState("init", "registry file already exists: "+CLI.Registry)
		}
	}

	reg := registry.New()
	if err := reg.InitEmpty(); err != nil {
		return err
	}
	if err := reg.Save(storeFor(CLI.Registry)); err != nil {
		return err
	}
	fmt.Printf("initialized empty registry at %s\n", CLI.Registry)
	return nil
}

// RegistryShowCmd dumps the registry mapping as JSON.
type RegistryShowCmd struct{}

func (c *RegistryShowCmd) Run() error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// RegistryConvertCmd rewrites the registry into another store format.
type RegistryConvertCmd struct {
	Out string `arg:"" help:"Destination registry path (.json, .json.xz, or .db)" type:"path"`
}

func (c *RegistryConvertCmd) Run() error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if err := reg.Save(storeFor(c.Out)); err != nil {
		return err
	}
	fmt.Printf("converted %s -> %s\n", CLI.Registry, c.Out)
	return nil
}

// PipelineCmd parses pipeline notation and prints the resulting steps.
type PipelineCmd struct {
	Spec string `arg:"" help:"Pipeline notation, e.g. 'tokenization txt>tok @1/tokenize.sh'"`
}

func (c *PipelineCmd) Run() error {
	steps, err := pipeline.Parse(c.Spec)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if step.Script != "" {
			fmt.Printf("%s: %s -> %s (script %s, order %d)\n",
				step.Name, step.Src, step.Tgt, step.Script, step.Order)
			continue
		}
		fmt.Printf("%s: %s -> %s\n", step.Name, step.Src, step.Tgt)
	}
	return nil
}

// ImportGroup contains metadata sniffing commands.
type ImportGroup struct {
	TMX ImportTMXCmd `cmd:"" help:"Suggest version fields from a TMX file"`
}

// ImportTMXCmd sniffs suggestions from a TMX file header.
type ImportTMXCmd struct {
	Path string `arg:"" help:"TMX file to inspect" type:"existingfile"`
}

func (c *ImportTMXCmd) Run() error {
	suggestion, err := importer.SniffTMX(c.Path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(suggestion, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("corpusmeta %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("corpusmeta"),
		kong.Description("Corpus provenance metadata registry"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level := logging.LevelInfo
	if CLI.Debug {
		level = logging.LevelDebug
	}
	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
