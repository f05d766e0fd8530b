// Package scan walks a corpus repository root and rebuilds the metadata
// registry from the per-corpus manifests it finds. It is the collaborator
// that drives entity construction and the registry load/save lifecycle; the
// entities themselves never touch the registry file.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/calliope-nlp/corpusmeta/core/errors"
	"github.com/calliope-nlp/corpusmeta/core/meta"
	"github.com/calliope-nlp/corpusmeta/core/registry"
	"github.com/calliope-nlp/corpusmeta/internal/logging"
)

// ManifestName is the per-corpus manifest filename.
const ManifestName = "corpus.json"

// Scanner scans a repository of corpus directories.
type Scanner struct {
	// Root is the repository root. Each immediate subdirectory holding a
	// corpus.json is treated as one corpus.
	Root string

	// RegistryPath is the registry file to load (if present) and save.
	RegistryPath string

	// ScriptsDir overrides the scripts location for all corpora. When
	// empty, each corpus uses its own "scripts" subdirectory.
	ScriptsDir string
}

// Result reports the outcome of a scan. Corpora that fail validation do not
// abort the scan; they are collected in Failed keyed by directory name.
type Result struct {
	Corpora  []*meta.Corpus
	Failed   map[string]error
	Registry *registry.Registry
}

// Scan walks the repository, constructs every corpus, and saves the updated
// registry. The registry is loaded from RegistryPath when the file exists
// and freshly initialized otherwise.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	store := registry.NewFileStore(s.RegistryPath)
	reg := registry.New()
	if store.Exists() {
		if err := reg.Load(store); err != nil {
			return nil, errors.Wrap(err, "load registry")
		}
	} else {
		if err := reg.InitEmpty(); err != nil {
			return nil, errors.Wrap(err, "init registry")
		}
	}

	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, errors.NewIO("read", s.Root, err)
	}

	result := &Result{
		Failed:   map[string]error{},
		Registry: reg,
	}

	// Deterministic scan order regardless of filesystem.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		corpus, err := s.scanCorpus(reg, name)
		if err != nil {
			if errors.Is(err, errSkip) {
				logging.Debug("no manifest, skipping", "dir", name)
				continue
			}
			logging.CorpusFailed(name, err)
			result.Failed[name] = err
			continue
		}

		logging.CorpusScanned(corpus.DirName, len(corpus.Versions))
		result.Corpora = append(result.Corpora, corpus)
	}

	if err := reg.Save(store); err != nil {
		return nil, errors.Wrap(err, "save registry")
	}
	logging.RegistrySaved(s.RegistryPath, len(result.Corpora))

	return result, nil
}

// errSkip marks directories without a manifest.
var errSkip = errors.NewValidation("manifest", "not a corpus directory")

func (s *Scanner) scanCorpus(reg *registry.Registry, dirName string) (*meta.Corpus, error) {
	corpusDir := filepath.Join(s.Root, dirName)
	manifestPath := filepath.Join(corpusDir, ManifestName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errSkip
		}
		return nil, errors.NewIO("read", manifestPath, err)
	}

	m, err := meta.ParseCorpusManifest(data)
	if err != nil {
		return nil, errors.NewParse("manifest", manifestPath, err.Error())
	}

	// The manifest must name the directory it lives in.
	if m.DirName != dirName {
		return nil, errors.NewValidationValue("dir_name", m.DirName,
			"does not match corpus directory "+dirName)
	}

	scriptsDir := s.ScriptsDir
	if scriptsDir == "" {
		scriptsDir = filepath.Join(corpusDir, "scripts")
	}

	env := &meta.Env{
		Registry:   reg,
		Root:       corpusDir,
		ScriptsDir: scriptsDir,
	}
	return m.Build(env)
}
