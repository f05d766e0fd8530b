package scan

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/calliope-nlp/corpusmeta/core/meta"
	"github.com/calliope-nlp/corpusmeta/core/registry"
)

const booksManifest = `{
  "dir_name": "books",
  "pretty_name": "Books Corpus",
  "versions": [
    {
      "date": "20240101T000000",
      "path": "v1.txt",
      "provider": "opus",
      "langs": ["en"],
      "encoding": "utf-8",
      "format": "txt",
      "license": "cc-by"
    },
    {
      "date": "20240201T000000",
      "prev": "v1.txt",
      "path": "v2.txt",
      "provider": "opus",
      "langs": ["en"],
      "encoding": "utf-8",
      "format": "tok",
      "license": "cc-by",
      "actions": [
        {"name": "tokenization", "src": "txt", "tgt": "tok", "script": "tokenize.sh", "order": 1}
      ]
    }
  ]
}`

const brokenManifest = `{
  "dir_name": "broken",
  "pretty_name": "Broken",
  "versions": [
    {
      "date": "20240101T000000",
      "prev": "ghost.txt",
      "path": "v1.txt",
      "provider": "opus",
      "langs": ["en"],
      "encoding": "utf-8",
      "format": "txt",
      "license": "cc-by"
    }
  ]
}`

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// repo builds a repository with one valid corpus, one broken corpus, and
// one unrelated directory.
func repo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	books := filepath.Join(root, "books")
	write(t, filepath.Join(books, ManifestName), booksManifest)
	write(t, filepath.Join(books, "v1.txt"), "one\n")
	write(t, filepath.Join(books, "v2.txt"), "two\n")
	write(t, filepath.Join(books, "scripts", "tokenize.sh"), "#!/bin/sh\n")

	broken := filepath.Join(root, "broken")
	write(t, filepath.Join(broken, ManifestName), brokenManifest)
	write(t, filepath.Join(broken, "v1.txt"), "one\n")

	// Not a corpus: no manifest.
	write(t, filepath.Join(root, "notes", "readme.txt"), "unrelated\n")

	return root
}

func TestScan(t *testing.T) {
	root := repo(t)
	regPath := filepath.Join(t.TempDir(), "registry.json")

	s := &Scanner{Root: root, RegistryPath: regPath}
	result, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Corpora) != 1 {
		t.Fatalf("len(Corpora) = %d, want 1", len(result.Corpora))
	}
	if result.Corpora[0].DirName != "books" {
		t.Errorf("DirName = %q, want %q", result.Corpora[0].DirName, "books")
	}
	if len(result.Failed) != 1 {
		t.Fatalf("len(Failed) = %d, want 1: %v", len(result.Failed), result.Failed)
	}
	if _, ok := result.Failed["broken"]; !ok {
		t.Errorf("Failed = %v, want entry for %q", result.Failed, "broken")
	}

	// The registry was saved and holds the scanned values.
	fresh := registry.New()
	if err := fresh.Load(registry.NewFileStore(regPath)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := fresh.Suggestions(meta.TagCorpus, "dir_name"); !reflect.DeepEqual(got, []string{"books"}) {
		t.Errorf("Suggestions(corpus, dir_name) = %v, want [books]", got)
	}
	if got := fresh.Suggestions(meta.TagAction, "name"); !reflect.DeepEqual(got, []string{"tokenization"}) {
		t.Errorf("Suggestions(action, name) = %v, want [tokenization]", got)
	}
}

func TestScanDirNameMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "renamed")
	write(t, filepath.Join(dir, ManifestName), booksManifest) // declares "books"
	write(t, filepath.Join(dir, "v1.txt"), "one\n")
	write(t, filepath.Join(dir, "v2.txt"), "two\n")
	write(t, filepath.Join(dir, "scripts", "tokenize.sh"), "#!/bin/sh\n")

	s := &Scanner{Root: root, RegistryPath: filepath.Join(t.TempDir(), "registry.json")}
	result, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Corpora) != 0 {
		t.Errorf("len(Corpora) = %d, want 0", len(result.Corpora))
	}
	if _, ok := result.Failed["renamed"]; !ok {
		t.Errorf("Failed = %v, want dir_name mismatch for %q", result.Failed, "renamed")
	}
}

func TestScanExistingRegistry(t *testing.T) {
	root := repo(t)
	regPath := filepath.Join(t.TempDir(), "registry.json")

	// Seed the registry with a prior value.
	seed := registry.New()
	if err := seed.InitEmpty(); err != nil {
		t.Fatal(err)
	}
	if err := seed.Record(meta.TagCorpus, []registry.Field{{Name: "dir_name", Value: "earlier"}}); err != nil {
		t.Fatal(err)
	}
	if err := seed.Save(registry.NewFileStore(regPath)); err != nil {
		t.Fatal(err)
	}

	s := &Scanner{Root: root, RegistryPath: regPath}
	result, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := result.Registry.Suggestions(meta.TagCorpus, "dir_name")
	want := []string{"earlier", "books"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(corpus, dir_name) = %v, want %v", got, want)
	}
}

func TestScanCancelled(t *testing.T) {
	root := repo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scanner{Root: root, RegistryPath: filepath.Join(t.TempDir(), "registry.json")}
	if _, err := s.Scan(ctx); err == nil {
		t.Error("Scan() with cancelled context should fail")
	}
}

func TestScanMissingRoot(t *testing.T) {
	s := &Scanner{
		Root:         filepath.Join(t.TempDir(), "absent"),
		RegistryPath: filepath.Join(t.TempDir(), "registry.json"),
	}
	if _, err := s.Scan(context.Background()); err == nil {
		t.Error("Scan() on missing root should fail")
	}
}
