package meta

import (
	"encoding/json"
)

// CorpusManifest mirrors the corpus.json file kept at the root of each
// corpus directory. It is the declarative form the scanner and CLI feed
// into the entity constructors; parsing it performs no validation beyond
// JSON well-formedness.
type CorpusManifest struct {
	DirName    string            `json:"dir_name"`
	PrettyName string            `json:"pretty_name"`
	Versions   []VersionManifest `json:"versions"`
}

// VersionManifest describes one corpus version in a manifest.
type VersionManifest struct {
	Date     string           `json:"date"`
	Prev     string           `json:"prev,omitempty"`
	Path     string           `json:"path"`
	Provider string           `json:"provider"`
	Langs    []string         `json:"langs"`
	Parallel bool             `json:"parallel,omitempty"`
	Encoding string           `json:"encoding"`
	Format   string           `json:"format"`
	Released string           `json:"released,omitempty"`
	License  string           `json:"license"`
	Actions  []ActionManifest `json:"actions,omitempty"`
}

// ActionManifest describes one processing action in a manifest.
type ActionManifest struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Tgt    string `json:"tgt"`
	Script string `json:"script,omitempty"`
	Order  int    `json:"order,omitempty"`
}

// ParseCorpusManifest parses a manifest from JSON.
func ParseCorpusManifest(data []byte) (*CorpusManifest, error) {
	var m CorpusManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToJSON serializes the manifest to JSON.
func (m *CorpusManifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Build constructs the full entity tree declared by the manifest: actions,
// then versions, then the corpus. The first failing child aborts the build,
// so either the whole tree is valid and registered or none of it is
// reachable through a Corpus.
func (m *CorpusManifest) Build(env *Env) (*Corpus, error) {
	versions := make([]*CorpusVersion, 0, len(m.Versions))
	for _, vm := range m.Versions {
		actions := make([]*Action, 0, len(vm.Actions))
		for _, am := range vm.Actions {
			a, err := NewAction(env, am.Name, am.Src, am.Tgt, am.Script, am.Order)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}

		v, err := NewCorpusVersion(env, VersionParams{
			Date:     vm.Date,
			Prev:     vm.Prev,
			Path:     vm.Path,
			Provider: vm.Provider,
			Langs:    vm.Langs,
			Parallel: vm.Parallel,
			Encoding: vm.Encoding,
			Format:   vm.Format,
			Released: vm.Released,
			License:  vm.License,
			Actions:  actions,
		})
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return NewCorpus(env, m.DirName, m.PrettyName, versions)
}
