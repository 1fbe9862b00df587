package forms

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// fileFieldSpec is the YAML wire form of a FieldSpec.
type fileFieldSpec struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	Required      bool   `yaml:"required"`
	PasswordRole  string `yaml:"password_role"`
	Terms         bool   `yaml:"terms"`
	Label         string `yaml:"label"`
	Placeholder   string `yaml:"placeholder"`
	Meter         bool   `yaml:"meter"`
	Toggle        bool   `yaml:"toggle"`
	Node          string `yaml:"node"`
	FeedbackNode  string `yaml:"feedback_node"`
	MeterNode     string `yaml:"meter_node"`
	MeterTextNode string `yaml:"meter_text_node"`
	ToggleNode    string `yaml:"toggle_node"`
	Rule          string `yaml:"rule"`
}

// fileFormSpec is the YAML wire form of a FormSpec. Durations are strings
// in Go syntax ("2s", "1500ms").
type fileFormSpec struct {
	ID               string          `yaml:"id"`
	Title            string          `yaml:"title"`
	Fields           []fileFieldSpec `yaml:"fields"`
	SubmitNode       string          `yaml:"submit_node"`
	SubmitLabel      string          `yaml:"submit_label"`
	BusyLabel        string          `yaml:"busy_label"`
	SubmitDelay      string          `yaml:"submit_delay"`
	RedirectDelay    string          `yaml:"redirect_delay"`
	RedirectURL      string          `yaml:"redirect_url"`
	DebounceInterval string          `yaml:"debounce_interval"`
	SuccessMessage   string          `yaml:"success_message"`
}

func (f fileFormSpec) toSpec() (FormSpec, error) {
	spec := FormSpec{
		ID:             f.ID,
		Title:          f.Title,
		SubmitNode:     f.SubmitNode,
		SubmitLabel:    f.SubmitLabel,
		BusyLabel:      f.BusyLabel,
		RedirectURL:    f.RedirectURL,
		SuccessMessage: f.SuccessMessage,
	}

	var err error
	if spec.SubmitDelay, err = parseDuration(f.SubmitDelay); err != nil {
		return FormSpec{}, fmt.Errorf("form %q: submit_delay: %w", f.ID, err)
	}
	if spec.RedirectDelay, err = parseDuration(f.RedirectDelay); err != nil {
		return FormSpec{}, fmt.Errorf("form %q: redirect_delay: %w", f.ID, err)
	}
	if spec.DebounceInterval, err = parseDuration(f.DebounceInterval); err != nil {
		return FormSpec{}, fmt.Errorf("form %q: debounce_interval: %w", f.ID, err)
	}

	spec.Fields = make([]FieldSpec, 0, len(f.Fields))
	for _, fld := range f.Fields {
		spec.Fields = append(spec.Fields, FieldSpec{
			Name:          fld.Name,
			Kind:          Kind(fld.Kind),
			Required:      fld.Required,
			PasswordRole:  PasswordRole(fld.PasswordRole),
			Terms:         fld.Terms,
			Label:         fld.Label,
			Placeholder:   fld.Placeholder,
			Meter:         fld.Meter,
			Toggle:        fld.Toggle,
			Node:          fld.Node,
			FeedbackNode:  fld.FeedbackNode,
			MeterNode:     fld.MeterNode,
			MeterTextNode: fld.MeterTextNode,
			ToggleNode:    fld.ToggleNode,
			Rule:          fld.Rule,
		})
	}

	return spec, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// Store holds the known form definitions: the built-ins plus whatever
// YAML files a directory contributes. External definitions override
// built-ins with the same ID, mirroring how external scripts shadow
// embedded ones elsewhere in the codebase.
type Store struct {
	mu    sync.RWMutex
	fs    afero.Fs
	dir   string
	specs map[string]FormSpec
}

// NewStore creates a store seeded with the built-in forms. The afero
// filesystem keeps the store testable without touching the real disk.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{
		fs:    fs,
		dir:   dir,
		specs: Builtin(),
	}
}

// LoadDir reads every YAML definition in the store's directory. A missing
// directory is not an error; the built-ins remain available.
func (s *Store) LoadDir() error {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return fmt.Errorf("checking forms directory: %w", err)
	}
	if !exists {
		return nil
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return fmt.Errorf("reading forms directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := s.LoadFile(path); err != nil {
			return err
		}
	}

	return nil
}

// LoadFile reads one YAML definition and adds it to the store.
func (s *Store) LoadFile(path string) error {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("reading form definition %s: %w", path, err)
	}

	var file fileFormSpec
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing form definition %s: %w", path, err)
	}

	spec, err := file.toSpec()
	if err != nil {
		return fmt.Errorf("converting form definition %s: %w", path, err)
	}

	if err := s.Put(spec); err != nil {
		return fmt.Errorf("invalid form definition %s: %w", path, err)
	}

	return nil
}

// Put normalizes, validates and stores a definition directly, bypassing
// the file layer. Programmatic definitions use this.
func (s *Store) Put(spec FormSpec) error {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.specs[spec.ID] = spec
	s.mu.Unlock()

	return nil
}

// Remove drops a definition by ID. If a built-in with the same ID exists
// it is restored, so deleting an override file reverts to the shipped
// form.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if builtin, ok := Builtin()[id]; ok {
		s.specs[id] = builtin
		return
	}
	delete(s.specs, id)
}

// Get returns the definition for a form ID.
func (s *Store) Get(id string) (FormSpec, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spec, ok := s.specs[id]
	return spec, ok
}

// List returns all known definitions sorted by ID.
func (s *Store) List() []FormSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]FormSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// isDefinitionFile reports whether a file name looks like a YAML form
// definition.
func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
