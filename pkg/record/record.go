// Package record reads and rewrites project metadata files.
//
// A record is one YAML mapping per file:
//
//	name: Drush
//	source: https://github.com/drush-ops/drush
//	homepage: https://www.drush.org
//	category:
//	  - cli
//	recommended: true
//
// Records are held as yaml.v3 node trees so that a rewrite keeps key order,
// comments and scalar quoting. Files are only written by [Record.Save];
// callers save a record only after changing it.
package record

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drupaltools/deprecaudit/pkg/errors"
)

// Field names the audit reads and writes.
const (
	KeySource      = "source"
	KeyHomepage    = "homepage"
	KeyCategory    = "category"
	KeyRecommended = "recommended"
)

// Record is one parsed project file.
type Record struct {
	Path string

	doc      *yaml.Node // DocumentNode
	root     *yaml.Node // its MappingNode
	docStart bool       // file opened with an explicit "---" marker
}

// Load reads and parses the record at path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "record %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(path, data)
}

// Parse parses data as the record stored at path.
func Parse(path string, data []byte) (*Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse %s", path)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "%s: empty document", path)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "%s: top level is not a mapping", path)
	}
	r := &Record{
		Path:     path,
		doc:      &doc,
		root:     root,
		docStart: bytes.HasPrefix(bytes.TrimPrefix(data, []byte("\uFEFF")), []byte("---")),
	}
	if _, v := r.lookup(KeyCategory); v != nil && v.Kind != yaml.SequenceNode && v.Kind != yaml.ScalarNode {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "%s: %s must be a list or a single value", path, KeyCategory)
	}
	return r, nil
}

// LoadDir loads every file in dir matching pattern, in lexical order.
func LoadDir(dir, pattern string) ([]*Record, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirNotFound, err, "projects directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	if err := errors.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "glob %s", pattern)
	}
	sort.Strings(paths)

	records := make([]*Record, 0, len(paths))
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			continue
		}
		r, err := Load(p)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Name returns the file name without directory or extension.
func (r *Record) Name() string {
	base := filepath.Base(r.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Source returns the trimmed source URL, or "" when absent or not a string.
func (r *Record) Source() string { return r.stringField(KeySource) }

// Homepage returns the trimmed homepage URL, or "" when absent or not a string.
func (r *Record) Homepage() string { return r.stringField(KeyHomepage) }

// URLs returns the non-empty source and homepage URLs, source first.
func (r *Record) URLs() []string {
	var urls []string
	for _, u := range []string{r.Source(), r.Homepage()} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Recommended reports whether the recommended flag is the YAML boolean true.
// A quoted "true" string does not count.
func (r *Record) Recommended() bool {
	_, v := r.lookup(KeyRecommended)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!bool" {
		return false
	}
	var b bool
	return v.Decode(&b) == nil && b
}

// RemoveRecommended deletes the recommended key and reports whether it was present.
func (r *Record) RemoveRecommended() bool {
	i, _ := r.lookup(KeyRecommended)
	if i < 0 {
		return false
	}
	r.root.Content = append(r.root.Content[:i], r.root.Content[i+2:]...)
	return true
}

// Marshal renders the record with two-space indentation.
func (r *Record) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if r.docStart {
		buf.WriteString("---\n")
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r.doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", r.Path)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", r.Path)
	}
	return buf.Bytes(), nil
}

// Save writes the record back to its path, keeping the file mode.
func (r *Record) Save() error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(r.Path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(r.Path, data, mode); err != nil {
		return errors.Wrap(errors.ErrCodeRecordWrite, err, "write %s", r.Path)
	}
	return nil
}

// lookup returns the index of key's key node in the root mapping and its
// value node, or -1 and nil.
func (r *Record) lookup(key string) (int, *yaml.Node) {
	for i := 0; i+1 < len(r.root.Content); i += 2 {
		if r.root.Content[i].Value == key {
			return i, r.root.Content[i+1]
		}
	}
	return -1, nil
}

func (r *Record) stringField(key string) string {
	_, v := r.lookup(key)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
		return ""
	}
	return strings.TrimSpace(v.Value)
}
