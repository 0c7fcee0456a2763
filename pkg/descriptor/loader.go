package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/stc/ast"
	"mercator-hq/stc/pkg/stc/stcs"
	"mercator-hq/stc/pkg/stc/stcx"

	"gopkg.in/yaml.v3"
)

// Loader reads descriptor files from the file system.
type Loader struct {
	config  *LoaderConfig
	parser  *stcs.Parser
	xparser *stcx.Parser
}

// NewLoader creates a loader. A nil config selects DefaultLoaderConfig.
func NewLoader(config *LoaderConfig) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &Loader{
		config:  config,
		parser:  stcs.NewParser().WithMaxLength(config.MaxExpressionLength),
		xparser: stcx.NewParser(),
	}
}

// LoadFile loads one *.stcs or *.xml file and its optional sidecar.
func (l *Loader) LoadFile(path string) (*Descriptor, error) {
	format, ok := formatOf(path)
	if !ok {
		return nil, &LoadError{FilePath: path, Message: "unsupported file extension"}
	}

	data, info, err := l.read(path)
	if err != nil {
		return nil, err
	}

	d := &Descriptor{
		ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:    path,
		Format:  format,
		ModTime: info.ModTime(),
	}

	switch format {
	case cache.FormatSTCS:
		d.Source = stripComments(string(data))
		tree, err := l.parser.Parse(d.Source)
		if err != nil {
			return nil, &ParseError{FilePath: path, Cause: err}
		}
		d.Trees = []*ast.Tree{tree}
	case cache.FormatSTCX:
		d.Source = string(data)
		trees, err := l.xparser.Parse(d.Source)
		if err != nil {
			return nil, &ParseError{FilePath: path, Cause: err}
		}
		d.Trees = trees
	}

	sidecar, err := l.loadMetadata(path, &d.Metadata)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	h.Write([]byte(d.Source))
	h.Write([]byte{0})
	h.Write(sidecar)
	d.Hash = hex.EncodeToString(h.Sum(nil))

	return d, nil
}

// LoadDirectory loads every descriptor below dir. Files that fail are
// reported in an *ErrorList returned together with the descriptors that
// loaded; an error without descriptors means nothing could be loaded.
func (l *Loader) LoadDirectory(dir string) ([]*Descriptor, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: dir, Message: "directory not found", Cause: err}
		}
		return nil, &LoadError{FilePath: dir, Message: "failed to access directory", Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{FilePath: dir, Message: "not a directory"}
	}

	paths, err := l.Files(dir)
	if err != nil {
		return nil, err
	}

	var (
		descriptors []*Descriptor
		errList     = &ErrorList{}
		seen        = make(map[string]string)
	)
	for _, path := range paths {
		d, err := l.LoadFile(path)
		if err != nil {
			errList.Add(err)
			continue
		}
		if prev, dup := seen[d.ID]; dup {
			errList.Add(&LoadError{
				FilePath: path,
				Message:  fmt.Sprintf("resource id %q already defined by %q", d.ID, prev),
			})
			continue
		}
		seen[d.ID] = path
		descriptors = append(descriptors, d)
	}

	if errList.HasErrors() {
		return descriptors, errList
	}
	return descriptors, nil
}

func (l *Loader) read(path string) ([]byte, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		msg := "failed to access file"
		switch {
		case os.IsNotExist(err):
			msg = "file not found"
		case os.IsPermission(err):
			msg = "permission denied"
		}
		return nil, nil, &LoadError{FilePath: path, Message: msg, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}
	if l.config.MaxFileSize > 0 && info.Size() > l.config.MaxFileSize {
		return nil, nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return nil, nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8 encoding"}
	}
	return data, info, nil
}

// loadMetadata decodes the sidecar of path into md and returns its raw
// bytes. A missing sidecar is not an error.
func (l *Loader) loadMetadata(path string, md *Metadata) ([]byte, error) {
	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ExtMetadata
	data, err := os.ReadFile(sidecar)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &LoadError{FilePath: sidecar, Message: "failed to read metadata", Cause: err}
	}
	if err := yaml.Unmarshal(data, md); err != nil {
		return nil, &ParseError{FilePath: sidecar, Cause: err}
	}
	return data, nil
}

// Files lists the descriptor files below dir in lexical order.
func (l *Loader) Files(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := formatOf(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{FilePath: dir, Message: "failed to walk directory", Cause: err}
	}
	sort.Strings(files)
	return files, nil
}

func formatOf(path string) (cache.Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSTCS:
		return cache.FormatSTCS, true
	case ExtSTCX:
		return cache.FormatSTCX, true
	}
	return "", false
}

// stripComments drops lines whose first non-blank character is '#' and
// joins the rest with single spaces.
func stripComments(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
