// Package config reads the optional coreaot.yaml project file that can
// sit next to a source file: shared extern declarations and a backend
// target triple, the only project-level settings a language with no
// modules or imports leaves room for.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ExternDecl mirrors the surface syntax of `extern fn name(T, ...): R;`
// so ExternSource can render it back out for the parser to consume.
type ExternDecl struct {
	Name     string   `yaml:"name"`
	Params   []string `yaml:"params"`
	Return   string   `yaml:"return"`
	Variadic bool     `yaml:"variadic"`
}

// Project is the decoded shape of a coreaot.yaml file.
type Project struct {
	// Target is an LLVM target triple (e.g. "x86_64-unknown-linux-gnu")
	// applied to the backend module. Empty means let LLVM pick the host
	// default.
	Target string `yaml:"target"`

	// Externs declares functions available to every source file this
	// project file governs, without repeating `extern fn` by hand in
	// each one.
	Externs []ExternDecl `yaml:"externs"`
}

const FileName = "coreaot.yaml"

// Discover looks for coreaot.yaml next to sourcePath and loads it. A
// missing file is not an error: it returns a nil *Project.
func Discover(sourcePath string) (*Project, error) {
	if sourcePath == "" || sourcePath == "<eval>" {
		return nil, nil
	}
	candidate := filepath.Join(filepath.Dir(sourcePath), FileName)
	if _, err := os.Stat(candidate); err != nil {
		return nil, nil
	}
	return Load(candidate)
}

// Load parses a coreaot.yaml file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

// ExternSource renders the project's extern declarations back into the
// `extern fn ...;` surface syntax, so they can be prepended to a source
// file's text before it reaches the lexer — the project file never
// touches the grammar itself, it just supplies more of the same text a
// source file could have written by hand.
func (p *Project) ExternSource() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, e := range p.Externs {
		b.WriteString("extern fn ")
		b.WriteString(e.Name)
		b.WriteString("(")
		b.WriteString(strings.Join(e.Params, ", "))
		if e.Variadic {
			if len(e.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteString("): ")
		b.WriteString(e.Return)
		b.WriteString(";\n")
	}
	return b.String()
}
