// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package javasrc extracts method declarations from Java source files and
// renders each one as a single-line signature accepted by pkg/sigparse.
//
// Extraction uses the Tree-sitter Java grammar. For every method_declaration
// the extractor produces
//
//	[access] returnType name(type1 name1, type2 name2)
//
// Non-access modifiers (static, final, ...) and annotations are kept on the
// Method but left out of the text. Declarations that use constructs outside
// the one-line grammar (type parameters, generic types, varargs, receiver
// parameters) are still returned, with Method.Unsupported explaining why.
package javasrc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Method is one method declaration found in a Java source file.
type Method struct {
	// File is the path the content was read from, as given by the caller.
	File string `json:"file"`

	// Line is the 1-based line of the declaration's first token.
	Line int `json:"line"`

	// Class is the name of the innermost enclosing type, if any.
	Class string `json:"class,omitempty"`

	Name string `json:"name"`

	// Modifiers lists every modifier keyword in source order, including
	// the access modifier.
	Modifiers []string `json:"modifiers,omitempty"`

	Annotations []string `json:"annotations,omitempty"`

	// Text is the rendered one-line signature.
	Text string `json:"text"`

	// Unsupported is non-empty when the declaration uses syntax the
	// signature grammar does not cover.
	Unsupported string `json:"unsupported,omitempty"`
}

// Extractor walks Java syntax trees for method declarations.
//
// An Extractor holds no parser state between calls and is safe for
// concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger uses slog.Default().
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractFile reads path and extracts its method declarations.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]Method, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.Extract(ctx, content, path)
}

// Extract parses Java source and returns its method declarations in source
// order. Syntax errors are logged and the recoverable part of the tree is
// still walked.
func (e *Extractor) Extract(ctx context.Context, content []byte, path string) ([]Method, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		e.logger.Warn("javasrc.syntax_errors",
			"path", path,
			"error_count", countErrors(root),
		)
	}

	w := &walker{content: content, path: path}
	w.walk(root, "")
	return w.methods, nil
}

type walker struct {
	content []byte
	path    string
	methods []Method
}

func (w *walker) walk(node *sitter.Node, class string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			class = name.Content(w.content)
		}
	case "method_declaration":
		w.methods = append(w.methods, w.method(node, class))
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walk(node.NamedChild(i), class)
	}
}

func (w *walker) method(node *sitter.Node, class string) Method {
	m := Method{
		File:  w.path,
		Line:  int(node.StartPoint().Row) + 1,
		Class: class,
	}

	access := ""
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			mod := child.Child(j)
			text := collapse(mod.Content(w.content))
			switch mod.Type() {
			case "marker_annotation", "annotation":
				m.Annotations = append(m.Annotations, text)
			case "line_comment", "block_comment":
			default:
				m.Modifiers = append(m.Modifiers, text)
				if access == "" && IsAccessModifier(text) {
					access = text
				}
			}
		}
	}

	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		m.Unsupported = "type parameters " + collapse(tp.Content(w.content))
	}

	retNode := node.ChildByFieldName("type")
	w.checkGeneric(&m, retNode)
	returnType := w.text(retNode)
	returnType += w.text(node.ChildByFieldName("dimensions"))
	m.Name = w.text(node.ChildByFieldName("name"))

	var params []string
	if list := node.ChildByFieldName("parameters"); list != nil {
		for i := 0; i < int(list.NamedChildCount()); i++ {
			p := list.NamedChild(i)
			switch p.Type() {
			case "formal_parameter":
				typeNode := p.ChildByFieldName("type")
				w.checkGeneric(&m, typeNode)
				typ := w.text(typeNode) + w.text(p.ChildByFieldName("dimensions"))
				params = append(params, typ+" "+w.text(p.ChildByFieldName("name")))
			case "spread_parameter":
				params = append(params, w.text(p))
				m.setUnsupported("varargs")
			case "receiver_parameter":
				params = append(params, w.text(p))
				m.setUnsupported("receiver parameter")
			case "line_comment", "block_comment":
			default:
				params = append(params, w.text(p))
			}
		}
	}

	var b strings.Builder
	if access != "" {
		b.WriteString(access)
		b.WriteByte(' ')
	}
	b.WriteString(returnType)
	b.WriteByte(' ')
	b.WriteString(m.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(params, ", "))
	b.WriteByte(')')
	m.Text = b.String()

	return m
}

func (m *Method) setUnsupported(reason string) {
	if m.Unsupported == "" {
		m.Unsupported = reason
	}
}

// checkGeneric marks m unsupported when typ carries type arguments, as in
// Map<String, Integer> or Map.Entry<K, V>[]. The grammar splits on spaces
// and commas, so such types cannot round-trip through the parser.
func (w *walker) checkGeneric(m *Method, typ *sitter.Node) {
	if hasTypeArguments(typ) {
		m.setUnsupported("generic type " + w.text(typ))
	}
}

func hasTypeArguments(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if node.Type() == "type_arguments" {
		return true
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if hasTypeArguments(node.NamedChild(i)) {
			return true
		}
	}
	return false
}

func (w *walker) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return collapse(node.Content(w.content))
}

// collapse folds every whitespace run (including newlines) into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func countErrors(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.Type() == "ERROR" || node.IsMissing() {
		count++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		count += countErrors(node.Child(i))
	}
	return count
}
