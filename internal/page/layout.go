package page

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the on-disk description of a page.
type Layout struct {
	Viewport Viewport   `yaml:"viewport"`
	Elements []*Element `yaml:"elements"`
}

// ParseLayout builds a document from YAML.
func ParseLayout(data []byte) (*Document, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if l.Viewport.Width <= 0 || l.Viewport.Height <= 0 {
		return nil, fmt.Errorf("parse layout: viewport must have a positive size")
	}

	doc := NewDocument(l.Viewport)
	for i, el := range l.Elements {
		if el == nil {
			continue
		}
		if el.Tag == "" {
			return nil, fmt.Errorf("parse layout: element %d has no tag", i)
		}
		el.Tag = strings.ToUpper(el.Tag)
		doc.Append(el)
	}
	return doc, nil
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	doc, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Default returns the built-in demo page.
func Default() *Document {
	doc, err := ParseLayout(defaultLayout)
	if err != nil {
		panic(err) // embedded layout is part of the binary
	}
	return doc
}
