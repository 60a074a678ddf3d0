package sourcemap

import (
	"encoding/json"
	"sort"
	"strings"
)

// Position in a file, with a 1-based line and a 0-based column.
type Position struct {
	Line   int
	Column int
}

// Mapping ties a position in generated output to the position in the source
// it came from. Mappings with a zero Original.Line only mark a generated
// position.
type Mapping struct {
	Generated Position
	Original  Position
	Source    string
	Name      string
}

// Sink receives mappings as output is produced.
type Sink interface {
	AddMapping(m Mapping)
}

// Generator accumulates mappings and encodes them as a version 3 source map.
type Generator struct {
	file       string
	sourceRoot string

	mappings []Mapping

	sources     []string
	sourceIndex map[string]int
	names       []string
	nameIndex   map[string]int
	contents    map[string]string
}

// NewGenerator returns an empty generator for the generated file name.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:        file,
		sourceIndex: make(map[string]int),
		nameIndex:   make(map[string]int),
		contents:    make(map[string]string),
	}
}

// File returns the name of the generated file.
func (g *Generator) File() string {
	return g.file
}

// SetSourceRoot sets the prefix consumers add to every source name.
func (g *Generator) SetSourceRoot(root string) {
	g.sourceRoot = root
}

// AddMapping implements Sink.
func (g *Generator) AddMapping(m Mapping) {
	if m.Original.Line > 0 {
		g.addSource(m.Source)
		if m.Name != "" {
			if _, ok := g.nameIndex[m.Name]; !ok {
				g.nameIndex[m.Name] = len(g.names)
				g.names = append(g.names, m.Name)
			}
		}
	}
	g.mappings = append(g.mappings, m)
}

func (g *Generator) addSource(source string) int {
	if i, ok := g.sourceIndex[source]; ok {
		return i
	}
	g.sourceIndex[source] = len(g.sources)
	g.sources = append(g.sources, source)
	return len(g.sources) - 1
}

// SetSourceContent embeds the text of a source in the map.
func (g *Generator) SetSourceContent(source, content string) {
	g.addSource(source)
	g.contents[source] = content
}

// Mappings returns the mappings added so far, in the order they were added.
func (g *Generator) Mappings() []Mapping {
	return append([]Mapping(nil), g.mappings...)
}

// Sources returns the distinct source names in order of first use.
func (g *Generator) Sources() []string {
	return append([]string(nil), g.sources...)
}

// Raw is the JSON form of a version 3 source map.
type Raw struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
}

// Raw returns the map in its serializable form.
func (g *Generator) Raw() Raw {
	raw := Raw{
		Version:    3,
		File:       g.file,
		SourceRoot: g.sourceRoot,
		Sources:    append([]string{}, g.sources...),
		Names:      append([]string{}, g.names...),
		Mappings:   g.encodeMappings(),
	}
	if len(g.contents) > 0 {
		raw.SourcesContent = make([]*string, len(g.sources))
		for i, s := range g.sources {
			if c, ok := g.contents[s]; ok {
				c := c
				raw.SourcesContent[i] = &c
			}
		}
	}
	return raw
}

// MarshalJSON implements json.Marshaler.
func (g *Generator) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Raw())
}

// String returns the JSON encoding of the map.
func (g *Generator) String() string {
	buf, err := g.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(buf)
}

func (g *Generator) encodeMappings() string {
	sorted := g.Mappings()
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Generated, sorted[j].Generated
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var b strings.Builder
	var prevSource, prevOrigLine, prevOrigCol, prevName int
	prevGenLine, prevGenCol := 1, 0

	for i, m := range sorted {
		if m.Generated.Line != prevGenLine {
			prevGenCol = 0
			for prevGenLine < m.Generated.Line {
				b.WriteByte(';')
				prevGenLine++
			}
		} else if i > 0 {
			if m == sorted[i-1] {
				continue
			}
			b.WriteByte(',')
		}

		writeVLQ(&b, m.Generated.Column-prevGenCol)
		prevGenCol = m.Generated.Column

		if m.Original.Line <= 0 {
			continue
		}
		source := g.sourceIndex[m.Source]
		writeVLQ(&b, source-prevSource)
		prevSource = source

		writeVLQ(&b, m.Original.Line-1-prevOrigLine)
		prevOrigLine = m.Original.Line - 1

		writeVLQ(&b, m.Original.Column-prevOrigCol)
		prevOrigCol = m.Original.Column

		if m.Name != "" {
			name := g.nameIndex[m.Name]
			writeVLQ(&b, name-prevName)
			prevName = name
		}
	}
	return b.String()
}
