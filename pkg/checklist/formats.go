package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/auditnotes/pkg/core"
)

// Serializer renders a collection in one export format.
type Serializer interface {
	Serialize(c *core.Collection) ([]byte, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(c *core.Collection) ([]byte, error)

// Serialize calls f(c).
func (f SerializerFunc) Serialize(c *core.Collection) ([]byte, error) {
	return f(c)
}

// DefaultSerializers returns the export formats by name.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		"md":   SerializerFunc(serializeMarkdown),
		"json": SerializerFunc(serializeJSON),
		"yaml": SerializerFunc(serializeYAML),
		"html": NewHTMLSerializer(),
	}
}

// Formats returns the names of the default export formats, sorted.
func Formats() []string {
	names := make([]string, 0, 4)
	for name := range DefaultSerializers() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export renders c in the named format.
func Export(c *core.Collection, format string) ([]byte, error) {
	s, ok := DefaultSerializers()[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return s.Serialize(c)
}

func serializeMarkdown(c *core.Collection) ([]byte, error) {
	return []byte(Encode(c)), nil
}

// export is the structured form shared by the JSON and YAML formats.
type export struct {
	Files   []*core.FileEntry `json:"files" yaml:"files"`
	Notes   int               `json:"notes" yaml:"notes"`
	Checked int               `json:"checked" yaml:"checked"`
}

func newExport(c *core.Collection) export {
	files := c.Files()
	if files == nil {
		files = []*core.FileEntry{}
	}
	return export{Files: files, Notes: c.NoteCount(), Checked: c.CheckedCount()}
}

func serializeJSON(c *core.Collection) ([]byte, error) {
	data, err := json.MarshalIndent(newExport(c), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func serializeYAML(c *core.Collection) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(newExport(c)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLSerializer renders the checklist as a standalone HTML page.
// The markdown document is converted with goldmark, task list items included.
type HTMLSerializer struct {
	engine goldmark.Markdown
}

// NewHTMLSerializer creates an HTMLSerializer with GFM enabled.
func NewHTMLSerializer() *HTMLSerializer {
	return &HTMLSerializer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.TaskList),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Audit Notes</title>
</head>
<body>
<p>{{.Checked}}/{{.Notes}} notes checked</p>
{{.Body}}
</body>
</html>
`))

// Serialize implements Serializer.
func (s *HTMLSerializer) Serialize(c *core.Collection) ([]byte, error) {
	var body bytes.Buffer
	if err := s.engine.Convert([]byte(Encode(c)), &body); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Notes   int
		Checked int
		Body    template.HTML
	}{
		Notes:   c.NoteCount(),
		Checked: c.CheckedCount(),
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		return nil, err
	}
	return page.Bytes(), nil
}
