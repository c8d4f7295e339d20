package markdown

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown builds a markdown document incrementally. The builder itself is pure; only
// the terminal printing helpers touch stdout.
type Markdown struct {
	content strings.Builder
}

func New() *Markdown {
	return &Markdown{}
}

// AddHeading adds a heading with the specified level (1-6)
func (m *Markdown) AddHeading(text string, level int) *Markdown {
	if level < 1 || level > 6 {
		level = 1
	}
	m.content.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text))
	return m
}

func (m *Markdown) AddParagraph(text string) *Markdown {
	m.content.WriteString(fmt.Sprintf("%s\n\n", text))
	return m
}

func (m *Markdown) AddList(items []string) *Markdown {
	for _, item := range items {
		m.content.WriteString(fmt.Sprintf("- %s\n", item))
	}
	m.content.WriteString("\n")
	return m
}

// AddTable adds a table with the given headers and data rows.
func (m *Markdown) AddTable(headers []string, data [][]string) *Markdown {
	if len(headers) == 0 {
		return m
	}

	m.content.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = "---"
	}
	m.content.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range data {
		paddedRow := make([]string, len(headers))
		copy(paddedRow, row)
		m.content.WriteString("| " + strings.Join(paddedRow, " | ") + " |\n")
	}

	m.content.WriteString("\n")
	return m
}

// AddCodeBlock adds a code block with optional language specification
func (m *Markdown) AddCodeBlock(code string, language string) *Markdown {
	m.content.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", language, code))
	return m
}

func (m *Markdown) AddHorizontalRule() *Markdown {
	m.content.WriteString("---\n\n")
	return m
}

func (m *Markdown) String() string {
	return m.content.String()
}

func (m *Markdown) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(m.content.String()))
	return int64(n), err
}

// PrintToTerminal renders the document to stdout with glamour, falling back to the raw
// markdown when a terminal renderer cannot be constructed.
func (m *Markdown) PrintToTerminal() (int64, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return m.WriteTo(os.Stdout)
	}

	out, err := renderer.Render(m.content.String())
	if err != nil {
		return m.WriteTo(os.Stdout)
	}

	n, err := os.Stdout.Write([]byte(out + "\n"))
	return int64(n), err
}
