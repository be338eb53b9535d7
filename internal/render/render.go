// Package render prints solutions as plain text, styled terminal output, markdown or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"gusto/internal/config"
	"gusto/internal/logging"
	"gusto/internal/solver"
)

// Options selects the output format.
type Options struct {
	Format   string // one of config.ValidFormats; empty means text
	WordWrap int    // markdown wrap width, 0 disables wrapping
	// AutoStyle lets glamour pick a terminal palette. Off gives the plain "notty" style.
	AutoStyle bool
}

// OptionsFrom builds Options from the output config section.
func OptionsFrom(c config.OutputConfig) Options {
	return Options{Format: c.Format, WordWrap: c.WordWrap}
}

// Renderer writes solutions in one format.
type Renderer struct {
	opts     Options
	styles   Styles
	markdown *glamour.TermRenderer
}

// New creates a Renderer. Unknown formats are rejected here rather than at first use.
func New(opts Options) (*Renderer, error) {
	if opts.Format == "" {
		opts.Format = config.FormatText
	}
	r := &Renderer{opts: opts, styles: DefaultStyles()}

	switch opts.Format {
	case config.FormatText, config.FormatStyled, config.FormatJSON:
	case config.FormatMarkdown:
		tr, err := newMarkdownRenderer(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		r.markdown = tr
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %v)", opts.Format, config.ValidFormats)
	}
	return r, nil
}

func newMarkdownRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := glamour.WithStandardStyle("notty")
	if opts.AutoStyle {
		style = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.WordWrap))
}

// Format returns the format this renderer writes.
func (r *Renderer) Format() string { return r.opts.Format }

// Render writes one solution followed by a newline.
func (r *Renderer) Render(w io.Writer, sol solver.Solution) error {
	out, err := r.String(sol)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// String renders one solution without a trailing newline.
func (r *Renderer) String(sol solver.Solution) (string, error) {
	logging.RenderDebug("rendering %s as %s", sol.Kind, r.opts.Format)

	switch r.opts.Format {
	case config.FormatStyled:
		return r.styled(sol), nil
	case config.FormatMarkdown:
		out, err := r.markdown.Render(Markdown(sol))
		if err != nil {
			return "", fmt.Errorf("failed to render markdown: %w", err)
		}
		return strings.TrimRight(out, "\n"), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(sol, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal solution: %w", err)
		}
		return string(data), nil
	default:
		return sol.Format(), nil
	}
}

func (r *Renderer) styled(sol solver.Solution) string {
	lines := []string{
		r.styles.Banner.Render(sol.Banner()),
		r.styles.Answer.Render(sol.Answer),
	}
	for _, d := range sol.Details {
		lines = append(lines, r.styles.Detail.Render("- "+d))
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

// Markdown returns the markdown source for a solution: a heading, the answer paragraph and a bullet list.
func Markdown(sol solver.Solution) string {
	var b strings.Builder
	b.WriteString("## " + sol.Banner() + "\n\n")
	b.WriteString(markdownEscaper.Replace(sol.Answer) + "\n")
	if len(sol.Details) > 0 {
		b.WriteString("\n")
		for _, d := range sol.Details {
			b.WriteString("- " + markdownEscaper.Replace(d) + "\n")
		}
	}
	return b.String()
}
