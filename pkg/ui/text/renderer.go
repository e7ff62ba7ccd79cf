// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/scanner"
)

// Styles decorate the pieces of a rendered report. The zero value renders
// plain text.
type Styles struct {
	Title   func(string) string
	Outcome func(outcome, s string) string
	Path    func(string) string
	Muted   func(string) string
	Warning func(string) string
	Error   func(string) string
	Summary func(string) string

	// Display adds English locale names next to directory names.
	Display bool
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	styles Styles
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewWithStyles(output, Styles{})
}

// NewWithStyles creates a renderer that decorates output with styles
func NewWithStyles(output io.Writer, styles Styles) (*Renderer, error) {
	return &Renderer{output: output, styles: styles}, nil
}

// RenderResult renders any result type as text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *report.Report:
		r.writeReport(&b, v)
	case *report.NormalizeReport:
		r.writeNormalizeReport(&b, v)
	case *scanner.Result:
		r.writeScan(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "%s %v\n", apply(r.styles.Error, "Error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) outcome(outcome, s string) string {
	if r.styles.Outcome == nil {
		return s
	}
	return r.styles.Outcome(outcome, s)
}

func (r *Renderer) dryRun(dry bool) string {
	if !dry {
		return ""
	}
	return " " + apply(r.styles.Muted, "(dry run)")
}

func (r *Renderer) display(name string) string {
	if !r.styles.Display || name == "" {
		return ""
	}
	return " " + apply(r.styles.Muted, "("+name+")")
}

func (r *Renderer) writeReport(b *strings.Builder, rep *report.Report) {
	fmt.Fprintf(b, "%s %s%s\n", apply(r.styles.Title, "Consolidated"), apply(r.styles.Path, rep.Root), r.dryRun(rep.DryRun))
	if len(rep.Dirs) == 0 {
		fmt.Fprintf(b, "  %s\n", apply(r.styles.Muted, "no variant directories found"))
	}

	for _, d := range rep.Dirs {
		outcome := string(d.Outcome)
		if d.Failed {
			outcome = "failed"
		}
		label := r.outcome(outcome, fmt.Sprintf("%-9s", outcome))

		switch {
		case d.Outcome == report.OutcomeMerged && !d.Failed:
			fmt.Fprintf(b, "  %s %s -> %s%s %s\n", label, d.Name, d.Base, r.display(d.Display),
				apply(r.styles.Muted, fileCount(d)))
		default:
			fmt.Fprintf(b, "  %s %s%s: %s\n", label, d.Name, r.display(d.Display), d.Reason)
		}
	}

	r.writeRecords(b, rep.Warnings(), rep.Errors())

	summary := fmt.Sprintf("%d merged, %d skipped, %d excepted, %d failed; %d files moved, %d overwritten",
		rep.Merged, rep.Skipped, rep.Excepted, rep.Failed, rep.FilesMoved, rep.Overwrites)
	fmt.Fprintf(b, "\n%s\n", apply(r.styles.Summary, summary))
}

func fileCount(d report.DirResult) string {
	s := fmt.Sprintf("(%d files", d.FilesMoved)
	if d.FilesMoved == 1 {
		s = "(1 file"
	}
	if n := len(d.Overwritten); n > 0 {
		s += fmt.Sprintf(", %d overwritten", n)
	}
	return s + ")"
}

func (r *Renderer) writeRecords(b *strings.Builder, warnings, errs []report.Record) {
	if len(warnings) > 0 {
		fmt.Fprintf(b, "\n%s\n", apply(r.styles.Warning, "Warnings:"))
		for _, w := range warnings {
			fmt.Fprintf(b, "  %s %s: %s\n", apply(r.styles.Warning, "!"), w.Dir, w.Message)
		}
	}
	if len(errs) > 0 {
		fmt.Fprintf(b, "\n%s\n", apply(r.styles.Error, "Errors:"))
		for _, e := range errs {
			fmt.Fprintf(b, "  %s %s: %s\n", apply(r.styles.Error, "x"), location(e), e.Message)
		}
	}
}

// location names the file a record is about. Normalizer records already
// carry the directory in the file path.
func location(rec report.Record) string {
	switch {
	case rec.File == "":
		return rec.Dir
	case strings.HasPrefix(rec.File, rec.Dir+"/"):
		return rec.File
	default:
		return rec.Dir + "/" + rec.File
	}
}

func (r *Renderer) writeNormalizeReport(b *strings.Builder, rep *report.NormalizeReport) {
	fmt.Fprintf(b, "%s %s%s\n", apply(r.styles.Title, "Normalized"), apply(r.styles.Path, rep.Root), r.dryRun(rep.DryRun))
	if len(rep.Files) == 0 {
		fmt.Fprintf(b, "  %s\n", apply(r.styles.Muted, "nothing to replace"))
	}
	for _, f := range rep.Files {
		fmt.Fprintf(b, "  %s %s\n", f.Path, apply(r.styles.Muted, plural(f.Replacements, "replacement")))
	}

	r.writeRecords(b, nil, rep.Errors())

	summary := fmt.Sprintf("%s processed, %d modified, %s",
		plural(rep.FilesProcessed, "file"), rep.FilesModified, plural(rep.Replacements, "replacement"))
	fmt.Fprintf(b, "\n%s\n", apply(r.styles.Summary, summary))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (r *Renderer) writeScan(b *strings.Builder, res *scanner.Result) {
	fmt.Fprintf(b, "%s %s\n", apply(r.styles.Title, "Resource root"), apply(r.styles.Path, res.Root))
	if res.Default {
		fmt.Fprintf(b, "  %s\n", apply(r.styles.Muted, "default directory present"))
	}

	r.writeDirs(b, "Bases", res.Bases, func(d locale.Dir) string {
		return d.Name + r.display(d.DisplayName())
	})
	r.writeDirs(b, "Variants", res.Variants, func(d locale.Dir) string {
		return fmt.Sprintf("%s -> %s%s", d.Name, d.BaseName, r.display(d.DisplayName()))
	})

	if len(res.Ignored) > 0 {
		fmt.Fprintf(b, "\n%s (%d)\n", apply(r.styles.Warning, "Ignored"), len(res.Ignored))
		for _, name := range res.Ignored {
			fmt.Fprintf(b, "  %s\n", name)
		}
	}
}

func (r *Renderer) writeDirs(b *strings.Builder, title string, dirs []locale.Dir, line func(locale.Dir) string) {
	fmt.Fprintf(b, "\n%s (%d)\n", apply(r.styles.Title, title), len(dirs))
	for _, d := range dirs {
		fmt.Fprintf(b, "  %s\n", line(d))
	}
}
