package cli

import (
	"io"
	"log/slog"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/render"
)

type renderFlags struct {
	maxLines int
	minLines int
	noColor  bool
}

func newRenderCmd(o *options) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render FILE|-",
		Short: "Print a Markdown file laid out for the terminal",
		Long: `Render a Markdown file (or standard input with "-") at the terminal width
and print it.

--max-lines keeps the first and last lines and elides the middle.
--min-lines pads short output with blank lines.

Examples:
  mdskin render README.md
  mdskin render --skin light --width 60 notes.md
  cat CHANGELOG.md | mdskin render --max-lines 20 -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), o, args[0], f)
		},
	}
	cmd.Flags().IntVar(&f.maxLines, "max-lines", 0, "elide the middle of longer output")
	cmd.Flags().IntVar(&f.minLines, "min-lines", 0, "pad shorter output with blank lines")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "print without styling")
	return cmd
}

func runRender(in io.Reader, out io.Writer, o *options, path string, f renderFlags) error {
	d, err := readDocument(in, path)
	if err != nil {
		return err
	}
	s, err := o.loadSkin()
	if err != nil {
		return err
	}

	width := o.renderWidth(out)
	b := composite.NewBuilder(composite.WithLogger(slog.Default()))
	c, err := b.Build(d, s, width)
	if c == nil {
		return err
	}
	if err != nil {
		slog.Warn("document has malformed elements", "path", path, "error", err)
	}
	if f.maxLines > 0 {
		if c, err = composite.FitToLines(c, f.maxLines); err != nil {
			return err
		}
	}
	if f.minLines > 0 {
		c = composite.Extend(c, f.minLines)
	}

	var ropts []render.Option
	if f.noColor {
		ropts = append(ropts, render.WithProfile(termenv.Ascii))
	}
	return render.New(out, s, ropts...).WriteComposite(out, c)
}
