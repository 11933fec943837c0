package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/events"
	"github.com/shahbajlive/mdskin/internal/render"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/watcher"
)

func newFollowCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "follow FILE",
		Short: "Redraw a Markdown file whenever it or the terminal changes",
		Long: `Draw a Markdown file fitted to the terminal and redraw it when the file is
saved or the terminal is resized. Output longer than the terminal has its
middle elided. Stop with Ctrl+C.

Examples:
  mdskin follow TODO.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := runFollow(ctx, cmd.OutOrStdout(), o, args[0])
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	return cmd
}

// follower is the state owned by the follow loop.
type follower struct {
	out      io.Writer
	term     *termenv.Output
	path     string
	doc      doc.Document
	skin     *skin.Skin
	builder  *composite.Builder
	renderer *render.Renderer
	width    int
	height   int
}

func runFollow(ctx context.Context, out io.Writer, o *options, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := readDocument(nil, path)
	if err != nil {
		return err
	}
	s, err := o.loadSkin()
	if err != nil {
		return err
	}

	f := &follower{
		out:      out,
		term:     termenv.NewOutput(out),
		path:     path,
		doc:      d,
		skin:     s,
		builder:  composite.NewBuilder(composite.WithLogger(slog.Default())),
		renderer: render.New(out, s),
		width:    o.renderWidth(out),
		height:   24,
	}
	if _, h, err := terminalSize(out); err == nil && h > 0 {
		f.height = h
	}

	q := events.NewQueue(events.DefaultQueueSize)
	w, err := watcher.New(watcher.ToQueue(q, slog.Default()), watcher.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return err
	}
	events.WatchResize(ctx, q, func() (int, int, error) { return terminalSize(out) })

	loop := &events.Loop{
		Queue:  q,
		Handle: f.handle,
		Draw:   f.draw,
		Logger: slog.Default(),
	}
	return loop.Run(ctx)
}

func (f *follower) handle(ev events.Event) bool {
	switch ev := ev.(type) {
	case events.Reload:
		d, err := readDocument(nil, f.path)
		if err != nil {
			slog.Warn("reload failed", "path", ev.Path, "error", err)
			return false
		}
		f.doc = d
		return true
	case events.Resize:
		f.width, f.height = ev.Width, ev.Height
		return true
	}
	return false
}

func (f *follower) draw() error {
	if f.width < 1 || f.height < 1 {
		return nil
	}
	c, err := f.builder.Build(f.doc, f.skin, f.width)
	if c == nil {
		return err
	}
	if err != nil {
		slog.Warn("document has malformed elements", "path", f.path, "error", err)
	}
	// One row stays free so the cursor does not scroll the screen.
	if c, err = composite.FitToLines(c, max(1, f.height-1)); err != nil {
		return err
	}
	f.term.ClearScreen()
	if err := f.renderer.WriteComposite(f.out, c); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}
