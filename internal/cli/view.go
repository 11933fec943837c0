package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/render"
	"github.com/shahbajlive/mdskin/internal/skin"
	"github.com/shahbajlive/mdskin/internal/tui/pager"
	"github.com/shahbajlive/mdskin/internal/watcher"
)

func newViewCmd(o *options) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:     "view FILE",
		Aliases: []string{"v", "page"},
		Short:   "Open a Markdown file in the pager",
		Long: `Open a Markdown file in a scrollable pager with a table of contents.

The file is reloaded when it changes on disk. When the skin comes from a
file and pager.watch_skin is set, the skin is reloaded too.

Keys: j/k scroll, space/b page, g/G top/bottom, t contents, / filter
contents, enter jump, y copy the current section, q quit.

When standard output is not a terminal, view behaves like render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				return runRender(cmd.InOrStdin(), out, o, args[0], renderFlags{})
			}
			return runView(cmd.Context(), o, args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload files when they change")
	return cmd
}

func runView(ctx context.Context, o *options, path string, watch bool) error {
	d, err := readDocument(nil, path)
	if err != nil {
		return err
	}
	s, err := o.loadSkin()
	if err != nil {
		return err
	}

	r := render.New(os.Stdout, s)
	m := pager.New(d, s, r, pager.Options{
		Title:          path,
		Scrollbar:      o.cfg.Pager.Scrollbar,
		Progress:       o.cfg.Pager.Progress,
		TOC:            o.cfg.Pager.TOC,
		MaxWidth:       o.cfg.Width,
		MaxColumnWidth: o.cfg.List.MaxColumnWidth,
	},
		pager.WithLogger(slog.Default()),
		pager.WithBuilder(composite.NewBuilder(composite.WithLogger(slog.Default()))),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if watch {
		w, err := watchForPager(p, o, path)
		if err != nil {
			slog.Warn("file watching disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	_, err = p.Run()
	return err
}

// watchForPager reloads the document, and the skin file when configured,
// into the running program.
func watchForPager(p *tea.Program, o *options, path string) (*watcher.Watcher, error) {
	docPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	skinPath := ""
	if skinFile(o.cfg.Skin) && o.cfg.Pager.WatchSkin {
		if skinPath, err = filepath.Abs(o.cfg.Skin); err != nil {
			return nil, err
		}
	}

	w, err := watcher.New(func(evs []watcher.Event) {
		for _, ev := range evs {
			switch ev.Path {
			case docPath:
				d, err := readDocument(nil, docPath)
				p.Send(pager.ReloadMsg{Doc: d, Err: err})
			case skinPath:
				s, warnings, err := skin.Load(skinPath)
				p.Send(pager.SkinMsg{Skin: s, Warnings: warnings, Err: err})
			}
		}
	}, watcher.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	if err := w.Add(docPath); err != nil {
		w.Close()
		return nil, err
	}
	if skinPath != "" {
		if err := w.Add(skinPath); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}
