package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/doc/markdown"
	"github.com/shahbajlive/mdskin/internal/skin"
)

// DefaultWidth is the render width when neither a flag, the config nor a
// terminal gives one.
const DefaultWidth = 80

// stdinPath names standard input on the command line.
const stdinPath = "-"

func readDocument(in io.Reader, path string) (doc.Document, error) {
	var (
		src []byte
		err error
	)
	if path == stdinPath {
		if in == nil {
			in = os.Stdin
		}
		src, err = io.ReadAll(in)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return doc.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return markdown.Parse(src), nil
}

// skinFile reports whether name refers to a skin file rather than a preset.
func skinFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return strings.ContainsRune(name, os.PathSeparator)
}

// loadSkin resolves the configured skin. Warnings from a skin file are
// logged; the skin is still usable.
func (o *options) loadSkin() (*skin.Skin, error) {
	name := o.cfg.Skin
	if !skinFile(name) {
		return skin.Preset(name)
	}
	s, warnings, err := skin.Load(name)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn("skin entry ignored", "skin", name, "warning", w)
	}
	return s, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// terminalSize returns the size of the terminal behind w.
func terminalSize(w io.Writer) (width, height int, err error) {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(w) {
		return 0, 0, errors.New("not a terminal")
	}
	return term.GetSize(int(f.Fd()))
}

// renderWidth picks the layout width for output to w: the terminal width
// capped by the configured width, or the configured width alone when w is
// not a terminal.
func (o *options) renderWidth(w io.Writer) int {
	tw, _, err := terminalSize(w)
	switch {
	case err == nil && tw > 0 && o.cfg.Width > 0:
		return min(tw, o.cfg.Width)
	case err == nil && tw > 0:
		return tw
	case o.cfg.Width > 0:
		return o.cfg.Width
	}
	return DefaultWidth
}
