package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/mdskin/internal/composite"
	"github.com/shahbajlive/mdskin/internal/doc"
	"github.com/shahbajlive/mdskin/internal/render"
	"github.com/shahbajlive/mdskin/internal/skin"
)

func newSkinsCmd(o *options) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "skins",
		Short: "List the built-in skin presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkins(cmd.OutOrStdout(), o, sample)
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "render a short sample with each preset")
	return cmd
}

func sampleDocument() doc.Document {
	return doc.New(
		doc.H(2, doc.T("Heading")),
		doc.P(doc.T("Some "), doc.B(doc.T("bold")), doc.T(", "), doc.I(doc.T("italic")), doc.T(" and "), doc.Code{Value: "code"}, doc.T(".")),
		doc.Bullets("first", "second"),
	)
}

func runSkins(out io.Writer, o *options, sample bool) error {
	width := o.renderWidth(out)
	for _, name := range skin.PresetNames() {
		if !sample {
			fmt.Fprintln(out, name)
			continue
		}
		s, err := skin.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "── %s\n", name)
		c, err := composite.Build(sampleDocument(), s, width)
		if c == nil {
			return err
		}
		if err := render.New(out, s).WriteComposite(out, c); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

// ErrSkinWarnings is returned by "skin check --strict" when a skin file has
// entries that were ignored.
var ErrSkinWarnings = errors.New("skin has ignored entries")

func newSkinCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skin",
		Short: "Work with skin files",
	}
	var strict bool
	check := &cobra.Command{
		Use:   "check PATH",
		Short: "Load a skin file and report ignored entries",
		Long: `Load a TOML or YAML skin file and list every entry that could not be used.
Ignored entries fall back to the preset's style; only unreadable or
malformed files fail to load.

Examples:
  mdskin skin check ~/.config/mdskin/solarized.toml
  mdskin skin check --strict team.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkinCheck(cmd.OutOrStdout(), args[0], strict)
		},
	}
	check.Flags().BoolVar(&strict, "strict", false, "fail when any entry is ignored")
	cmd.AddCommand(check)
	return cmd
}

func runSkinCheck(out io.Writer, path string, strict bool) error {
	s, warnings, err := skin.Load(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(out, "warning:", w)
	}
	fmt.Fprintf(out, "%s: skin %q loaded, %d ignored entries\n", path, s.Name(), len(warnings))
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%w: %d", ErrSkinWarnings, len(warnings))
	}
	return nil
}
