package cli

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/pipeline"
	"github.com/matzehuels/figforge/pkg/sink"
)

// sheetCommand creates the contact sheet command.
func (c *CLI) sheetCommand() *cobra.Command {
	var (
		dir        string
		columns    int
		thumbWidth int
		title      string
	)

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Build a contact sheet from previously rendered figures",
		Long: `Build contact-sheet.png from the figures listed in an output
directory's manifest.json, without rendering anything. Run
"figforge render --manifest" first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				cfg, err := loadConfig(c.configPath)
				if err != nil {
					return err
				}
				if cfg.OutputDir != "" {
					dir = cfg.OutputDir
				}
			}
			path, n, err := c.buildSheet(dir, columns, thumbWidth, title)
			if err != nil {
				return err
			}
			printSuccess("Contact sheet of %d figures", n)
			printPath(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", pipeline.DefaultOutputDir, "output directory holding manifest.json")
	cmd.Flags().IntVar(&columns, "columns", pipeline.DefaultSheetColumns, "thumbnails per row")
	cmd.Flags().IntVar(&thumbWidth, "thumb-width", 320, "thumbnail width in pixels")
	cmd.Flags().StringVar(&title, "title", "Figures", "sheet title")

	return cmd
}

// buildSheet reads dir's manifest and writes the contact sheet next to it.
func (c *CLI) buildSheet(dir string, columns, thumbWidth int, title string) (string, int, error) {
	prog := newProgress(c.Logger)

	m, err := sink.ReadManifest(filepath.Join(dir, sink.ManifestFile))
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return "", 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "no manifest in %s; run figforge render --manifest", dir)
		}
		return "", 0, err
	}

	thumbs := make([]sink.Thumb, 0, len(m.Figures))
	for _, e := range m.Figures {
		p := filepath.Join(dir, filepath.Base(e.Path))
		img, err := imaging.Open(p)
		if err != nil {
			return "", 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure %s", e.Name)
		}
		thumbs = append(thumbs, sink.Thumb{Name: e.Name, Image: img})
	}

	img, err := sink.ContactSheet(thumbs,
		sink.WithColumns(columns),
		sink.WithThumbWidth(thumbWidth),
		sink.WithTitle(title),
	)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, sink.SheetFile)
	if err := sink.SaveImage(path, img); err != nil {
		return "", 0, err
	}
	m.Sheet = sink.SheetFile
	if err := m.Save(filepath.Join(dir, sink.ManifestFile)); err != nil {
		return "", 0, err
	}
	prog.done(fmt.Sprintf("Built contact sheet from %d figures", len(thumbs)))
	return path, len(thumbs), nil
}
