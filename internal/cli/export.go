package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/config"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/export"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/metadata"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/wiki"
)

// exportFlags are per-run overrides of the persisted export settings.
type exportFlags struct {
	manifest  string
	comment   string
	overwrite bool
	apiURL    string
}

// NewExportCmd creates the export command
func NewExportCmd(tool, userAgent string) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a batch of images with generated description pages",
		Long: `Run one export batch from a host-written manifest.

The manifest is a JSON array of image entries: the temporary exported file
path plus the image's metadata (title, description, rights, tags, Exif
fields). For each eligible image the exporter generates a wikitext
description page, resolves the target page name from the configured naming
pattern and uploads file and page together. Images without a rights
statement, or with neither title nor description, are skipped and reported.

Credentials come from the config file (see 'dtmediawiki login'). A failed
login aborts the run before any upload; a failed upload does not abort the
batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, tool, userAgent)
		},
	}

	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "JSON manifest written by the host application (required)")
	cmd.Flags().StringVar(&flags.comment, "comment", "", "edit comment for the uploads (overrides config)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "replace files that already exist on the wiki")
	cmd.Flags().StringVar(&flags.apiURL, "wiki", "", "api.php endpoint of the target wiki (overrides config)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags, tool, userAgent string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Per-run flag overrides
	if flags.comment != "" {
		cfg.Export.Comment = flags.comment
	}
	if flags.overwrite {
		cfg.Export.Overwrite = true
	}
	if flags.apiURL != "" {
		cfg.Wiki.APIURL = flags.apiURL
	}

	if cfg.Wiki.Username == "" || cfg.Wiki.Password == "" {
		return fmt.Errorf("no credentials configured - run 'dtmediawiki login' first")
	}

	images, err := metadata.LoadManifest(flags.manifest)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("manifest %s contains no images", flags.manifest)
	}

	client, err := wiki.NewClient(cfg.Wiki.APIURL, userAgent)
	if err != nil {
		return fmt.Errorf("failed to create wiki client: %w", err)
	}

	// One login per run; a failure here disables the whole export.
	log.Printf("Logging in to %s as %s", cfg.Wiki.APIURL, cfg.Wiki.Username)
	if err := client.Login(cmd.Context(), cfg.Wiki.Username, cfg.Wiki.Password); err != nil {
		return fmt.Errorf("export unavailable: %w", err)
	}

	runner := &export.Runner{Client: client, Config: cfg, Tool: tool}
	summary := runner.Run(cmd.Context(), images)

	fmt.Println(summary)
	return nil
}
