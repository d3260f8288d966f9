package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/cli"
)

var version = "dev"

func main() {
	tool := "dtMediaWiki " + version
	userAgent := "dtMediaWiki/" + version + " (https://github.com/vitaly-zdanevich/dtMediaWiki)"

	rootCmd := &cobra.Command{
		Use:   "dtmediawiki",
		Short: "Export images with description pages to a MediaWiki site",
		Long: `dtMediaWiki - export locally edited photos to Wikimedia Commons.

Builds a structured wikitext page for each image (license, author, date,
location, categories) from its metadata and your configured patterns, then
uploads image and page together through the MediaWiki action API.

Run 'dtmediawiki login' once to verify and store credentials, then
'dtmediawiki export --manifest batch.json' per batch.`,
		Version: version,
	}

	// Add commands
	rootCmd.AddCommand(cli.NewLoginCmd(userAgent))
	rootCmd.AddCommand(cli.NewExportCmd(tool, userAgent))

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
