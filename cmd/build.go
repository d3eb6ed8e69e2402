package cmd

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"camlist-cli/internal/config"
	"camlist-cli/pkg/models"
)

// Variables to hold flag values
var (
	outputFile string
)

// Build Command
var buildCmd = &cobra.Command{
	Use:   "build [archive]",
	Short: "Build the camera list from a firmware archive",
	Long: `Walk a zip archive of CHDK packages (a local path or an http(s) URL) and
print every platform and revision found, ordered by platform and revision key.`,
	Example: `  camlist-cli build ./chdk-packages.zip
  camlist-cli build https://mirror.example.com/chdk/packages.zip --json --output camera_list.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		location := archiveLocation(args)

		index, stats, err := buildIndex(location)
		if err != nil {
			fatalf("building camera list: %v", err)
		}
		logger.Debug("walk finished", "archives", stats.Archives, "entries", stats.Entries,
			"matches", stats.Matches, "unresolved", stats.Unresolved)

		// --- FILE OUTPUT ---
		if outputFile != "" {
			var buf bytes.Buffer
			ok, err := writeDocument(&buf, index)
			if err != nil {
				fatalf("encoding output: %v", err)
			}
			if !ok {
				fatalf("--output needs --json or --yaml")
			}
			if err := os.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
				fatalf("writing file: %v", err)
			}
			fmt.Printf("Camera list with %s saved to %s\n", plural(len(index), "platform"), outputFile)
			return
		}
		// -------------------

		if printDocument(index) {
			return
		}

		if len(index) == 0 {
			fmt.Println("No cameras found.")
			return
		}
		printIndexTable(index)
	},
}

func printIndexTable(index models.PlatformIndex) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tKEY\tREVISION")
	fmt.Fprintln(w, "--------\t---\t--------")

	for _, platform := range index.Platforms() {
		data := index[platform]
		for _, key := range data.RevisionKeys() {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				platform,
				key,
				data.Revisions[key].Source.Revision,
			)
		}
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&outputFile, "output", "", "Write the JSON/YAML document to this file")
	buildCmd.Flags().Bool("overwrite", false, "Let a later package replace an earlier one with the same revision key")
	_ = viper.BindPFlag(config.KeyOverwrite, buildCmd.Flags().Lookup("overwrite"))
}
