package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// PlatformSummary is one row of the platforms listing
type PlatformSummary struct {
	Platform  string   `json:"platform" yaml:"platform"`
	Revisions []string `json:"revisions" yaml:"revisions"`
}

var platformsCmd = &cobra.Command{
	Use:   "platforms [archive]",
	Short: "List platforms and their revisions",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, _, err := buildIndex(archiveLocation(args))
		if err != nil {
			fatalf("building camera list: %v", err)
		}

		summaries := make([]PlatformSummary, 0, len(index))
		for _, platform := range index.Platforms() {
			data := index[platform]
			s := PlatformSummary{Platform: platform}
			for _, key := range data.RevisionKeys() {
				s.Revisions = append(s.Revisions, data.Revisions[key].Source.Revision)
			}
			summaries = append(summaries, s)
		}

		if printDocument(summaries) {
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PLATFORM\tCOUNT\tREVISIONS")
		fmt.Fprintln(w, "--------\t-----\t---------")

		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", s.Platform, len(s.Revisions), strings.Join(s.Revisions, ","))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
