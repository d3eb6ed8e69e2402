package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"camlist-cli/internal/catalog"
)

// Resolution is the lookup result for one package name
type Resolution struct {
	Name     string `json:"name" yaml:"name"`
	Found    bool   `json:"found" yaml:"found"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:     "resolve <package-name>...",
	Short:   "Show which camera a package file name resolves to",
	Example: `  camlist-cli resolve a540-100b-1.4.0-3345-full.zip g12-100c-1.3.0-full.zip`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cameras, err := setupCameraProvider()
		if err != nil {
			fatalf("%v", err)
		}

		results := make([]Resolution, 0, len(args))
		for _, name := range args {
			r := Resolution{Name: name}
			if cam, ok := cameras.GetCamera(name); ok {
				r.Found = true
				r.Platform = cam.Platform
				r.Revision = cam.SourceRevision()
				r.Version = cam.Version
				key, err := catalog.RevisionKey(cam.Revision)
				if err != nil {
					logger.Warn("cannot derive revision key", "name", name, "err", err)
				}
				r.Key = key
			}
			results = append(results, r)
		}

		if printDocument(results) {
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPLATFORM\tREVISION\tKEY\tVERSION")
		fmt.Fprintln(w, "----\t--------\t--------\t---\t-------")

		for _, r := range results {
			if !r.Found {
				fmt.Fprintf(w, "%s\t[not recognised]\t\t\t\n", r.Name)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Platform, r.Revision, r.Key, r.Version)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
