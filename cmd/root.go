package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"camlist-cli/internal/config"
)

var cfgFile string
var jsonOutput bool
var yamlOutput bool

// logger is configured once the config file has been read
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "camlist"})

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "camlist-cli",
	Short: "Build camera firmware catalogs from CHDK package archives",
	Long: `Walk a (possibly nested) zip archive of CHDK firmware packages, resolve
the camera each package was built for and print the sorted platform/revision catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.camlist-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output results as YAML")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("boot-file", "", "Metadata entry name identifying a package (default DISKBOOT.BIN)")

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyBootFile, rootCmd.PersistentFlags().Lookup("boot-file"))
}

func initConfig() {
	if err := config.InitConfig(cfgFile); err != nil {
		fatalf("%v", err)
	}

	level, err := log.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		logger.Warn("unknown log level, using info", "level", viper.GetString(config.KeyLogLevel))
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

// fatalf prints a red error line and exits.
func fatalf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
