package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/statementizer/internal/model"
)

const version = "statementizer v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "statementizer",
	Short: "Statementizer - split text datasets into one statement per row",
	Long: `Statementizer turns a table of free-text records (social media posts,
interview transcripts, product copy) into a long-format table with one
statement per row, keeping the record identifier, a per-record sequence
number and the original text as context.

Inputs and outputs are CSV or Parquet. Statements can optionally be tagged
with persuasion tactics from keyword dictionaries.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Statementizer.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.statementizer/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and ENV variables
func initConfig() {
	// A missing .env is the common case
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".statementizer"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(viper.GetViper(), model.DefaultConfig())

	// Read in environment variables that match STATEMENTIZER_*, e.g. STATEMENTIZER_INPUT_TEXT_COLUMN
	viper.SetEnvPrefix("STATEMENTIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}
}

// setDefaults registers every config key so env variables and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("input.format", cfg.Input.Format)
	v.SetDefault("input.id_column", cfg.Input.IDColumn)
	v.SetDefault("input.text_column", cfg.Input.TextColumn)
	v.SetDefault("input.speaker_column", cfg.Input.SpeakerColumn)

	v.SetDefault("segmentation.strategy", cfg.Segmentation.Strategy)
	v.SetDefault("segmentation.extract_tags", cfg.Segmentation.ExtractTags)
	v.SetDefault("segmentation.strip_html", cfg.Segmentation.StripHTML)

	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.preview", cfg.Output.Preview)
	v.SetDefault("output.verbose", cfg.Output.Verbose)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)

	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)

	v.SetDefault("classify.enabled", cfg.Classify.Enabled)
	v.SetDefault("classify.dictionary_file", cfg.Classify.DictionaryFile)

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.max_upload_bytes", cfg.Server.MaxUploadBytes)
}

// flagKeys maps command flags to config keys. Changed flags take precedence
// over env variables, the config file and defaults.
var flagKeys = map[string]string{
	"input-format": "input.format",
	"id":           "input.id_column",
	"text":         "input.text_column",
	"speaker":      "input.speaker_column",
	"strategy":     "segmentation.strategy",
	"tags":         "segmentation.extract_tags",
	"strip-html":   "segmentation.strip_html",
	"format":       "output.format",
	"preview":      "output.preview",
	"classify":     "classify.enabled",
	"dict":         "classify.dictionary_file",
	"concurrency":  "concurrency.workers",
	"addr":         "server.addr",
}

// loadConfig merges flags of cmd, env, config file and defaults into a validated Config
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	return loadConfigFrom(viper.GetViper(), cmd)
}

func loadConfigFrom(v *viper.Viper, cmd *cobra.Command) (*model.Config, error) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}

	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Value.String() == "true" {
		cfg.Cache.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
