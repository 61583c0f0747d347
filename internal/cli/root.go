package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the release printed by the version command
const Version = "0.1.0"

var (
	cfgFile    string
	verbose    bool
	provider   string
	modelName  string
	baseURL    string
	noCache    bool
	httpProxy  string
	httpsProxy string
)

// rootCmd represents the base command. Without a sub-command it starts the REPL.
var rootCmd = &cobra.Command{
	Use:   "nli-prover",
	Short: "nli-prover - interactive proof assistant over natural language",
	Long: `nli-prover is an interactive proof assistant for statements written in
natural language.

You register axioms and named lemmas, then ask it to prove a target.
A natural-language-inference model judges whether one statement entails
another; a target is proven when an axiom entails it directly, or through
one lemma, with probability at or above the entailment threshold.

It approximates logical proof. It does not perform it.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRepl,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of nli-prover.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nli-prover v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.nli-prover/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging on stderr)")
	flags.StringVar(&provider, "provider", "", "NLI provider (huggingface, openai, ollama, anthropic)")
	flags.StringVar(&modelName, "model", "", "NLI model name")
	flags.StringVar(&baseURL, "base-url", "", "inference endpoint base URL")
	flags.BoolVar(&noCache, "no-cache", false, "disable the score cache")
	flags.StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	flags.StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Bind flags to viper
	bindFlag(viper.GetViper(), "verbose", "verbose")
	bindFlag(viper.GetViper(), "nli.provider", "provider")
	bindFlag(viper.GetViper(), "nli.model", "model")
	bindFlag(viper.GetViper(), "nli.base_url", "base-url")
	bindFlag(viper.GetViper(), "http.http_proxy", "http-proxy")
	bindFlag(viper.GetViper(), "http.https_proxy", "https-proxy")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(v *viper.Viper, key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	v := viper.GetViper()
	configureEnv(v)

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// If a config file is found, read it in
	if err := v.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// configureEnv maps NLI_PROVER_NLI_PROVIDER onto nli.provider and so on
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("NLI_PROVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home + "/.nli-prover", nil
}
