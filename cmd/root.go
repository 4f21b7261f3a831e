package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mdpkg/mdpkg/internals/cmdlog"
	"github.com/mdpkg/mdpkg/internals/index"
)

// Version is the current mdpkg version
const Version = "0.3.0"

// DefaultChannel is queried when no channel is configured
const DefaultChannel = "https://channel.mdpkg.dev/stable"

var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: Version,
	Use:     "mdpkg",
	Short:   "Build and distribute MD analysis software",
	Long:    "Manage recipes for molecular dynamics packages: lint, resolve, build and test them",

	Example: `
  mdpkg init
  mdpkg lint
  mdpkg build
  mdpkg test`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mdpkg.toml)")
	rootCmd.PersistentFlags().String("channel", DefaultChannel, "channel to resolve requirements against (URL or local directory)")
	viper.BindPFlag("channel", rootCmd.PersistentFlags().Lookup("channel"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mdpkg" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".mdpkg")
	}

	viper.SetEnvPrefix("mdpkg")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// configuredChannel returns the channel to resolve against. Anything that
// isn't a http(s) URL is treated as a local channel directory
func configuredChannel() (index.Channel, error) {
	configured := viper.GetString("channel")
	if strings.HasPrefix(configured, "http://") || strings.HasPrefix(configured, "https://") {
		return index.NewHTTPChannel(configured)
	}
	return &index.DirChannel{Dir: configured}, nil
}
