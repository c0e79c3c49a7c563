package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/dungeontracker/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dungeontracker",
	Short: "Track dungeon, tower, world event and guild quest completion",
	Long: "dungeontracker records which dungeons, towers, world events and guild quests\n" +
		"you have completed, scores them into points and a tier, and celebrates\n" +
		"each freshly completed dungeon or group.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStatus,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .dungeontracker.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().String("journal-file", "", "append every progress change to this JSONL file")
	addStatusFlags(rootCmd)
}

func initConfig() {
	config.LoadDotEnv()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".dungeontracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("metrics_file", rootCmd.PersistentFlags().Lookup("metrics-file"))
	_ = viper.BindPFlag("journal_file", rootCmd.PersistentFlags().Lookup("journal-file"))

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
