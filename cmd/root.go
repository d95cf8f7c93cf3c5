/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/OpsWing/internal/config"
	"github.com/josephgoksu/OpsWing/internal/logger"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging.
	verbose bool
	// outputFormat selects table or json output.
	outputFormat string
	// noColor disables styled output.
	noColor bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opswing",
	Short: "OpsWing - task analysis for business operations",
	Long: `OpsWing scores, prioritizes and assigns business-operations tasks with
transparent keyword rules. It manages the task, team, KPI and delegation
sheets, serves the same analysis over an HTTP API and sends templated
notifications.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup(viper.GetBool("verbose"), cmd.ErrOrStderr())
		logger.SetCommand(cmd.CommandPath())
		logger.SetLastInput(commandInput(cmd, args))
		logger.SetBasePath(config.GetDataDir())
		ui.ConfigureColor(noColor || isJSON())
		if configErr != nil {
			return configErr
		}
		if f := viper.GetString("format"); f != formatTable && f != formatJSON {
			return fmt.Errorf("unsupported output format %q (use table or json)", f)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// commandInput joins positional args and explicitly set flags for crash logs.
func commandInput(cmd *cobra.Command, args []string) string {
	parts := append([]string{}, args...)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		parts = append(parts, "--"+f.Name+"="+f.Value.String())
	})
	return strings.Join(parts, " ")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	defer logger.HandlePanic()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.opswing/.opswing.yaml or $HOME/.opswing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", formatTable, "output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	bindFlags()
}

// bindFlags binds the persistent flags into viper.
func bindFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}
