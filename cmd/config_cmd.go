package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/josephgoksu/OpsWing/internal/config"
	"github.com/josephgoksu/OpsWing/internal/logger"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configInitForce  bool
	configInitGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
}

// configView is the effective configuration with secrets masked.
type configView struct {
	ConfigFile string          `json:"config_file,omitempty"`
	DataDir    string          `json:"data_dir"`
	Config     types.AppConfig `json:"config"`
	CrashLogs  []string        `json:"crash_logs,omitempty"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		cfg.Store.DSN = mask(cfg.Store.DSN)
		cfg.Telemetry.APIKey = mask(cfg.Telemetry.APIKey)
		crashes, err := logger.ListCrashLogs()
		if err != nil {
			LogError("list crash logs", err)
		}
		view := configView{ConfigFile: viper.ConfigFileUsed(), DataDir: config.GetDataDir(), Config: cfg, CrashLogs: crashes}

		return render(cmd.OutOrStdout(), view, func(w io.Writer) {
			ui.RenderPageHeader(w, "OpsWing Configuration", orDash(view.ConfigFile))
			printField(w, "Data dir", view.DataDir)
			printField(w, "Server port", cfg.Server.Port)
			printField(w, "Allowed origins", cfg.Server.AllowedOrigins)
			printField(w, "Store", fmt.Sprintf("%s %s", cfg.Store.Driver, orDash(cfg.Store.Path)))
			if cfg.Store.DSN != "" {
				printField(w, "Store DSN", cfg.Store.DSN)
			}
			printField(w, "Watch workbook", cfg.Store.Watch)
			printField(w, "Weighting", cfg.Analysis.Weighting)
			printField(w, "Sender", cfg.Notify.Sender)
			printField(w, "From", cfg.Notify.From)
			printField(w, "Manager email", orDash(cfg.Notify.ManagerEmail))
			printField(w, "Policy dir", orDash(cfg.Policy.Dir))
			printField(w, "Telemetry", cfg.Telemetry.Enabled)
			if len(crashes) > 0 {
				fmt.Fprintln(w)
				printSection(w, "Crash logs", crashes)
			}
		})
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .opswing.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.LocalDir
		if configInitGlobal {
			var err error
			if dir, err = config.GetGlobalConfigDir(); err != nil {
				return err
			}
		}
		path := filepath.Join(dir, configName+".yaml")
		if err := config.WriteStarterConfig(path, configInitForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.Icon("✓", ui.StyleSuccess), path)
		return nil
	},
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write to ~/.opswing instead of ./.opswing")
}
