package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/OpsWing/internal/policy"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/spf13/cobra"
)

var policyDir string

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect assignment policies (Rego)",
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the policies loaded from policy.dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := policyDir
		if dir == "" {
			dir = GetConfig().Policy.Dir
		}
		if dir == "" {
			return errors.New("no policy directory: set policy.dir or pass --dir")
		}
		engine, err := policy.NewEngine(cmd.Context(), policy.EngineConfig{PoliciesDir: dir})
		if err != nil {
			return err
		}
		names := engine.PolicyNames()
		return render(cmd.OutOrStdout(), names, func(w io.Writer) {
			fmt.Fprintf(w, "%d policies in %s\n", engine.PolicyCount(), dir)
			for _, n := range names {
				fmt.Fprintf(w, "  %s %s\n", ui.Icon("•", ui.StylePrimary), n)
			}
		})
	},
}

var policyCheckCmd = &cobra.Command{
	Use:   "check <file.rego>...",
	Short: "Validate Rego syntax",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err == nil {
				err = policy.ValidatePolicy(cmd.Context(), string(content))
			}
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", ui.Icon("✗", ui.StyleError), path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Icon("✓", ui.StyleSuccess), path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d policies invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyListCmd, policyCheckCmd)
	policyListCmd.Flags().StringVar(&policyDir, "dir", "", "policy directory (default policy.dir)")
}
