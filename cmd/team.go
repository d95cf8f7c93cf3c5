package cmd

import (
	"fmt"
	"io"

	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/spf13/cobra"
)

var memberFlags models.TeamMember

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage the team sheet",
}

var teamAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a team member",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := memberFlags
		m.Name = taskName(args)
		return withService(cmd.Context(), func(svc *app.Service) error {
			added, err := svc.AddTeamMember(cmd.Context(), m)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), added, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s added as member %s\n", ui.Icon("✓", ui.StyleSuccess), ui.StyleTitle.Render(added.Name), added.ID)
			})
		})
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			team, err := svc.ListTeamMembers(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), team, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"ID", "Name", "Role", "Department", "Skills", "Email"}}
				for _, m := range team {
					t.Rows = append(t.Rows, []string{m.ID, m.Name, orDash(m.Role), orDash(m.Department), orDash(m.Skills), orDash(m.Email)})
				}
				printTable(w, t)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(teamAddCmd, teamListCmd)

	teamAddCmd.Flags().StringVarP(&memberFlags.Email, "email", "e", "", "email address for notifications")
	teamAddCmd.Flags().StringVarP(&memberFlags.Role, "role", "r", "", "role or title")
	teamAddCmd.Flags().StringVarP(&memberFlags.Skills, "skills", "s", "", "skills, comma separated")
	teamAddCmd.Flags().StringVar(&memberFlags.Department, "department", "", "department")
}
