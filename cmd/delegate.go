package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/spf13/cobra"
)

var (
	delegationFlags   models.Delegation
	delegationStatus  string
	delegationPerson  string
	delegationOverdue bool
)

var delegateCmd = &cobra.Command{
	Use:     "delegate",
	Aliases: []string{"delegation"},
	Short:   "Manage the delegation tracker",
}

var delegateAddCmd = &cobra.Command{
	Use:   "add <task delegated>",
	Short: "Delegate a task to a person",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := delegationFlags
		d.TaskDelegated = taskName(args)
		d.Status = models.DelegationStatus(delegationStatus)
		return withService(cmd.Context(), func(svc *app.Service) error {
			added, err := svc.AddDelegation(cmd.Context(), d)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), added, func(w io.Writer) {
				fmt.Fprintf(w, "%s Delegation %s to %s due %s\n", ui.Icon("✓", ui.StyleSuccess), added.ID, ui.StyleTitle.Render(added.PersonResponsible), added.Deadline)
			})
		})
	},
}

var delegateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delegations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			var (
				ds  []models.Delegation
				err error
			)
			switch {
			case delegationOverdue:
				ds, err = svc.OverdueDelegations(cmd.Context())
			case delegationPerson != "":
				ds, err = svc.DelegationsByPerson(cmd.Context(), delegationPerson)
			default:
				ds, err = svc.ListDelegations(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), ds, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"ID", "Task", "Person", "Deadline", "Status", "Score"}, StatusColumns: []int{4}}
				for _, d := range ds {
					t.Rows = append(t.Rows, []string{d.ID, d.TaskDelegated, d.PersonResponsible, d.Deadline, string(d.Status), num(d.WorkloadScore)})
				}
				printTable(w, t)
			})
		})
	},
}

var delegateStatusCmd = &cobra.Command{
	Use:   "status <delegation id> <status>",
	Short: "Update a delegation status (Pending, In Progress, Complete)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			d, err := svc.UpdateDelegationStatus(cmd.Context(), args[0], taskName(args[1:]))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), d, func(w io.Writer) {
				fmt.Fprintf(w, "%s Delegation %s is now %s\n", ui.Icon("✓", ui.StyleSuccess), d.ID, ui.Status(string(d.Status)))
			})
		})
	},
}

var delegateWorkloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Summarize delegations per team member",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			loads, err := svc.DelegationWorkload(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), loads, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"Member", "Department", "Total", "Pending", "In Progress", "Complete", "Score"}}
				for _, l := range loads {
					t.Rows = append(t.Rows, []string{l.Name, orDash(l.Department), strconv.Itoa(l.TotalDelegations), strconv.Itoa(l.Pending), strconv.Itoa(l.InProgress), strconv.Itoa(l.Completed), num(l.TotalWorkloadScore)})
				}
				printTable(w, t)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(delegateCmd)
	delegateCmd.AddCommand(delegateAddCmd, delegateListCmd, delegateStatusCmd, delegateWorkloadCmd)

	delegateAddCmd.Flags().StringVarP(&delegationFlags.PersonResponsible, "to", "t", "", "person responsible")
	delegateAddCmd.Flags().StringVar(&delegationFlags.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	delegateAddCmd.Flags().StringVar(&delegationStatus, "status", "", "initial status (default Pending)")
	delegateAddCmd.Flags().Float64Var(&delegationFlags.WorkloadScore, "score", 0, "workload score 1-10 (default 5)")
	delegateAddCmd.Flags().StringVar(&delegationFlags.Feedback, "feedback", "", "notes")

	delegateListCmd.Flags().StringVar(&delegationPerson, "person", "", "only this person")
	delegateListCmd.Flags().BoolVar(&delegationOverdue, "overdue", false, "only open delegations past their deadline")
}
