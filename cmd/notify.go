package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/spf13/cobra"
)

var (
	notifyTo     string
	notifyName   string
	notifyDryRun bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send templated notifications through the configured sender",
}

func recipient() app.Recipient {
	return app.Recipient{Email: notifyTo, Name: notifyName}
}

func printDispatch(w io.Writer, r app.DispatchReport) {
	fmt.Fprintf(w, "%s %d of %d sent\n", ui.Icon("✉", ui.StylePrimary), r.Sent, r.Recipients)
	t := &ui.Table{Headers: []string{"Employee", "Email", "Tasks", "Sent", "Error"}}
	for _, res := range r.Results {
		t.Rows = append(t.Rows, []string{res.Employee, orDash(res.Email), strconv.Itoa(res.TaskCount), strconv.FormatBool(res.Sent), orDash(res.Error)})
	}
	printTable(w, t)
}

var notifyAssignmentCmd = &cobra.Command{
	Use:   "assignment <task id>",
	Short: "Notify a task's assignee about it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			tasks, err := svc.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			var task *models.Task
			for i := range tasks {
				if tasks[i].ID == args[0] {
					task = &tasks[i]
					break
				}
			}
			if task == nil {
				return fmt.Errorf("task %s: %w", args[0], store.ErrNotFound)
			}
			team, err := svc.ListTeamMembers(cmd.Context())
			if err != nil {
				return err
			}
			req := app.TaskAssignmentRequest{AssigneeEmail: notifyTo, AssigneeName: task.AssignedTo, Task: *task}
			if m, ok := models.FindMember(team, task.AssignedTo); ok && req.AssigneeEmail == "" {
				req.AssigneeEmail = m.Email
			}
			msg, err := svc.SendTaskAssignment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), msg, func(w io.Writer) {
				fmt.Fprintf(w, "%s Sent %q to %s\n", ui.Icon("✉", ui.StylePrimary), msg.Subject, msg.To)
			})
		})
	},
}

var notifyDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Send each team member their open tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			r, err := svc.SendDailySummary(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r, func(w io.Writer) { printDispatch(w, r) })
		})
	},
}

var notifyOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Remind assignees about overdue tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			r, err := svc.SendOverdueReminders(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r, func(w io.Writer) { printDispatch(w, r) })
		})
	},
}

var notifyKPIAlertsCmd = &cobra.Command{
	Use:   "kpi-alerts",
	Short: "Send the manager every Red KPI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			r, err := svc.SendKPIAlerts(cmd.Context(), recipient())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r, func(w io.Writer) {
				if !r.Sent {
					fmt.Fprintln(w, ui.StyleSuccess.Render(app.NoKPIAlertsMessage))
					return
				}
				fmt.Fprintf(w, "%s %d KPI alerts sent to %s\n", ui.Icon("✉", ui.StylePrimary), r.AlertCount, r.ManagerEmail)
			})
		})
	},
}

var notifyWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Send the weekly task and KPI report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			report := svc.WeeklyReport
			if !notifyDryRun {
				report = func(ctx context.Context) (notify.WeeklyReport, error) {
					return svc.SendWeeklyReport(ctx, recipient())
				}
			}
			r, err := report(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"Metric", "Count"}}
				t.Rows = [][]string{
					{"Completed tasks", strconv.Itoa(r.CompletedTasks)},
					{"In progress", strconv.Itoa(r.InProgressTasks)},
					{"Overdue", strconv.Itoa(r.OverdueTasks)},
					{"Green KPIs", strconv.Itoa(r.GreenKPIs)},
					{"Yellow KPIs", strconv.Itoa(r.YellowKPIs)},
					{"Red KPIs", strconv.Itoa(r.RedKPIs)},
				}
				printTable(w, t)
				if !notifyDryRun {
					fmt.Fprintln(w, ui.StyleSubtle.Render("report sent"))
				}
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyAssignmentCmd, notifyDailyCmd, notifyOverdueCmd, notifyKPIAlertsCmd, notifyWeeklyCmd)

	notifyAssignmentCmd.Flags().StringVar(&notifyTo, "to", "", "override the assignee email")
	for _, c := range []*cobra.Command{notifyKPIAlertsCmd, notifyWeeklyCmd} {
		c.Flags().StringVar(&notifyTo, "to", "", "recipient email (default notify.managerEmail)")
		c.Flags().StringVar(&notifyName, "name", "", "recipient name")
	}
	notifyWeeklyCmd.Flags().BoolVar(&notifyDryRun, "dry-run", false, "compute the report without sending")
}
