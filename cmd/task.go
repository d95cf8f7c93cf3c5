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
	taskAssignee string
	taskStatus   string
	taskFreq     string
	taskOverdue  bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task sheet",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <task name>",
	Short: "Add a task; category, deadline and missing priority are suggested",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := models.Task{
			Name:           taskName(args),
			Description:    descFlag,
			AssignedTo:     taskAssignee,
			DueDate:        dueFlag,
			Priority:       models.TaskPriority(priorityFlag),
			Status:         models.TaskStatus(taskStatus),
			EstimatedHours: hoursFlag,
			Frequency:      taskFreq,
		}
		return withService(cmd.Context(), func(svc *app.Service) error {
			created, err := svc.CreateTask(cmd.Context(), t)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), created, func(w io.Writer) {
				fmt.Fprintf(w, "%s Task %s added\n", ui.Icon("✓", ui.StyleSuccess), ui.StyleTitle.Render(created.ID))
				printField(w, "Category", created.Category)
				printField(w, "Priority", ui.Status(string(created.Priority)))
				printField(w, "Suggested deadline", orDash(created.SuggestedDeadline))
			})
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			var (
				tasks []models.Task
				err   error
			)
			switch {
			case taskOverdue:
				tasks, err = svc.OverdueTasks(cmd.Context())
			case taskAssignee != "":
				tasks, err = svc.TasksByAssignee(cmd.Context(), taskAssignee)
			default:
				tasks, err = svc.ListTasks(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), tasks, func(w io.Writer) {
				printTable(w, taskTable(tasks))
			})
		})
	},
}

var taskStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status and priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			st, err := svc.TaskStats(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), st, func(w io.Writer) {
				printField(w, "Total", st.TotalTasks)
				printField(w, "Overdue", st.OverdueTasks)
				t := &ui.Table{Headers: []string{"Status", "Count"}, StatusColumns: []int{0}}
				for _, s := range models.TaskStatuses {
					t.Rows = append(t.Rows, []string{string(s), strconv.Itoa(st.StatusBreakdown[string(s)])})
				}
				printTable(w, t)
				t = &ui.Table{Headers: []string{"Priority", "Count"}, StatusColumns: []int{0}}
				for _, p := range models.Priorities {
					t.Rows = append(t.Rows, []string{string(p), strconv.Itoa(st.PriorityBreakdown[string(p)])})
				}
				printTable(w, t)
			})
		})
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <task id> <status>",
	Short: "Update a task status (To Do, In Progress, Done, Blocked)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			t, err := svc.UpdateTaskStatus(cmd.Context(), args[0], taskName(args[1:]))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), t, func(w io.Writer) {
				fmt.Fprintf(w, "%s Task %s is now %s\n", ui.Icon("✓", ui.StyleSuccess), t.ID, ui.Status(string(t.Status)))
			})
		})
	},
}

func taskTable(tasks []models.Task) *ui.Table {
	t := &ui.Table{Headers: []string{"ID", "Task", "Assignee", "Due", "Priority", "Status", "Category"}, StatusColumns: []int{4, 5}}
	for _, task := range tasks {
		t.Rows = append(t.Rows, []string{
			ui.TruncateID(task.ID), ui.Truncate(task.Name, nameWidth), orDash(task.AssignedTo), orDash(task.DueDate),
			string(task.Priority), string(task.Status), orDash(task.Category),
		})
	}
	return t
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskStatsCmd, taskStatusCmd)

	taskAddCmd.Flags().StringVarP(&descFlag, "description", "d", "", "task description")
	taskAddCmd.Flags().StringVarP(&taskAssignee, "assignee", "a", "", "team member name")
	taskAddCmd.Flags().StringVar(&dueFlag, "due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVarP(&priorityFlag, "priority", "p", "", "High, Medium or Low (suggested when empty)")
	taskAddCmd.Flags().StringVar(&taskStatus, "status", "", "initial status (default To Do)")
	taskAddCmd.Flags().IntVar(&hoursFlag, "hours", 0, "estimated hours")
	taskAddCmd.Flags().StringVar(&taskFreq, "frequency", "", "Daily, Weekly, Monthly or One-time")

	taskListCmd.Flags().StringVarP(&taskAssignee, "assignee", "a", "", "only tasks for this member")
	taskListCmd.Flags().BoolVar(&taskOverdue, "overdue", false, "only open tasks past their due date")
}
