package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	descFlag     string
	dueFlag      string
	priorityFlag string
	hoursFlag    int
	splitHours   int
	teamSizeFlag int
	skillsFlag   string
)

// newAnalyzer builds the engine alone for commands that need no records.
func newAnalyzer() (*analysis.Analyzer, error) {
	cfg, err := analysis.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load analysis config: %w", err)
	}
	return analysis.New(cfg), nil
}

func taskName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize <task name>",
	Short: "Classify a task into a business category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		c := a.CategorizeTask(taskName(args), descFlag)
		return render(cmd.OutOrStdout(), c, func(w io.Writer) {
			fmt.Fprintf(w, "%s %s\n", ui.StyleTitle.Render(c.Label), ui.StyleSubtle.Render(fmt.Sprintf("(confidence %.2f)", c.Confidence)))
			fmt.Fprintln(w, ui.StylePrefixReason.Render(c.Reasoning))
			if len(c.Scores) > 0 {
				fmt.Fprintln(w)
				t := &ui.Table{Headers: []string{"Category", "Score"}}
				for _, s := range c.Scores {
					t.Rows = append(t.Rows, []string{s.Label, strconv.Itoa(s.Score)})
				}
				printTable(w, t)
			}
		})
	},
}

var priorityCmd = &cobra.Command{
	Use:   "priority <task name>",
	Short: "Suggest High, Medium or Low priority",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		p := a.SuggestPriority(taskName(args), descFlag, dueFlag)
		return render(cmd.OutOrStdout(), p, func(w io.Writer) {
			fmt.Fprintf(w, "%s %s\n", ui.Status(string(p.Priority)), ui.StyleSubtle.Render(fmt.Sprintf("(confidence %.2f)", p.Confidence)))
			printSection(w, "Reasoning", p.Reasoning)
		})
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline <task name>",
	Short: "Suggest a realistic due date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		var hours *int
		if cmd.Flags().Changed("hours") {
			hours = &hoursFlag
		}
		d, err := a.SuggestDeadline(taskName(args), descFlag, priorityFlag, hours)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), d, func(w io.Writer) {
			fmt.Fprintf(w, "%s %s\n", ui.StyleTitle.Render(d.SuggestedDeadline), ui.StyleSubtle.Render(fmt.Sprintf("(%d days from now)", d.DaysFromNow)))
			printField(w, "Priority", ui.Status(string(d.Priority)))
			printField(w, "Complexity", d.Complexity)
			printSection(w, "Reasoning", d.Reasoning)
		})
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <task name>",
	Short: "Split a task into a subtask plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		b, err := a.Decompose(taskName(args), descFlag, splitHours, teamSizeFlag)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), b, func(w io.Writer) {
			ui.RenderPageHeader(w, b.OriginalTask, fmt.Sprintf("%s, %dh, team of %d", b.Category, b.TotalEstimatedHours, b.TeamSize))
			t := &ui.Table{Headers: []string{"#", "Subtask", "Hours", "Parallel", "Depends on"}}
			for _, s := range b.Subtasks {
				deps := make([]string, len(s.DependsOn))
				for i, d := range s.DependsOn {
					deps[i] = strconv.Itoa(d)
				}
				t.Rows = append(t.Rows, []string{strconv.Itoa(s.ID), s.Name, strconv.Itoa(s.EstimatedHours), strconv.FormatBool(s.CanParallel), orDash(strings.Join(deps, ","))})
			}
			printTable(w, t)
			fmt.Fprintln(w)
			p := b.ExecutionPlan
			printField(w, "Sequential days", p.SequentialExecutionDays)
			printField(w, "Optimized days", p.OptimizedExecutionDays)
			printField(w, "Approach", p.RecommendedApproach)
		})
	},
}

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Analyze team workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			wa, err := svc.AnalyzeWorkload(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), wa, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"Member", "Role", "Tasks", "Weight", "Capacity", "Status"}, StatusColumns: []int{5}}
				for _, m := range wa.Members {
					t.Rows = append(t.Rows, []string{m.MemberName, orDash(m.Role), strconv.Itoa(m.CurrentTasks), strconv.Itoa(m.PriorityWeight), strconv.Itoa(m.CapacityAvailable), string(m.WorkloadStatus)})
				}
				printTable(w, t)
				fmt.Fprintln(w)
				printField(w, "Total tasks", wa.TotalTasks)
				printField(w, "Average per member", fmt.Sprintf("%.1f", wa.AverageTasksPerMember))
				fmt.Fprintln(w)
				printSection(w, "Recommendations", wa.Recommendations)
			})
		})
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <task name>",
	Short: "Recommend the best assignee for a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := analysis.AssignmentRequest{
			TaskName:        taskName(args),
			TaskDescription: descFlag,
			RequiredSkills:  skillsFlag,
			Priority:        priorityFlag,
		}
		return withService(cmd.Context(), func(svc *app.Service) error {
			rec, err := svc.RecommendAssignment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rec, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", ui.StylePrefixPick.Render("→"), ui.StyleTitle.Render(rec.RecommendedAssignee), ui.StyleSubtle.Render(fmt.Sprintf("(confidence %.2f, %s)", rec.ConfidenceScore, rec.Strategy)))
				fmt.Fprintln(w)
				printSection(w, "Reasoning", rec.Reasoning)
				if len(rec.Alternatives) > 0 {
					t := &ui.Table{Headers: []string{"Alternative", "Tasks", "Capacity", "Status"}, StatusColumns: []int{3}}
					for _, alt := range rec.Alternatives {
						t.Rows = append(t.Rows, []string{alt.Name, strconv.Itoa(alt.CurrentTasks), strconv.Itoa(alt.CapacityAvailable), string(alt.WorkloadStatus)})
					}
					printTable(w, t)
				}
				if len(rec.Excluded) > 0 {
					fmt.Fprintln(w, ui.StylePrefixWarn.Render("Excluded by policy: "+strings.Join(rec.Excluded, ", ")))
				}
			})
		})
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarize task completion and KPI health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			in, err := svc.GenerateInsights(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), in, func(w io.Writer) {
				m := in.Metrics
				printField(w, "Tasks", fmt.Sprintf("%d total, %d done (%s), %d overdue", m.TotalTasks, m.CompletedTasks, pct(m.CompletionRate), m.OverdueTasks))
				printField(w, "Underperforming KPIs", m.UnderperformingKPIs)
				fmt.Fprintln(w)
				width := panelWidth()
				if len(in.Alerts) > 0 {
					fmt.Fprintln(w, ui.RenderWarningPanel("Alerts", width, in.Alerts...))
				} else {
					fmt.Fprintln(w, ui.RenderSuccessPanel("Alerts", width, "No alerts"))
				}
				printSection(w, "Performance", in.PerformanceInsights)
				printSection(w, "Trends", in.TrendAnalysis)
				fmt.Fprintln(w, ui.RenderInfoPanel("Recommendations", width, in.Recommendations...))
			})
		})
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Project KPI performance from recorded history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			pt, err := svc.PredictPerformance(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), pt, func(w io.Writer) {
				printField(w, "Outlook", pt.OverallOutlook)
				t := &ui.Table{Headers: []string{"KPI", "Entries", "Last %", "Direction", "Projected %"}, StatusColumns: []int{3}}
				for _, p := range pt.Predictions {
					t.Rows = append(t.Rows, []string{p.KPIName, strconv.Itoa(p.Entries), fmt.Sprintf("%.1f", p.LastAttainment), string(p.Direction), fmt.Sprintf("%.1f", p.ProjectedAttainment)})
				}
				printTable(w, t)
				fmt.Fprintln(w)
				printSection(w, "Recommendations", pt.Recommendations)
			})
		})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Order open tasks and flag conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			so, err := svc.OptimizeSchedule(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), so, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"#", "Task", "Assignee", "Due", "Priority", "Overdue"}, StatusColumns: []int{4}}
				for _, s := range so.OptimizedSchedule {
					t.Rows = append(t.Rows, []string{strconv.Itoa(s.Order), s.TaskName, orDash(s.AssignedTo), orDash(s.DueDate), string(s.Priority), strconv.FormatBool(s.Overdue)})
				}
				printTable(w, t)
				fmt.Fprintln(w)
				for _, c := range so.PotentialConflicts {
					fmt.Fprintln(w, ui.StylePrefixWarn.Render(fmt.Sprintf("! %s on %s: %s", c.AssignedTo, c.DueDate, c.Reason)))
				}
				printSection(w, "Recommendations", so.Recommendations)
				printSection(w, "Efficiency", so.EfficiencyImprovements)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd, priorityCmd, deadlineCmd, breakdownCmd, workloadCmd, assignCmd, insightsCmd, trendCmd, scheduleCmd)

	for _, c := range []*cobra.Command{categorizeCmd, priorityCmd, deadlineCmd, breakdownCmd, assignCmd} {
		c.Flags().StringVarP(&descFlag, "description", "d", "", "task description")
	}
	priorityCmd.Flags().StringVar(&dueFlag, "due", "", "due date (YYYY-MM-DD)")
	deadlineCmd.Flags().StringVarP(&priorityFlag, "priority", "p", "", "task priority (High, Medium, Low)")
	deadlineCmd.Flags().IntVar(&hoursFlag, "hours", 0, "estimated hours")
	breakdownCmd.Flags().IntVar(&splitHours, "hours", 8, "estimated hours")
	breakdownCmd.Flags().IntVar(&teamSizeFlag, "team-size", 1, "people available")
	assignCmd.Flags().StringVarP(&priorityFlag, "priority", "p", "", "task priority (High, Medium, Low)")
	assignCmd.Flags().StringVarP(&skillsFlag, "skills", "s", "", "required skills, comma separated")
}
