package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/spf13/cobra"
)

var (
	kpiFlags      models.KPIEntry
	kpiStatus     string
	kpiTrend      string
	kpiEmployee   string
	kpiDepartment string
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Manage the KPI sheet",
}

var kpiAddCmd = &cobra.Command{
	Use:   "add <kpi name>",
	Short: "Record a KPI measurement; status is rated from target and actual when omitted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := kpiFlags
		k.Name = taskName(args)
		k.Status = models.KPIStatus(kpiStatus)
		k.Trend = models.KPITrend(kpiTrend)
		return withService(cmd.Context(), func(svc *app.Service) error {
			added, err := svc.AddKPI(cmd.Context(), k)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), added, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s for %s recorded as %s\n", ui.Icon("✓", ui.StyleSuccess), added.Name, added.EmployeeName, ui.Status(string(added.Status)))
			})
		})
	},
}

var kpiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List KPI entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			var (
				kpis []models.KPIEntry
				err  error
			)
			switch {
			case kpiEmployee != "":
				kpis, err = svc.KPIsByEmployee(cmd.Context(), kpiEmployee)
			case kpiDepartment != "":
				kpis, err = svc.KPIsByDepartment(cmd.Context(), kpiDepartment)
			default:
				kpis, err = svc.ListKPIs(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), kpis, func(w io.Writer) {
				printTable(w, kpiTable(kpis))
			})
		})
	},
}

var kpiAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List Red KPIs with severity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			alerts, err := svc.KPIAlerts(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), alerts, func(w io.Writer) {
				t := &ui.Table{Headers: []string{"Severity", "KPI", "Employee", "Department", "Target", "Actual", "Trend"}, StatusColumns: []int{0, 6}}
				for _, a := range alerts {
					t.Rows = append(t.Rows, []string{a.Severity, a.Name, a.EmployeeName, a.Department, num(a.Target), num(a.Actual), string(a.Trend)})
				}
				printTable(w, t)
			})
		})
	},
}

var kpiDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show KPI health overall, by department and by employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			d, err := svc.KPIDashboard(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), d, func(w io.Writer) {
				printField(w, "Total KPIs", d.TotalKPIs)
				printField(w, "Status", fmt.Sprintf("%s %d  %s %d  %s %d",
					ui.Status("Green"), d.StatusSummary[models.KPIGreen],
					ui.Status("Yellow"), d.StatusSummary[models.KPIYellow],
					ui.Status("Red"), d.StatusSummary[models.KPIRed]))
				fmt.Fprintln(w)
				fmt.Fprintln(w, ui.StyleSectionTitle.Render("Departments"))
				printTable(w, performanceTable("Department", d.DepartmentPerformance))
				fmt.Fprintln(w)
				fmt.Fprintln(w, ui.StyleSectionTitle.Render("Employees"))
				printTable(w, performanceTable("Employee", d.EmployeePerformance))
			})
		})
	},
}

var kpiTrendsCmd = &cobra.Command{
	Use:   "trends <employee>",
	Short: "Show an employee's KPI history per KPI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			tr, err := svc.KPITrends(cmd.Context(), taskName(args))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), tr, func(w io.Writer) {
				names := make([]string, 0, len(tr.Trends))
				for name := range tr.Trends {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(w, ui.StyleSectionTitle.Render(name))
					printTable(w, kpiTable(tr.Trends[name]))
					fmt.Fprintln(w)
				}
			})
		})
	},
}

var kpiMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Summarize this month's KPI entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(svc *app.Service) error {
			sum, err := svc.MonthlyKPISummary(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), sum, func(w io.Writer) {
				printField(w, "Month", sum.Month)
				printField(w, "Entries", sum.TotalEntries)
				t := &ui.Table{Headers: []string{"Top performer", "Department", "Green %", "KPIs"}}
				for _, p := range sum.TopPerformers {
					t.Rows = append(t.Rows, performerRow(p))
				}
				printTable(w, t)
				t = &ui.Table{Headers: []string{"Needs improvement", "Department", "Green %", "KPIs"}}
				for _, p := range sum.ImprovementNeeded {
					t.Rows = append(t.Rows, performerRow(p))
				}
				printTable(w, t)
			})
		})
	},
}

func kpiTable(kpis []models.KPIEntry) *ui.Table {
	t := &ui.Table{Headers: []string{"ID", "Date", "Employee", "Department", "KPI", "Target", "Actual", "Status", "Trend"}, StatusColumns: []int{7, 8}}
	for _, k := range kpis {
		t.Rows = append(t.Rows, []string{k.ID, orDash(k.Date), k.EmployeeName, k.Department, ui.Truncate(k.Name, nameWidth), num(k.Target), num(k.Actual), string(k.Status), string(k.Trend)})
	}
	return t
}

func performanceTable(label string, groups map[string]*app.GroupPerformance) *ui.Table {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	t := &ui.Table{Headers: []string{label, "Green", "Yellow", "Red", "Green %"}}
	for _, name := range names {
		g := groups[name]
		t.Rows = append(t.Rows, []string{name, strconv.Itoa(g.Green), strconv.Itoa(g.Yellow), strconv.Itoa(g.Red), pct(g.GreenPercentage)})
	}
	return t
}

func performerRow(p app.PerformerSummary) []string {
	return []string{p.Name, orDash(p.Department), pct(p.GreenPercentage), strconv.Itoa(p.TotalKPIs)}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func init() {
	rootCmd.AddCommand(kpiCmd)
	kpiCmd.AddCommand(kpiAddCmd, kpiListCmd, kpiAlertsCmd, kpiDashboardCmd, kpiTrendsCmd, kpiMonthlyCmd)

	kpiAddCmd.Flags().StringVarP(&kpiFlags.EmployeeName, "employee", "e", "", "employee name")
	kpiAddCmd.Flags().StringVar(&kpiFlags.Department, "department", "", "department")
	kpiAddCmd.Flags().Float64Var(&kpiFlags.Target, "target", 0, "target value")
	kpiAddCmd.Flags().Float64Var(&kpiFlags.Actual, "actual", 0, "actual value")
	kpiAddCmd.Flags().StringVar(&kpiFlags.Date, "date", "", "measurement date (default today)")
	kpiAddCmd.Flags().StringVar(&kpiStatus, "status", "", "Green, Yellow or Red (rated when empty)")
	kpiAddCmd.Flags().StringVar(&kpiTrend, "trend", "", "Improving, Stable or Declining")

	kpiListCmd.Flags().StringVarP(&kpiEmployee, "employee", "e", "", "only this employee")
	kpiListCmd.Flags().StringVar(&kpiDepartment, "department", "", "only this department")
}
