package dashboard

import (
	"fmt"
	"net/http"

	"github.com/crucial707/fintrack/cmd/cli/client"
	"github.com/crucial707/fintrack/cmd/cli/output"
	"github.com/crucial707/fintrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

type entry struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

type summary struct {
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpense   float64 `json:"totalExpense"`
	RecentIncome   []entry `json:"recentIncome"`
	RecentExpenses []entry `json:"recentExpenses"`
}

func InitDashboard(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and recent activity",
		RunE:  runDashboard,
	})
}

func runDashboard(cmd *cobra.Command, args []string) error {
	c, err := client.New(true)
	if err != nil {
		return err
	}
	var s summary
	if _, err := c.Do(http.MethodGet, "/dashboard", nil, &s); err != nil {
		return err
	}
	if root.JSONOutput() {
		return output.RenderJSON(s)
	}

	output.RenderTable([]string{"Total income", "Total expense", "Balance"},
		[][]interface{}{{output.Money(s.TotalIncome), output.Money(s.TotalExpense), output.Money(s.TotalIncome - s.TotalExpense)}})

	fmt.Println("Recent income")
	output.RenderTable([]string{"Date", "Description", "Category", "Amount"}, entryRows(s.RecentIncome))
	fmt.Println("Recent expenses")
	output.RenderTable([]string{"Date", "Description", "Category", "Amount"}, entryRows(s.RecentExpenses))
	return nil
}

func entryRows(entries []entry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		date := e.Date
		if len(date) >= 10 {
			date = date[:10]
		}
		rows = append(rows, []interface{}{date, e.Description, e.Category, output.Money(e.Amount)})
	}
	return rows
}
