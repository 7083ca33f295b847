// Package entries holds the list, add and delete commands for expenses,
// incomes and tasks.
package entries

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/fintrack/cmd/cli/client"
	"github.com/crucial707/fintrack/cmd/cli/output"
	"github.com/crucial707/fintrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

// resource describes one API collection and how the CLI shows and creates its items.
type resource struct {
	name    string
	path    string
	headers []string
	row     func(item map[string]any) []interface{}
	// addFlags registers creation flags and returns a builder for the request body.
	addFlags func(cmd *cobra.Command) func() map[string]any
}

var resources = []resource{
	{
		name:    "expense",
		path:    "/expense",
		headers: []string{"ID", "Date", "Description", "Category", "Payment", "Amount"},
		row: func(it map[string]any) []interface{} {
			return []interface{}{it["id"], day(it["date"]), it["description"], it["category"], it["paymentMethod"], money(it["amount"])}
		},
		addFlags: func(cmd *cobra.Command) func() map[string]any {
			f := entryFlags(cmd)
			method := cmd.Flags().String("payment-method", "", "Cash, Credit Card, Debit Card, Bank Transfer, Digital Wallet or Other")
			receipt := cmd.Flags().String("receipt", "", "receipt URL from an earlier upload")
			return func() map[string]any {
				body := f()
				setIf(body, "paymentMethod", *method)
				setIf(body, "receipt", *receipt)
				return body
			}
		},
	},
	{
		name:    "income",
		path:    "/income",
		headers: []string{"ID", "Date", "Description", "Category", "Source", "Frequency", "Amount"},
		row: func(it map[string]any) []interface{} {
			return []interface{}{it["id"], day(it["date"]), it["description"], it["category"], it["source"], it["frequency"], money(it["amount"])}
		},
		addFlags: func(cmd *cobra.Command) func() map[string]any {
			f := entryFlags(cmd)
			source := cmd.Flags().String("source", "", "where the income came from")
			frequency := cmd.Flags().String("frequency", "", "One-time, Weekly, Bi-weekly, Monthly, Quarterly or Yearly")
			return func() map[string]any {
				body := f()
				setIf(body, "source", *source)
				setIf(body, "frequency", *frequency)
				return body
			}
		},
	},
	{
		name:    "task",
		path:    "/api/tasks",
		headers: []string{"ID", "Date", "Title", "Category", "Amount"},
		row: func(it map[string]any) []interface{} {
			return []interface{}{it["id"], day(it["date"]), it["title"], it["category"], money(it["amount"])}
		},
		addFlags: func(cmd *cobra.Command) func() map[string]any {
			title := cmd.Flags().String("title", "", "task title")
			amount := cmd.Flags().Float64("amount", 0, "amount")
			category := cmd.Flags().String("category", "", "food, transport, entertainment, shopping, bills or other")
			date := cmd.Flags().String("date", "", "date (YYYY-MM-DD), default now")
			notes := cmd.Flags().String("notes", "", "notes")
			_ = cmd.MarkFlagRequired("title")
			_ = cmd.MarkFlagRequired("amount")
			return func() map[string]any {
				body := map[string]any{"title": *title, "amount": *amount}
				setIf(body, "category", *category)
				setIf(body, "date", *date)
				setIf(body, "notes", *notes)
				return body
			}
		},
	},
}

// ==========================
// Init Entries
// ==========================
func InitEntries(rootCmd *cobra.Command) {
	for _, res := range resources {
		cmd := &cobra.Command{
			Use:   res.name,
			Short: "Manage " + res.name + " entries",
		}
		cmd.AddCommand(listCmd(res), addCmd(res), deleteCmd(res))
		rootCmd.AddCommand(cmd)
	}
}

// ==========================
// LIST
// ==========================
func listCmd(res resource) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + res.name + " entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(true)
			if err != nil {
				return err
			}
			var items []map[string]any
			if _, err := c.Do(http.MethodGet, res.path, nil, &items); err != nil {
				return err
			}
			if root.JSONOutput() {
				return output.RenderJSON(items)
			}
			rows := make([][]interface{}, 0, len(items))
			for _, it := range items {
				rows = append(rows, res.row(it))
			}
			output.RenderTable(res.headers, rows)
			return nil
		},
	}
}

// ==========================
// ADD
// ==========================
func addCmd(res resource) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + res.name,
	}
	build := res.addFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := client.New(true)
		if err != nil {
			return err
		}
		var created map[string]any
		msg, err := c.Do(http.MethodPost, res.path, build(), &created)
		if err != nil {
			return err
		}
		if root.JSONOutput() {
			return output.RenderJSON(created)
		}
		fmt.Printf("%s (id %v)\n", msg, created["id"])
		return nil
	}
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCmd(res resource) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a " + res.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(true)
			if err != nil {
				return err
			}
			msg, err := c.Do(http.MethodDelete, res.path+"/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
}

// entryFlags registers the flags shared by expenses and incomes.
func entryFlags(cmd *cobra.Command) func() map[string]any {
	amount := cmd.Flags().Float64("amount", 0, "amount")
	description := cmd.Flags().String("description", "", "description")
	category := cmd.Flags().String("category", "", "category")
	date := cmd.Flags().String("date", "", "date (YYYY-MM-DD), default today")
	tags := cmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return func() map[string]any {
		d := *date
		if d == "" {
			d = time.Now().Format("2006-01-02")
		}
		body := map[string]any{"amount": *amount, "description": *description, "category": *category, "date": d}
		if len(*tags) > 0 {
			body["tags"] = *tags
		}
		return body
	}
}

func setIf(body map[string]any, key, value string) {
	if value != "" {
		body[key] = value
	}
}

func day(v any) string {
	s, _ := v.(string)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

func money(v any) string {
	f, _ := v.(float64)
	return output.Money(f)
}
