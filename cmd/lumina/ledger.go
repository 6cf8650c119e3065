package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		kind        string
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an income or expense",
		Long: `Record a transaction. Amounts are positive; the type says which way the
money went.

Examples:
  lumina add 1200 --type income --category Salary
  lumina add 18.50 --category Food --description "lunch" --date 2025-02-14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[0])
			if err != nil || !amount.IsPositive() {
				return common.NewUserError(
					fmt.Sprintf("Invalid amount %q", args[0]),
					fmt.Errorf("%w: %s", common.ErrInvalidAmount, args[0]))
			}

			t, err := model.ParseTransactionType(kind)
			if err != nil {
				return err
			}
			label, err := resolveCategory(t, category)
			if err != nil {
				return err
			}

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			day := model.NewDate(env.state.Now())
			if date != "" {
				if day, err = model.ParseDate(date); err != nil {
					return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
				}
			}

			value, _ := amount.Float64()
			txn, err := env.state.AddTransaction(ctx, model.Draft{
				Type:        t,
				Amount:      value,
				Category:    label,
				Description: description,
				Date:        day,
			})
			out := cmd.OutOrStdout()
			if txn.ID == "" {
				return err
			}

			s := env.labels()
			symbol := env.state.Profile().Currency
			writeln(out, cli.FormatSuccess(fmt.Sprintf("%s: %s %s (%s)",
				s.Added, cli.FormatSigned(symbol, txn.Type, txn.Amount), txn.Category, txn.ID)))
			return persistWarning(out, err)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(model.TypeExpense), "transaction type (income or expense)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: Food for expenses, Salary for income)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional note")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction by id. A unique prefix of the id, as shown by "lumina list", is enough.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			s := env.labels()
			out := cmd.OutOrStdout()

			id, err := env.state.ResolveID(args[0])
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(s.NotFound, err)
				}
				return err
			}

			removed, err := env.state.DeleteTransaction(ctx, id)
			if !removed {
				return common.NewUserError(s.NotFound, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound))
			}
			writeln(out, cli.FormatSuccess(fmt.Sprintf("%s (%s)", s.Deleted, id)))
			return persistWarning(out, err)
		},
	}
}

func listCmd() *cobra.Command {
	var (
		periodFlag string
		format     string
		limit      int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parsePeriodFlag(periodFlag)
			if err != nil {
				return err
			}

			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			txns := env.state.View(p).Transactions
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if txns == nil {
					txns = []model.Transaction{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(txns)
			case "table", "":
				writeln(out, cli.RenderTransactions(env.labels(), env.state.Profile().Currency, txns))
				return nil
			default:
				return fmt.Errorf("%w: unknown format %q", common.ErrInvalidInput, format)
			}
		},
	}

	cmd.Flags().StringVarP(&periodFlag, "period", "p", "month", "period to show (month or all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table or json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many transactions (0 for all)")
	return cmd
}

func statsCmd() *cobra.Command {
	var (
		periodFlag string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show income, expenses, balance and spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parsePeriodFlag(periodFlag)
			if err != nil {
				return err
			}

			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			view := env.state.View(p)
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view.Stats.Summary())
			case "text", "":
				s := env.labels()
				title := s.Dashboard + " · " + view.Now.Format("January 2006")
				if p == period.AllTime {
					title = s.History
				}
				writeln(out, cli.RenderSummary(s, env.state.Profile().Currency, title, view.Stats))
				return nil
			default:
				return fmt.Errorf("%w: unknown format %q", common.ErrInvalidInput, format)
			}
		},
	}

	cmd.Flags().StringVarP(&periodFlag, "period", "p", "month", "period to summarise (month or all)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text or json)")
	return cmd
}

func categoriesCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories for income and expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types := []model.TransactionType{model.TypeIncome, model.TypeExpense}
			if kind != "" {
				t, err := model.ParseTransactionType(kind)
				if err != nil {
					return err
				}
				types = []model.TransactionType{t}
			}

			out := cmd.OutOrStdout()
			for i, t := range types {
				if i > 0 {
					writeln(out, "")
				}
				writeln(out, cli.FormatTitle(string(t)))
				for _, c := range model.CategoriesFor(t) {
					writef(out, "  %s\n", c)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "only show categories of this type")
	return cmd
}
