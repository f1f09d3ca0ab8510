package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/cli"
)

var (
	flagExpenseAmount   float64
	flagExpensePayer    string
	flagExpenseDate     string
	flagExpenseAmong    []string
	flagExpenseShares   []string
	flagExpensePercents []string
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"exp"},
	Short:   "Record and inspect shared expenses",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add DESCRIPTION",
	Short: "Record an expense",
	Long: `Record an expense one person paid on behalf of the pool.

The cost is divided one of three ways:

  --among    equal split between the named people
  --share    exact share per person, as NAME=AMOUNT
  --percent  percentage share per person, as NAME=PERCENT

Examples:

  splitpot expenses add "Dinner" --amount 60 --payer Alice --among Alice,Bob,Carol
  splitpot expenses add "Rent" --amount 900 --payer Bob --share Alice=300,Bob=600
  splitpot expenses add "Groceries" --amount 80 --payer Carol --percent Alice=25,Carol=75`,
	Args: cobra.ExactArgs(1),
	RunE: runExpensesAdd,
}

var expensesRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an expense by its id (or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesRemove,
}

func init() {
	expensesAddCmd.Flags().Float64VarP(&flagExpenseAmount, "amount", "a", 0, "Total amount")
	expensesAddCmd.Flags().StringVarP(&flagExpensePayer, "payer", "p", "", "Who paid")
	expensesAddCmd.Flags().StringVarP(&flagExpenseDate, "date", "d", time.Now().Format("2006-01-02"), "When, as YYYY-MM-DD")
	expensesAddCmd.Flags().StringSliceVar(&flagExpenseAmong, "among", nil, "People sharing equally")
	expensesAddCmd.Flags().StringSliceVar(&flagExpenseShares, "share", nil, "Exact shares, NAME=AMOUNT")
	expensesAddCmd.Flags().StringSliceVar(&flagExpensePercents, "percent", nil, "Percentage shares, NAME=PERCENT")
	expensesAddCmd.MarkFlagRequired("amount")
	expensesAddCmd.MarkFlagRequired("payer")

	expensesCmd.AddCommand(expensesListCmd, expensesAddCmd, expensesRemoveCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpensesList(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		return err
	}
	if len(res.Msg.Expenses) == 0 {
		fmt.Println("No expenses recorded yet.")
		return nil
	}

	rows := make([][]string, len(res.Msg.Expenses))
	for i, e := range res.Msg.Expenses {
		shares := make([]string, len(e.Splits))
		for j, split := range e.Splits {
			shares[j] = fmt.Sprintf("%s %s", split.PersonName, cli.FormatAmount(split.Amount))
		}
		rows[i] = []string{
			shortID(e.ID),
			e.SpentOn,
			e.Description,
			cli.FormatAmount(e.Amount),
			e.PayerName,
			strings.Join(shares, ", "),
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Expenses",
		Headers: []string{"ID", "Date", "Description", "Amount", "Paid by", "For"},
		Rows:    rows,
	}))
	return nil
}

func runExpensesAdd(_ *cobra.Command, args []string) error {
	styles := 0
	for _, set := range []bool{len(flagExpenseAmong) > 0, len(flagExpenseShares) > 0, len(flagExpensePercents) > 0} {
		if set {
			styles++
		}
	}
	if styles != 1 {
		return fmt.Errorf("use exactly one of --among, --share or --percent")
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	byName, err := s.resolvePeople(ctx)
	if err != nil {
		return err
	}
	payerID, err := personID(byName, flagExpensePayer)
	if err != nil {
		return err
	}

	req := &api.CreateExpenseRequest{
		Description: args[0],
		Amount:      flagExpenseAmount,
		SpentOn:     flagExpenseDate,
		PayerID:     payerID,
	}

	switch {
	case len(flagExpenseAmong) > 0:
		for _, name := range flagExpenseAmong {
			id, err := personID(byName, strings.TrimSpace(name))
			if err != nil {
				return err
			}
			req.SplitAmong = append(req.SplitAmong, id)
		}
	case len(flagExpenseShares) > 0:
		for _, pair := range flagExpenseShares {
			name, amount, err := parseShare(pair)
			if err != nil {
				return err
			}
			id, err := personID(byName, name)
			if err != nil {
				return err
			}
			req.Splits = append(req.Splits, &api.SplitInput{PersonID: id, Amount: amount})
		}
	default:
		for _, pair := range flagExpensePercents {
			name, percent, err := parseShare(pair)
			if err != nil {
				return err
			}
			id, err := personID(byName, name)
			if err != nil {
				return err
			}
			req.Percents = append(req.Percents, &api.PercentInput{PersonID: id, Percent: percent})
		}
	}

	res, err := s.expenses.CreateExpense(ctx, connect.NewRequest(req))
	if err != nil {
		return err
	}
	e := res.Msg.Expense
	fmt.Printf("Recorded %q, %s paid %s\n", e.Description, e.PayerName, cli.FormatAmount(e.Amount))
	return nil
}

func runExpensesRemove(_ *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
	if err != nil {
		return err
	}

	var match *api.Expense
	for _, e := range res.Msg.Expenses {
		if strings.HasPrefix(e.ID, args[0]) {
			if match != nil {
				return fmt.Errorf("%q matches more than one expense", args[0])
			}
			match = e
		}
	}
	if match == nil {
		return fmt.Errorf("no expense with id %q", args[0])
	}

	if _, err := s.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: match.ID})); err != nil {
		return err
	}
	fmt.Printf("Deleted %q (%s)\n", match.Description, cli.FormatAmount(match.Amount))
	return nil
}

// parseShare splits a NAME=NUMBER flag value.
func parseShare(pair string) (string, float64, error) {
	name, raw, ok := strings.Cut(pair, "=")
	if !ok {
		return "", 0, fmt.Errorf("expected NAME=NUMBER, got %q", pair)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad number in %q", pair)
	}
	return strings.TrimSpace(name), value, nil
}
