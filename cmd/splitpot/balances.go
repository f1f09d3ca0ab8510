package main

import (
	"fmt"
	"math"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/cli"
	"github.com/splitpot/splitpot/internal/models"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show who has paid what and where everyone stands",
	RunE:  runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.ledger.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{}))
	if err != nil {
		return err
	}
	if len(res.Msg.Balances) == 0 {
		fmt.Println("The pool is empty. Add someone with: splitpot people add NAME")
		return nil
	}

	rows := make([][]string, len(res.Msg.Balances))
	for i, b := range res.Msg.Balances {
		rows[i] = []string{
			b.Name,
			cli.FormatAmount(b.TotalPaid),
			cli.FormatAmount(b.TotalOwed),
			cli.FormatSigned(b.Net),
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Balances",
		Headers: []string{"Person", "Paid", "Owed", "Net"},
		Rows:    rows,
	}))

	settled := true
	for _, b := range res.Msg.Balances {
		switch {
		case b.Net > models.MoneyEpsilon:
			fmt.Println(cli.Credit(fmt.Sprintf("%s is owed %s", b.Name, cli.FormatAmount(b.Net))))
			settled = false
		case b.Net < -models.MoneyEpsilon:
			fmt.Println(cli.Debt(fmt.Sprintf("%s owes %s", b.Name, cli.FormatAmount(math.Abs(b.Net)))))
			settled = false
		}
	}
	if settled {
		fmt.Println("Everyone is settled up.")
	}
	return nil
}
