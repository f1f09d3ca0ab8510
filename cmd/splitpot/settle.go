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
	flagSettleNote   string
	flagSettleDate   string
	flagSettleRecord bool
)

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Plan and record repayments",
	Long: `Without a subcommand, settle shows a short list of repayments
that would bring everyone back to zero. Pass --record to store those
repayments as settled, for when the group pays up on the spot.`,
	RunE: runSettlePlan,
}

var settleRecordCmd = &cobra.Command{
	Use:   "record FROM TO AMOUNT",
	Short: "Record that FROM paid TO back",
	Args:  cobra.ExactArgs(3),
	RunE:  runSettleRecord,
}

var settleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded repayments, newest first",
	RunE:  runSettleList,
}

var settleRemoveCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a repayment by its id (or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettleRemove,
}

func init() {
	settleCmd.Flags().BoolVar(&flagSettleRecord, "record", false, "Record the planned repayments as settled")
	settleRecordCmd.Flags().StringVarP(&flagSettleNote, "note", "n", "", "Optional note, e.g. \"cash\" or \"bank transfer\"")
	settleRecordCmd.Flags().StringVarP(&flagSettleDate, "date", "d", time.Now().Format("2006-01-02"), "When, as YYYY-MM-DD")

	settleCmd.AddCommand(settleRecordCmd, settleListCmd, settleRemoveCmd)
	rootCmd.AddCommand(settleCmd)
}

func runSettlePlan(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.ledger.GetSettlementPlan(ctx, connect.NewRequest(&api.GetSettlementPlanRequest{}))
	if err != nil {
		return err
	}
	if len(res.Msg.Transfers) == 0 {
		fmt.Println("Everyone is settled up.")
		return nil
	}

	rows := make([][]string, 0, len(res.Msg.Transfers)+2)
	for _, t := range res.Msg.Transfers {
		rows = append(rows, []string{t.FromName, t.ToName, cli.FormatAmount(t.Amount)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", cli.FormatAmount(res.Msg.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Settlement plan",
		Headers: []string{"From", "To", "Amount"},
		Rows:    rows,
	}))

	if !flagSettleRecord {
		fmt.Println(cli.Muted("Record one with: splitpot settle record FROM TO AMOUNT"))
		return nil
	}

	today := time.Now().Format("2006-01-02")
	for _, t := range res.Msg.Transfers {
		_, err := s.ledger.RecordSettlement(ctx, connect.NewRequest(&api.RecordSettlementRequest{
			FromPersonID: t.FromPersonID,
			ToPersonID:   t.ToPersonID,
			Amount:       t.Amount,
			SettledOn:    today,
		}))
		if err != nil {
			return fmt.Errorf("recording %s to %s: %w", t.FromName, t.ToName, err)
		}
		fmt.Printf("Recorded: %s paid %s back %s\n", t.FromName, t.ToName, cli.FormatAmount(t.Amount))
	}
	return nil
}

func runSettleRecord(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", args[2])
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
	fromID, err := personID(byName, args[0])
	if err != nil {
		return err
	}
	toID, err := personID(byName, args[1])
	if err != nil {
		return err
	}

	res, err := s.ledger.RecordSettlement(ctx, connect.NewRequest(&api.RecordSettlementRequest{
		FromPersonID: fromID,
		ToPersonID:   toID,
		Amount:       amount,
		Note:         flagSettleNote,
		SettledOn:    flagSettleDate,
	}))
	if err != nil {
		return err
	}
	st := res.Msg.Settlement
	fmt.Printf("Recorded: %s paid %s back %s\n", st.FromName, st.ToName, cli.FormatAmount(st.Amount))
	return nil
}

func runSettleList(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.ledger.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
	if err != nil {
		return err
	}
	if len(res.Msg.Settlements) == 0 {
		fmt.Println("No repayments recorded yet.")
		return nil
	}

	rows := make([][]string, len(res.Msg.Settlements))
	for i, st := range res.Msg.Settlements {
		rows[i] = []string{
			shortID(st.ID),
			st.SettledOn,
			st.FromName,
			st.ToName,
			cli.FormatAmount(st.Amount),
			st.Note,
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Repayments",
		Headers: []string{"ID", "Date", "From", "To", "Amount", "Note"},
		Rows:    rows,
	}))
	return nil
}

func runSettleRemove(_ *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.ledger.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
	if err != nil {
		return err
	}

	var match *api.Settlement
	for _, st := range res.Msg.Settlements {
		if strings.HasPrefix(st.ID, args[0]) {
			if match != nil {
				return fmt.Errorf("%q matches more than one repayment", args[0])
			}
			match = st
		}
	}
	if match == nil {
		return fmt.Errorf("no repayment with id %q", args[0])
	}

	if _, err := s.ledger.DeleteSettlement(ctx, connect.NewRequest(&api.DeleteSettlementRequest{SettlementID: match.ID})); err != nil {
		return err
	}
	fmt.Printf("Deleted repayment %s to %s (%s)\n", match.FromName, match.ToName, cli.FormatAmount(match.Amount))
	return nil
}
