// Package export mirrors the ledger into a Google spreadsheet.
//
// Every sync is a full rewrite of both tabs. The spreadsheet is a
// read-only view for people who will never touch the API, and at this
// scale rewriting a few hundred rows is cheaper than tracking which
// ones changed.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// Exporter writes ledger snapshots to a Google spreadsheet.
type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	ledgerSheet   string
	balancesSheet string
}

// NewExporter builds a sheets client from a service account key file.
// The service account needs write access to the spreadsheet.
func NewExporter(ctx context.Context, credentialsFile, spreadsheetID, ledgerSheet, balancesSheet string) (*Exporter, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ledgerSheet:   ledgerSheet,
		balancesSheet: balancesSheet,
	}, nil
}

// Resync rewrites both tabs from the current state of the store.
func (e *Exporter) Resync(ctx context.Context, store storage.Store) error {
	people, err := store.ListPeople(ctx)
	if err != nil {
		return fmt.Errorf("list people: %w", err)
	}
	expenses, err := store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	settlements, err := store.ListSettlements(ctx)
	if err != nil {
		return fmt.Errorf("list settlements: %w", err)
	}

	if err := e.writeSheet(ctx, e.ledgerSheet, ledgerRows(people, expenses, settlements)); err != nil {
		return fmt.Errorf("write %s: %w", e.ledgerSheet, err)
	}

	balances := ledger.ComputeBalances(people, expenses, settlements)
	if err := e.writeSheet(ctx, e.balancesSheet, balanceRows(balances)); err != nil {
		return fmt.Errorf("write %s: %w", e.balancesSheet, err)
	}

	slog.InfoContext(ctx, "Spreadsheet resynced",
		"people", len(people),
		"expenses", len(expenses),
		"settlements", len(settlements))
	return nil
}

// writeSheet clears a tab and rewrites it from the first cell down.
func (e *Exporter) writeSheet(ctx context.Context, sheet string, rows [][]any) error {
	clearRange := fmt.Sprintf("%s!A:Z", sheet)
	_, err := e.svc.Spreadsheets.Values.
		Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear values: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1", sheet)
	_, err = e.svc.Spreadsheets.Values.
		Update(e.spreadsheetID, writeRange, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update values: %w", err)
	}

	return nil
}

// ledgerRows flattens expenses and settlements into one table, newest
// first, under a header row. Expense rows carry the share breakdown in
// the last column; settlement rows carry the recipient there.
func ledgerRows(people []models.Person, expenses []models.Expense, settlements []models.Settlement) [][]any {
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	type entry struct {
		date string
		row  []any
	}
	entries := make([]entry, 0, len(expenses)+len(settlements))

	for _, e := range expenses {
		shares := make([]string, len(e.Splits))
		for i, s := range e.Splits {
			shares[i] = fmt.Sprintf("%s %.2f", names[s.PersonID], s.Amount)
		}
		entries = append(entries, entry{
			date: e.SpentOn,
			row:  []any{e.SpentOn, "expense", e.Description, round2(e.Amount), names[e.PayerID], strings.Join(shares, ", ")},
		})
	}

	for _, s := range settlements {
		entries = append(entries, entry{
			date: s.SettledOn,
			row:  []any{s.SettledOn, "settlement", s.Note, round2(s.Amount), names[s.FromPersonID], names[s.ToPersonID]},
		})
	}

	// ISO dates order correctly as strings. The stable sort keeps the
	// storage order (newest created first) within a single day.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].date > entries[j].date })

	rows := make([][]any, 0, len(entries)+1)
	rows = append(rows, []any{"Date", "Type", "Description", "Amount", "Paid by", "For"})
	for _, e := range entries {
		rows = append(rows, e.row)
	}
	return rows
}

// balanceRows renders one row per person under a header row.
func balanceRows(balances []ledger.Balance) [][]any {
	rows := make([][]any, 0, len(balances)+1)
	rows = append(rows, []any{"Person", "Paid", "Owed", "Net"})
	for _, b := range balances {
		rows = append(rows, []any{b.Name, round2(b.TotalPaid), round2(b.TotalOwed), round2(b.Net)})
	}
	return rows
}

// round2 trims float dust so cells show clean cent amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
