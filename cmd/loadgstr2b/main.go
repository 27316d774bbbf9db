// Command loadgstr2b imports a GSTR-2B Excel statement into the reference
// ledger. It reads the B2B sheet and replaces the (owner, period) snapshot
// wholesale.
// Usage: go run ./cmd/loadgstr2b -file gstr2b.xlsx -owner 27AAACR5055K1Z5 -period 04-2024
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstitc/internal/config"
	"gstitc/internal/domain"
	"gstitc/internal/repository/postgres"
)

const sheetName = "B2B"

// dateLayouts covers the formats seen in portal exports.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		filePath = flag.String("file", "", "path to the GSTR-2B xlsx export")
		owner    = flag.String("owner", "", "owner GSTIN the statement belongs to")
		period   = flag.String("period", "", "return period as MM-YYYY")
	)
	flag.Parse()

	if *filePath == "" || *owner == "" || *period == "" {
		return fmt.Errorf("usage: loadgstr2b -file <xlsx> -owner <gstin> -period <MM-YYYY>")
	}
	if !domain.ValidPeriodKey(*period) {
		return fmt.Errorf("invalid period %q: %w", *period, domain.ErrInvalidPeriodKey)
	}

	entries, err := parseWorkbook(*filePath)
	if err != nil {
		return err
	}
	log.Printf("parsed %d reference entries from %s", len(entries), *filePath)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := postgres.NewReferenceLedgerRepo(db)
	if err := repo.ReplacePeriod(context.Background(), *owner, *period, entries); err != nil {
		return err
	}
	log.Printf("replaced snapshot for owner %s period %s", *owner, *period)
	return nil
}

// parseWorkbook reads the B2B sheet. Expected columns:
// vendor GSTIN, invoice number, invoice date, taxable value, CGST, SGST, IGST.
// The first row is a header and is skipped; blank rows are skipped.
func parseWorkbook(path string) ([]domain.ReferenceLedgerEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	var entries []domain.ReferenceLedgerEntry
	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 7 {
			return nil, fmt.Errorf("row %d: expected 7 columns, got %d", i+1, len(row))
		}

		date, err := parseDate(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amounts := make([]domain.Money, 4)
		for j, col := range []int{3, 4, 5, 6} {
			amounts[j], err = parseAmount(row[col])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, col+1, err)
			}
		}

		entries = append(entries, domain.ReferenceLedgerEntry{
			VendorGSTIN:   strings.TrimSpace(row[0]),
			InvoiceNumber: strings.TrimSpace(row[1]),
			InvoiceDate:   date,
			TaxableValue:  amounts[0],
			CGST:          amounts[1],
			SGST:          amounts[2],
			IGST:          amounts[3],
		})
	}
	return entries, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseAmount(s string) (domain.Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return domain.MoneyZero, nil
	}
	m, err := decimal.NewFromString(s)
	if err != nil {
		return domain.MoneyZero, fmt.Errorf("unparseable amount %q", s)
	}
	return m, nil
}
