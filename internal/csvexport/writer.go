// Package csvexport renders reconciliation results as CSV for download
// into spreadsheet tooling.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gstitc/internal/domain"
	"gstitc/internal/matching"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Partition",
	"Vendor GSTIN",
	"Invoice Number",
	"Invoice Date",
	"Confidence",
	"Local Taxable",
	"Local CGST",
	"Local SGST",
	"Local IGST",
	"Reference Taxable",
	"Reference CGST",
	"Reference SGST",
	"Reference IGST",
	"Taxable Diff",
	"CGST Diff",
	"SGST Diff",
	"IGST Diff",
}

// Writer wraps csv.Writer for exporting reconciliation results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes one row per record: matched and mismatched pairs
// first, then local-only invoices, then reference-only entries.
func (w *Writer) WriteResult(result *matching.ReconciliationResult) error {
	for i := range result.Matched {
		if err := w.csv.Write(pairToRow("matched", &result.Matched[i])); err != nil {
			return err
		}
	}
	for i := range result.Mismatched {
		if err := w.csv.Write(pairToRow("amount_mismatch", &result.Mismatched[i])); err != nil {
			return err
		}
	}
	for _, inv := range result.LocalOnly {
		if err := w.csv.Write(localToRow(inv)); err != nil {
			return err
		}
	}
	for _, ref := range result.ReferenceOnly {
		if err := w.csv.Write(referenceToRow(ref)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func pairToRow(partition string, pair *matching.MatchedPair) []string {
	row := make([]string, len(columns))
	row[0] = partition
	row[1] = pair.Local.VendorGSTIN
	row[2] = pair.Local.InvoiceNumber
	row[3] = pair.Local.InvoiceDate.Format(time.DateOnly)
	row[4] = strconv.Itoa(pair.Result.Confidence)
	row[5] = money(pair.Local.TaxableAmount)
	row[6] = money(pair.Local.CGST)
	row[7] = money(pair.Local.SGST)
	row[8] = money(pair.Local.IGST)
	row[9] = money(pair.Reference.TaxableValue)
	row[10] = money(pair.Reference.CGST)
	row[11] = money(pair.Reference.SGST)
	row[12] = money(pair.Reference.IGST)
	if d := pair.Result.Detail; d != nil {
		row[13] = money(d.TaxableDiff)
		row[14] = money(d.CGSTDiff)
		row[15] = money(d.SGSTDiff)
		row[16] = money(d.IGSTDiff)
	}
	return row
}

func localToRow(inv *domain.PurchaseInvoice) []string {
	row := make([]string, len(columns))
	row[0] = "local_only"
	row[1] = inv.VendorGSTIN
	row[2] = inv.InvoiceNumber
	row[3] = inv.InvoiceDate.Format(time.DateOnly)
	row[5] = money(inv.TaxableAmount)
	row[6] = money(inv.CGST)
	row[7] = money(inv.SGST)
	row[8] = money(inv.IGST)
	return row
}

func referenceToRow(ref *domain.ReferenceLedgerEntry) []string {
	row := make([]string, len(columns))
	row[0] = "reference_only"
	row[1] = ref.VendorGSTIN
	row[2] = ref.InvoiceNumber
	row[3] = ref.InvoiceDate.Format(time.DateOnly)
	row[9] = money(ref.TaxableValue)
	row[10] = money(ref.CGST)
	row[11] = money(ref.SGST)
	row[12] = money(ref.IGST)
	return row
}

func money(m domain.Money) string {
	return domain.Round2(m).StringFixed(2)
}
