package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ClientReport is the data rendered into a financial report document.
type ClientReport struct {
	ClientName       string
	Industry         string
	GeneratedAt      time.Time
	Invoices         []InvoiceLine
	Transactions     []TransactionLine
	TotalInvoiced    decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal
}

// InvoiceLine is one invoice row in the report.
type InvoiceLine struct {
	InvoiceDate time.Time
	DueDate     time.Time
	AmountDue   decimal.Decimal
	AmountPaid  decimal.Decimal
	Status      string
}

// TransactionLine is one transaction row in the report.
type TransactionLine struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}

// PDFRenderer renders client financial reports as PDF documents.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes and a suggested filename.
func (r *PDFRenderer) Render(data ClientReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 10, "Financial Report")
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 10, data.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, data.ClientName)
	pdf.Ln(6)
	if data.Industry != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 8, data.Industry)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Invoices")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(30, 7, "Invoice Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Due Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Amount Due", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Amount Paid", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range data.Invoices {
		pdf.CellFormat(30, 6, line.InvoiceDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, line.DueDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 6, line.AmountDue.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, line.AmountPaid.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, line.Status, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Transactions")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Category", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Description", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range data.Transactions {
		pdf.CellFormat(30, 6, line.Date.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 6, line.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, line.Category, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 6, line.Description, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 7, "Total invoiced: "+data.TotalInvoiced.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 7, "Total paid: "+data.TotalPaid.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 7, "Outstanding: "+data.TotalOutstanding.StringFixed(2))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("render report pdf: %w", err)
	}

	filename := fmt.Sprintf("financial_report_%s.pdf", data.GeneratedAt.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
