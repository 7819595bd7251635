// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/domain/cart"
	"github.com/your-org/sportsplus-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for a placed order. The
// stored order total is the pre-tax sum of its lines; the tax shown
// here is derived for display only.
func (s *Service) GenerateReceipt(ord *order.Order) (*bytes.Buffer, error) {
	subtotal := ord.Total
	tax := (subtotal*cart.TaxRateBasisPoints + 5000) / 10000

	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", ord.OrderNumber),
		OrderDate:     ord.CreatedAt.Format("January 2, 2006"),
		Order:         ord,
		Subtotal:      formatCents(subtotal),
		Tax:           formatCents(tax),
		Total:         formatCents(subtotal + tax),
		Store: storeInfo{
			Name:    s.config.Store.Name,
			Address: s.config.Store.Address,
			Email:   s.config.Store.Email,
			Phone:   s.config.Store.Phone,
		},
	}

	for _, item := range ord.Items {
		data.Lines = append(data.Lines, receiptLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: formatCents(item.UnitPrice),
			LineTotal: formatCents(item.LineTotal),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

type receiptData struct {
	ReceiptNumber string
	OrderDate     string
	Order         *order.Order
	Lines         []receiptLine
	Subtotal      string
	Tax           string
	Total         string
	Store         storeInfo
}

type receiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type storeInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #222; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; }
        .store-name { font-size: 24px; font-weight: bold; }
        .meta { text-align: right; font-size: 12px; color: #555; }
        .shipping { margin-bottom: 20px; font-size: 13px; }
        table { width: 100%; border-collapse: collapse; font-size: 13px; }
        th { text-align: left; border-bottom: 2px solid #222; padding: 6px 4px; }
        td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
        .num { text-align: right; }
        .totals { margin-top: 16px; width: 40%; margin-left: auto; font-size: 13px; }
        .totals td { border: none; padding: 3px 4px; }
        .grand { font-weight: bold; border-top: 2px solid #222; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="store-name">{{.Store.Name}}</div>
            <div>{{.Store.Address}}</div>
            <div>{{.Store.Email}} {{.Store.Phone}}</div>
        </div>
        <div class="meta">
            <div>Receipt {{.ReceiptNumber}}</div>
            <div>Order {{.Order.OrderNumber}}</div>
            <div>{{.OrderDate}}</div>
        </div>
    </div>

    <div class="shipping">
        <strong>Ship to:</strong><br>
        {{.Order.FullName}}<br>
        {{.Order.Address}}<br>
        {{.Order.City}} {{.Order.ZipCode}}
    </div>

    <table>
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Unit Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
        <tr><td>Tax (8%)</td><td class="num">{{.Tax}}</td></tr>
        <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
    </table>
</body>
</html>
`
