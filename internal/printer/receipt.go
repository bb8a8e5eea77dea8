package printer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"

	"prince-pos/internal/domain"
)

const (
	PrintTypeReceipt = "receipt"
	PrintTypeKitchen = "kitchen"
)

// QRGenerator produces the QR image embedded on receipts.
type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%d/", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order #{{.Order.ID}}</title></head>
<body style="font-family: monospace; width: 280px;">
<h2 style="text-align:center;">{{.Title}}</h2>
<p>Order #{{.Order.ID}}<br>
{{.Order.OrderedAt.Format "2006-01-02 15:04"}}<br>
Type: {{.Order.OrderType}}{{if .Order.TableNumber}} / Table {{.Order.TableNumber}}{{end}}</p>
<hr>
<table style="width:100%;">
{{range .Order.Items}}<tr><td>{{.Quantity}}x {{.DishName}}</td><td style="text-align:right;">{{printf "%.2f" .TotalAmount}}</td></tr>
{{if .Note}}<tr><td colspan="2">&nbsp;&nbsp;note: {{.Note}}</td></tr>{{end}}
{{range .Extras}}<tr><td colspan="2">&nbsp;&nbsp;+ {{.Name}}</td></tr>
{{end}}{{end}}
</table>
<hr>
{{if .ShowTotal}}<p style="text-align:right;"><b>Total: {{printf "%.2f" .Order.TotalAmount}}</b></p>{{end}}
{{if .QRCode}}<p style="text-align:center;"><img src="data:image/png;base64,{{.QRCode}}" width="128" height="128"></p>{{end}}
</body>
</html>
`))

// Renderer turns an order into the printable HTML handed to a Printer.
type Renderer struct {
	QR QRGenerator
}

func NewRenderer(qr QRGenerator) *Renderer {
	return &Renderer{QR: qr}
}

// Render produces a customer receipt or a kitchen ticket. The kitchen copy
// carries no prices and no QR code.
func (r *Renderer) Render(order *domain.Order, printType string) (string, error) {
	data := struct {
		Title     string
		Order     *domain.Order
		ShowTotal bool
		QRCode    string
	}{
		Order: order,
	}

	switch printType {
	case PrintTypeKitchen:
		data.Title = "KITCHEN"
	default:
		data.Title = "RECEIPT"
		data.ShowTotal = true
		if r.QR != nil {
			if png, err := r.QR.Generate(order.ID); err == nil {
				data.QRCode = base64.StdEncoding.EncodeToString(png)
			}
		}
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", printType, err)
	}
	return buf.String(), nil
}
