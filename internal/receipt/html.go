package receipt

import (
	"bytes"
	"fmt"
	"html/template"
)

// The document layout is fixed: brand header, greeting referencing the
// order, one row per item, one aggregate row, then the stored order total.
// The aggregate row and the total row are independent values and both
// render verbatim.
const documentTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <style>
      body {
        font-family: -apple-system, sans-serif;
        padding: 20px;
        margin: 0;
        color: #2d3748;
        background-color: #f8f9fa;
      }
      .container { padding: 40px 20px; }
      .header { margin-bottom: 30px; padding: 20px; }
      .section { margin: 15px 0; border-top: 1px solid #eee; border-bottom: 1px solid #eee; padding: 10px 0; }
      .item-row { display: flex; justify-content: space-between; padding: 10px 0; }
      .total { font-weight: bold; font-size: 1.2em; margin-top: 20px; background-color: #f8f9fa; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1 style="margin: 0; color: #2d3748; text-align: center;">REFNET</h1>
      </div>
      <p>Hello <b>{{.OrderID}},</b></p>
      <p>You have successfully paid for the order #{{.OrderID}}</p>

      <div class="section">
        <p><b>Items</b></p>
        {{range .Items}}
        <div class="item-row">
          <div>
            <p style="margin: 0;">{{.Name}}</p>
            <p style="margin: 5px 0 0 0; color: #666;">Quantity: {{.Quantity}}</p>
          </div>
          <p style="margin: 0;">{{formatPrice .Amount}}</p>
        </div>
        {{end}}
        <div class="item-row">
          <div>
            <p style="margin: 0;">Items total</p>
            <p style="margin: 5px 0 0 0; color: #666;">Quantity: {{.ItemCount}}</p>
          </div>
          <p style="margin: 0;">{{formatPrice .ItemTotal}}</p>
        </div>
      </div>

      <div class="total item-row">
        <span>Total</span>
        <span>{{formatPrice .Total}}</span>
      </div>
    </div>
  </body>
</html>
`

var documentTmpl = template.Must(
	template.New("receipt").
		Funcs(template.FuncMap{"formatPrice": FormatPrice}).
		Parse(documentTemplate),
)

// FormatPrice renders a money amount the way the receipts show it.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// RenderHTML produces the receipt document as an HTML string.
func RenderHTML(r Receipt) (string, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}
