package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"pataspace_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR génère un QR code base64 pointant vers le suivi de la
// commande, prêt à mettre dans <img src="...">.
func GenerateOrderQR(orderID string) (string, error) {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	trackURL := base + "/orders/" + orderID

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoiceHTML construit la facture de la commande, QR de suivi inclus.
func GenerateInvoiceHTML(order models.Order) string {
	qr, err := GenerateOrderQR(order.ID.String())
	if err != nil {
		qr = ""
	}

	itemsHTML := ""
	for _, item := range order.Items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
				<td>%.2f</td>
			</tr>`, name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; margin: 40px; }
		table { border-collapse: collapse; width: 100%%; }
		th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
		.total { font-size: 1.2em; font-weight: bold; margin-top: 16px; }
	</style>
</head>
<body>
	<h1>Facture PataSpace</h1>
	<p>Commande %s — %s — statut : %s</p>
	<table>
		<tr><th>Produit</th><th>Quantité</th><th>Prix unitaire</th><th>Sous-total</th></tr>
		%s
	</table>
	<p class="total">Total : %.2f</p>
	<img src="%s" alt="Suivi de commande" width="128" height="128" />
</body>
</html>`,
		order.ID.String(),
		order.CreatedAt.Format("02/01/2006"),
		order.Status,
		itemsHTML,
		order.Total,
		qr,
	)
}

// RenderInvoicePDF imprime la facture HTML en PDF via Chrome headless.
func RenderInvoicePDF(order models.Order) ([]byte, error) {
	html := GenerateInvoiceHTML(order)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
