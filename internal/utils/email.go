package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"pataspace_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@pataspace.shop"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_pataspace.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
				<td>%.2f</td>
			</tr>`, item.ProductID, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif;">
	<h1>Merci pour votre commande PataSpace !</h1>
	<p>Votre commande <strong>%s</strong> a bien été enregistrée (statut : %s).</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Produit</th><th>Quantité</th><th>Prix unitaire</th><th>Sous-total</th></tr>
		%s
	</table>
	<p><strong>Total : %.2f</strong></p>
	<p>Vous recevrez un e-mail dès l'expédition.</p>
</body>
</html>`, order.ID.String(), order.Status, itemsHTML, order.Total)
}

// SendOrderConfirmation envoie la confirmation de commande avec la facture PDF
// en pièce jointe quand le rendu a réussi (sinon e-mail seul).
func SendOrderConfirmation(order models.Order, userEmail string) {
	html := GenerateOrderConfirmationHTML(order)

	pdf, err := RenderInvoicePDF(order)
	if err != nil {
		log.Printf("⚠️ Facture PDF indisponible pour %s: %v", order.ID, err)
		pdf = nil
	}

	subject := fmt.Sprintf("🛒 Confirmation de commande %s - PataSpace", order.ID.String()[:8])
	if err := SendConfirmationEmail(userEmail, subject, html, pdf); err != nil {
		log.Printf("❌ Erreur envoi confirmation commande: %v", err)
	}
}
