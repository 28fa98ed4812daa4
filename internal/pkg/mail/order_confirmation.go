package mail

import (
	"fmt"
	"log"

	"github.com/padhisneha/vedida-ecommerce-sub000/app/models"
)

// SendOrderConfirmation sends the order confirmation mail after checkout.
// Failures are logged but never block the order itself.
func SendOrderConfirmation(user *models.User, order *models.Order) {
	subject := fmt.Sprintf("Your order %s is confirmed", order.OrderNumber)

	body := fmt.Sprintf(
		"<h2>Thank you for your order, %s!</h2>"+
			"<p>Order number: <strong>%s</strong></p>"+
			"<p>Scheduled delivery: %s</p>"+
			"<table border=\"0\" cellpadding=\"4\">",
		user.Name, order.OrderNumber, order.ScheduledDeliveryDate.Format("02 Jan 2006"),
	)
	for _, item := range order.Items {
		body += fmt.Sprintf("<tr><td>%s</td><td>%d x %s</td></tr>",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2))
	}
	body += fmt.Sprintf(
		"</table>"+
			"<p>Subtotal: %s</p>"+
			"<p>Taxes: CGST %s, SGST %s</p>"+
			"<p><strong>Total: %s</strong></p>",
		order.Subtotal.StringFixed(2), order.CGST.StringFixed(2),
		order.SGST.StringFixed(2), order.TotalAmount.StringFixed(2),
	)

	if err := SendMail(user.Email, subject, body); err != nil {
		log.Printf("order confirmation mail for %s failed: %v", order.OrderNumber, err)
	}
}
