package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
)

var orderEmailTmpl = template.Must(template.New("orderEmail").Parse(`
<h2>New order for {{ .LinkName }}</h2>
<p>{{ .Buyer.FullName }} ({{ .Buyer.Phone }}) ordered {{ .Quantity }} × {{ .LinkName }}
(size {{ .SelectedSize }}) for a total of {{ .TotalPrice }} {{ .Currency }}.</p>
<p>Delivery: {{ .DeliveryMethod }}, {{ .Buyer.City }}, {{ .Buyer.Address }}</p>
`))

type orderEmailData struct {
	LinkName       string
	Buyer          models.ContactSnapshot
	Quantity       int
	SelectedSize   string
	TotalPrice     int64
	Currency       string
	DeliveryMethod string
}

// SendOrderEmail mails the seller about a new order. Best effort only.
func SendOrderEmail(config *initializers.Config, seller *models.Seller, order *models.Order, link *models.CheckoutLink) error {
	if config.SMTPHost == "" {
		return nil
	}

	var body bytes.Buffer
	err := orderEmailTmpl.Execute(&body, orderEmailData{
		LinkName:       link.Name,
		Buyer:          order.ContactSnapshot,
		Quantity:       order.Quantity,
		SelectedSize:   order.SelectedSize,
		TotalPrice:     order.TotalPrice,
		Currency:       link.Currency,
		DeliveryMethod: order.DeliveryMethod,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.EmailFrom)
	m.SetHeader("To", seller.Email)
	m.SetHeader("Subject", fmt.Sprintf("New order: %s ×%d", link.Name, order.Quantity))
	m.SetBody("text/html", body.String())
	m.AddAlternative("text/plain", html2text.HTML2Text(body.String()))

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("Could not send order email:", err)
		return err
	}

	return nil
}
