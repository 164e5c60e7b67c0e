package utils

import (
	"fmt"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
)

// NotifySellerAboutNewOrder fans a new order out to every channel the seller
// has: open dashboard sockets, Telegram, email and the order event exchange.
// Runs in its own goroutine; every channel is best effort and a failure in
// one never blocks the others or the buyer's response.
func NotifySellerAboutNewOrder(config *initializers.Config, seller *models.Seller, order *models.Order, link *models.CheckoutLink) {
	SendPersonalMessageToSeller(seller.ID.String(), "order.created", order)

	SendTelegramNotification(seller.TelegramChatID, fmt.Sprintf(
		"New order: %d × %s (%s) — %d %s\n%s, %s",
		order.Quantity, link.Name, order.SelectedSize,
		order.TotalPrice, link.Currency,
		order.ContactSnapshot.FullName, order.ContactSnapshot.Phone,
	))

	_ = SendOrderEmail(config, seller, order, link)

	PublishEvent("order.created", map[string]interface{}{
		"order_id":         order.ID,
		"seller_id":        order.SellerID,
		"checkout_link_id": order.CheckoutLinkID,
		"quantity":         order.Quantity,
		"total_price":      order.TotalPrice,
		"currency":         link.Currency,
		"created_at":       order.CreatedAt,
	})
}
