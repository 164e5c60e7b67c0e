package utils

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/streadway/amqp"
)

const ordersExchange = "orders"

var (
	amqpMu   sync.Mutex
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
)

// InitEventPublisher connects to the broker when AMQP_URL is configured.
// Order events are an integration surface for the seller's own tooling;
// the platform works without it.
func InitEventPublisher(url string) {
	if url == "" {
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Println("AMQP publisher disabled:", err)
		return
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Println("AMQP publisher disabled:", err)
		conn.Close()
		return
	}

	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		log.Println("AMQP publisher disabled:", err)
		ch.Close()
		conn.Close()
		return
	}

	amqpMu.Lock()
	amqpConn = conn
	amqpCh = ch
	amqpMu.Unlock()
}

func CloseEventPublisher() {
	amqpMu.Lock()
	defer amqpMu.Unlock()
	if amqpCh != nil {
		amqpCh.Close()
		amqpCh = nil
	}
	if amqpConn != nil {
		amqpConn.Close()
		amqpConn = nil
	}
}

// PublishEvent emits a JSON event on the orders exchange. Best effort only.
func PublishEvent(routingKey string, payload interface{}) {
	amqpMu.Lock()
	ch := amqpCh
	amqpMu.Unlock()
	if ch == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	err = ch.Publish(ordersExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Println("Could not publish event:", err)
	}
}
