package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// UsersExchange — exchange для событий о пользователях.
const UsersExchange = "users"

// UserRegisteredEvent — событие о регистрации нового пользователя.
type UserRegisteredEvent struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher публикует события о пользователях в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher открывает канал и объявляет exchange для событий.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		UsersExchange, // exchange
		"direct",      // тип
		true,          // durable
		false,         // auto-delete
		false,         // internal
		false,         // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{ch: ch}, nil
}

// UserRegistered публикует событие user.registered.
func (p *Publisher) UserRegistered(username string) error {
	const op = "rabbitmq.UserRegistered"
	body, err := json.Marshal(UserRegisteredEvent{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		UsersExchange,
		"user.registered",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал публикации.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
