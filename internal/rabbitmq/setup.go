package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Имена объектов брокера для событий-напоминаний о займах.
const (
	ExchangeName      = "notifications"
	LoanReminderQueue = "notifications.loan.reminder"
	LoanReminderKey   = "loan.reminder"
)

// SetupChannel открывает канал и объявляет exchange, очередь напоминаний
// и её привязку. Объявления идемпотентны.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(maxInFlight, 0, false); err != nil {
		return nil, fmt.Errorf("%s: set QoS: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		LoanReminderQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(LoanReminderQueue, LoanReminderKey, ExchangeName, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, err
}
