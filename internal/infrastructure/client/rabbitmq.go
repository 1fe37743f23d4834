package client

import (
	"context"
	"encoding/json"
	"log"

	"github.com/St1cky1/taskboard/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const NotificationQueue = "task_notifications"

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQClient(url string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Объявляем очередь уведомлений
	queue, err := channel.QueueDeclare(
		NotificationQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

// PublishTaskNotification кладет уведомление о назначении задачи в очередь
func (c *RabbitMQClient) PublishTaskNotification(ctx context.Context, message *entity.TaskNotification) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
		},
	)

	if err != nil {
		return err
	}

	log.Printf("Уведомление отправлено в RabbitMQ: задача %s для %s", message.TaskID, message.AssigneeEmail)
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
