package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/infrastructure/client"
	"github.com/St1cky1/taskboard/internal/infrastructure/mail"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotifyWorker читает очередь уведомлений и шлет письма исполнителям
type NotifyWorker struct {
	rabbitMQURL string
	sender      mail.EmailSender
}

func NewNotifyWorker(rabbitMQURL string, sender mail.EmailSender) *NotifyWorker {
	return &NotifyWorker{
		rabbitMQURL: rabbitMQURL,
		sender:      sender,
	}
}

func (w *NotifyWorker) Start(ctx context.Context) {
	// Отдельное соединение и канал для consumer'а
	conn, err := amqp.Dial(w.rabbitMQURL)
	if err != nil {
		log.Printf("❌ Ошибка подключения к RabbitMQ для воркера: %v", err)
		return
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Ошибка создания канала для воркера: %v", err)
		return
	}
	defer channel.Close()

	// Убеждаемся, что очередь существует
	_, err = channel.QueueDeclare(
		client.NotificationQueue, // name
		true,                     // durable
		false,                    // delete when unused
		false,                    // exclusive
		false,                    // no-wait
		nil,                      // arguments
	)
	if err != nil {
		log.Printf("❌ Ошибка объявления очереди: %v", err)
		return
	}

	msgs, err := channel.Consume(
		client.NotificationQueue, // queue
		"notify_worker",          // consumer tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // args
	)
	if err != nil {
		log.Printf("❌ Ошибка создания consumer: %v", err)
		return
	}

	fmt.Println("✅ Notify Worker запущен. Ожидаем сообщения...")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Notify Worker остановлен")
			return
		case msg, ok := <-msgs:
			if !ok {
				fmt.Println("📨 Канал сообщений закрыт")
				return
			}
			w.processMessage(msg)
		}
	}
}

func (w *NotifyWorker) processMessage(msg amqp.Delivery) {
	// 1. Парсим сообщение
	var notification entity.TaskNotification
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		log.Printf("❌ Ошибка парсинга сообщения: %v", err)
		msg.Nack(false, false) // Битое сообщение не возвращаем в очередь
		return
	}

	if notification.AssigneeEmail == "" {
		msg.Ack(false)
		return
	}

	// 2. Рендерим и отправляем письмо
	subject, body := RenderAssignmentEmail(&notification)
	if err := w.sender.Send(notification.AssigneeEmail, subject, body); err != nil {
		log.Printf("❌ Ошибка отправки письма: %v", err)
		msg.Nack(false, true) // Возвращаем в очередь для повторной отправки
		return
	}

	// 3. Подтверждаем обработку
	msg.Ack(false)
	log.Printf("✅ Письмо отправлено: задача %s -> %s", notification.TaskID, notification.AssigneeEmail)
}

// RenderAssignmentEmail собирает тему и тело письма о назначении задачи
func RenderAssignmentEmail(n *entity.TaskNotification) (subject, body string) {
	subject = fmt.Sprintf("📝 New Task Assigned: %s", n.Title)

	dueDate := "No due date"
	if n.DueDate != nil {
		dueDate = n.DueDate.Format("02.01.2006")
	}

	description := n.Description
	if description == "" {
		description = "No description provided."
	}

	name := n.AssigneeName
	if name == "" {
		name = "User"
	}

	body = fmt.Sprintf(`Hello %s,

A new task has been assigned to you.

Title: %s
Priority: %s
Due Date: %s

Description:
%s

Assigned by: %s

— Task Manager
`, name, n.Title, n.Priority, dueDate, description, n.AssignedBy)

	return subject, body
}
