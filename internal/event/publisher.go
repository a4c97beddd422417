package event

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"devconnect-service/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

const exchangeName = "devconnect.events"

type Publisher interface {
	PublishProfileEvent(event *models.ProfileEvent) error
	PublishUserEvent(event *models.UserRegisteredEvent) error
	PublishPostEvent(event *models.PostEvent) error
	Close() error
}

type EventPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			exchange: exchangeName,
			enabled:  false,
		}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Printf("Event publisher initialized with exchange: %s", exchangeName)

	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchangeName,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishProfileEvent(event *models.ProfileEvent) error {
	return p.publish(string(event.EventType), event, amqp091.Table{
		"event_type": string(event.EventType),
		"profile_id": event.ProfileID,
		"user_id":    event.UserID,
	})
}

func (p *EventPublisher) PublishUserEvent(event *models.UserRegisteredEvent) error {
	return p.publish(string(event.EventType), event, amqp091.Table{
		"event_type": string(event.EventType),
		"user_id":    event.UserID,
	})
}

func (p *EventPublisher) PublishPostEvent(event *models.PostEvent) error {
	return p.publish(string(event.EventType), event, amqp091.Table{
		"event_type": string(event.EventType),
		"post_id":    event.PostID,
		"user_id":    event.UserID,
	})
}

func (p *EventPublisher) publish(routingKey string, event any, headers amqp091.Table) error {
	if !p.enabled {
		log.Printf("Event publishing disabled, skipping event: %s", routingKey)
		return nil
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.Publish(
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         eventData,
			Headers:      headers,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Printf("Published event: %s", routingKey)
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}

	return nil
}

// MockPublisher records published events for tests.
type MockPublisher struct {
	ProfileEvents []models.ProfileEvent
	UserEvents    []models.UserRegisteredEvent
	PostEvents    []models.PostEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishProfileEvent(event *models.ProfileEvent) error {
	m.ProfileEvents = append(m.ProfileEvents, *event)
	return nil
}

func (m *MockPublisher) PublishUserEvent(event *models.UserRegisteredEvent) error {
	m.UserEvents = append(m.UserEvents, *event)
	return nil
}

func (m *MockPublisher) PublishPostEvent(event *models.PostEvent) error {
	m.PostEvents = append(m.PostEvents, *event)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
