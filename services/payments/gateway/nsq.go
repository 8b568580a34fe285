package gateway

import (
	"context"
	"time"

	"github.com/piresc/nebengtrip/internal/pkg/models"
	"github.com/piresc/nebengtrip/internal/pkg/nsq"
)

// PaymentGW publishes payment events to NSQ
type PaymentGW struct {
	producer *nsq.Producer
}

// NewPaymentGW creates a new payment gateway. A nil producer disables
// publishing.
func NewPaymentGW(producer *nsq.Producer) *PaymentGW {
	return &PaymentGW{producer: producer}
}

func (g *PaymentGW) publish(topic string, payment *models.Payment) error {
	if g.producer == nil {
		return nil
	}
	return g.producer.Publish(topic, models.PaymentEvent{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Refunded:  payment.Refunded,
		Timestamp: time.Now().UTC(),
	})
}

// PublishPaymentRecorded publishes a payment.recorded event
func (g *PaymentGW) PublishPaymentRecorded(ctx context.Context, payment *models.Payment) error {
	return g.publish(models.TopicPaymentRecorded, payment)
}

// PublishPaymentRefunded publishes a payment.refunded event
func (g *PaymentGW) PublishPaymentRefunded(ctx context.Context, payment *models.Payment) error {
	return g.publish(models.TopicPaymentRefunded, payment)
}
