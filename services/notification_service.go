// services/notification_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"servic-backend/metrics"
	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
)

const (
	channelSMS = "sms"

	notificationSent   = "sent"
	notificationFailed = "failed"
)

// TwilioNotifier sends SMS through the Twilio REST API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

var _ interfaces.INotifier = (*TwilioNotifier)(nil)

// NewTwilioNotifier returns nil when any credential is missing, which
// disables notifications.
func NewTwilioNotifier(accountSid, authToken, from string) *TwilioNotifier {
	if accountSid == "" || authToken == "" || from == "" {
		return nil
	}
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *TwilioNotifier) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// NotificationService texts the account that placed an order whenever its
// status changes, and keeps a log of every attempt. Delivery problems are
// logged and never surface to the caller.
type NotificationService struct {
	sender interfaces.INotifier
	logs   interfaces.INotificationLogRepository
	log    logrus.FieldLogger
	now    func() time.Time
}

var _ OrderNotifier = (*NotificationService)(nil)

func NewNotificationService(sender interfaces.INotifier, logs interfaces.INotificationLogRepository, log logrus.FieldLogger) *NotificationService {
	return &NotificationService{sender: sender, logs: logs, log: log, now: time.Now}
}

func (s *NotificationService) OrderStatusChanged(ctx context.Context, order models.Order, entry models.OrderHistory) {
	if s.sender == nil || order.User.Phone == "" {
		return
	}

	message := StatusMessage(order, entry)
	fields := logrus.Fields{"order_id": order.ID, "user_id": order.UserID}

	status, errorMsg := notificationSent, ""
	sid, err := s.sender.Send(ctx, order.User.Phone, message)
	if err != nil {
		status, errorMsg = notificationFailed, err.Error()
		s.log.WithFields(fields).WithError(err).Warn("failed to send order notification")
	} else {
		s.log.WithFields(fields).WithField("sid", sid).Debug("order notification sent")
	}
	metrics.ObserveNotification(status)

	record := models.NotificationLog{
		OrderID:      order.ID,
		UserID:       order.UserID,
		Channel:      channelSMS,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       s.now(),
	}
	if err := s.logs.Create(ctx, &record); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("failed to log order notification")
	}
}

// StatusMessage is the text sent for a status change.
func StatusMessage(order models.Order, entry models.OrderHistory) string {
	name := order.Service.Name
	if name == "" {
		name = "order " + shortID(order.ID)
	}
	return fmt.Sprintf("Your %s booking for %s at %s is now: %s",
		name, order.Date.Format("2006-01-02"), clockMinutes(order.Time), entry.NewStatus.Label())
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func clockMinutes(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}

const defaultNotificationLimit = 100

// List returns recent delivery attempts, newest first. Admins only.
func (s *NotificationService) List(ctx context.Context, actor models.User, orderID *uuid.UUID) ([]models.NotificationLog, error) {
	if !policy.IsAdmin(actor) {
		return nil, forbidden("view notifications")
	}
	return s.logs.List(ctx, orderID, defaultNotificationLimit)
}
