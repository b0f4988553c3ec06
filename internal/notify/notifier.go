package notify

import (
	"fmt"

	"github.com/google/uuid"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/trimsalon/salon-queue-api/internal/config"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

const (
	ChannelPush  = "push"
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Message is one outbound notification. Exactly one channel is used
// per message, selected by Channel.
type Message struct {
	Channel string
	UserID  uint

	Token string // push
	Phone string // sms
	Email string // email

	Title    string
	Body     string
	Template string
	Data     map[string]string
}

// Notifier fans messages out to push/sms/email through a buffered
// queue and a worker goroutine. Sends are best-effort: a full queue
// drops the message, a failed send is logged, and neither ever
// reaches the caller's transaction.
type Notifier struct {
	queue chan Message

	push *expo.PushClient
	mail *gomail.Dialer
	from string
	sms  *SMSClient

	db  *gorm.DB
	log *zap.Logger
}

func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Notifier {
	n := &Notifier{
		queue: make(chan Message, 100),
		push:  expo.NewPushClient(nil),
		mail:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:  cfg.SMTPFrom,
		sms:   NewSMSClient(cfg.SMSApiURL, cfg.SMSApiKey),
		db:    db,
		log:   log,
	}

	go n.worker()
	return n
}

func (n *Notifier) Dispatch(msg Message) {
	select {
	case n.queue <- msg:
	default:
		n.log.Warn("notification queue full, dropping message",
			zap.String("channel", msg.Channel),
			zap.Uint("user_id", msg.UserID),
		)
	}
}

func (n *Notifier) worker() {
	for msg := range n.queue {
		var err error
		switch msg.Channel {
		case ChannelPush:
			err = n.sendPush(msg)
		case ChannelSMS:
			err = n.sms.Send(msg.Phone, msg.Body)
		case ChannelEmail:
			err = n.sendEmail(msg)
		default:
			err = fmt.Errorf("unknown channel %q", msg.Channel)
		}

		status := "sent"
		if err != nil {
			status = "failed"
			n.log.Error("notification send failed",
				zap.String("channel", msg.Channel),
				zap.Uint("user_id", msg.UserID),
				zap.Error(err),
			)
		}
		n.record(msg, status)
	}
}

// --------------------------------------------------
// Channels
// --------------------------------------------------

func (n *Notifier) sendPush(msg Message) error {
	token, err := expo.NewExponentPushToken(msg.Token)
	if err != nil {
		return err
	}

	data := make(map[string]string, len(msg.Data))
	for k, v := range msg.Data {
		data[k] = v
	}

	resp, err := n.push.Publish(&expo.PushMessage{
		To:       []expo.ExponentPushToken{token},
		Title:    msg.Title,
		Body:     msg.Body,
		Data:     data,
		Sound:    "default",
		Priority: expo.DefaultPriority,
	})
	if err != nil {
		return err
	}
	return resp.ValidateResponse()
}

func (n *Notifier) sendEmail(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", msg.Title)
	m.SetBody("text/html", renderTemplate(msg.Template, msg.Body, msg.Data))
	return n.mail.DialAndSend(m)
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (n *Notifier) record(msg Message, status string) {
	history := models.NotificationHistory{
		ID:      uuid.NewString(),
		UserID:  msg.UserID,
		Channel: msg.Channel,
		Title:   msg.Title,
		Body:    msg.Body,
		Status:  status,
	}
	if err := n.db.Create(&history).Error; err != nil {
		n.log.Error("notification history write failed", zap.Error(err))
	}
}
