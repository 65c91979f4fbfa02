package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/kmaxwell/bloglist/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		recipient: recipient,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendRegistrationNotice consumes user.created events and mails the operator
// a notice for each new account. Sends are retried with jittered exponential
// backoff before the delivery is given up on.
func (s *MailService) SendRegistrationNotice() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					Username string
					Name     string
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.recipient, data, "new_user_email.html")
					if err == nil {
						s.logger.Info("registration notice sent", slog.String("username", data.Username))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying registration notice", slog.String("username", data.Username), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send registration notice", slog.String("username", data.Username))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendRegistrationNotice due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) Close() {
	s.cancel()
}
