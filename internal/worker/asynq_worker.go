package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/songgate/internal/logger"
	"github.com/songgate/internal/provider"
	"github.com/songgate/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles the async task types.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVerifyCodeEmail, c.handleVerifyCodeEmail)
}

func (c *Consumer) handleVerifyCodeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verify_code_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerifyCodeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verify_code_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || strings.TrimSpace(payload.Code) == "" {
		logger.Debugw("worker_verify_code_email_skip_invalid_payload", "email", email)
		return nil
	}
	if c.VerificationService == nil {
		logger.Warnw("worker_verify_code_email_skip_service_nil", "email", email)
		return nil
	}
	if err := c.VerificationService.DeliverCode(email, payload.Code, payload.Locale); err != nil {
		logger.Warnw("worker_verify_code_email_send_failed", "email", email, "error", err)
		return err
	}
	logger.Infow("worker_verify_code_email_sent", "email", email)
	return nil
}
