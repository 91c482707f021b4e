package queue

import (
	"encoding/json"

	"github.com/songgate/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyCodeEmail delivers a verification code email.
	TaskVerifyCodeEmail = constants.TaskVerifyCodeEmail
)

// VerifyCodeEmailPayload is the verification code email task payload.
type VerifyCodeEmailPayload struct {
	Email  string `json:"email"`
	Code   string `json:"code"`
	Locale string `json:"locale"`
}

// NewVerifyCodeEmailTask builds a verification code email task.
func NewVerifyCodeEmailTask(payload VerifyCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyCodeEmail, body), nil
}
