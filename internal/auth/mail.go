// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
)

// Sender delivers emailed codes. The production deployment plugs in a real
// mail provider; development runs log the code instead.
type Sender interface {
	/*
		SendConfirmationCode emails a registration-confirmation code.
	*/
	SendConfirmationCode(context context.Context, email, code string) error

	/*
		SendRecoveryCode emails a password-recovery code.
	*/
	SendRecoveryCode(context context.Context, email, code string) error
}

// LogSender implements [Sender] by writing the code to the structured log.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender wires the development mail sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ Sender = (*LogSender)(nil)

// SendConfirmationCode implements [Sender].
func (sender *LogSender) SendConfirmationCode(context context.Context, email, code string) error {
	sender.logger.InfoContext(context, "registration confirmation code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}

// SendRecoveryCode implements [Sender].
func (sender *LogSender) SendRecoveryCode(context context.Context, email, code string) error {
	sender.logger.InfoContext(context, "password recovery code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
