// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/webhook"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the webhook could not be reached or answered badly
	ExitNetworkError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrTurnFailed is returned by line-mode commands when the webhook turn did
// not produce a reply.
var ErrTurnFailed = errors.New(session.GenericFailureMessage)

// UsageError reports bad arguments.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// turnError keeps the webhook cause of a failed turn for exit code mapping.
type turnError struct {
	cause error
}

func (e *turnError) Error() string {
	return ErrTurnFailed.Error()
}

func (e *turnError) Is(target error) bool {
	return target == ErrTurnFailed
}

func (e *turnError) Unwrap() error {
	return e.cause
}

// =============================================================================
// ERROR HANDLING
// =============================================================================

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var validationErr config.ValidationError
	var validateErrs config.ValidateErrors
	if errors.As(err, &validationErr) || errors.As(err, &validateErrs) ||
		errors.Is(err, config.ErrConfigExists) || errors.Is(err, webhook.ErrNoURL) {
		return ExitConfigError
	}

	if errors.Is(err, webhook.ErrTransport) || errors.Is(err, webhook.ErrStatus) ||
		errors.Is(err, webhook.ErrDecode) {
		return ExitNetworkError
	}

	return ExitGeneralError
}

// DisplayError prints an error in the CLI's error style.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("[Error]"), err)
}
