package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	// NativeAPIObjectName is the script-visible name of the editor API
	NativeAPIObjectName = "aiassistantsubsystem"

	codeExecutedMessage = "Code executed successfully."
)

// ClipboardWriter places text on the system clipboard
type ClipboardWriter interface {
	WriteText(text string) error
}

// NativeAPI is the editor functionality the assistant page may call
type NativeAPI struct {
	executor  domain.CodeExecutor
	clipboard ClipboardWriter
	timeout   time.Duration
}

// NewNativeAPI creates the page-callable editor API
func NewNativeAPI(executor domain.CodeExecutor, clipboard ClipboardWriter, timeout time.Duration) *NativeAPI {
	return &NativeAPI{
		executor:  executor,
		clipboard: clipboard,
		timeout:   timeout,
	}
}

// ExecuteCode runs code and returns the text shown to the user
func (a *NativeAPI) ExecuteCode(ctx context.Context, code string) string {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	result := a.executor.Execute(ctx, code)
	if result.Success && result.Output == "" {
		return codeExecutedMessage
	}
	return result.Output
}

// CopyToClipboard places text on the clipboard
func (a *NativeAPI) CopyToClipboard(text string) error {
	if a.clipboard == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	return a.clipboard.WriteText(text)
}

// NativeMethods exposes the API to the page
func (a *NativeAPI) NativeMethods() map[string]domain.NativeMethod {
	return map[string]domain.NativeMethod{
		"executepythonscriptviajavascript": func(args []json.RawMessage) (json.RawMessage, error) {
			code, err := singleStringArg(args)
			if err != nil {
				return nil, err
			}
			return json.Marshal(a.ExecuteCode(context.Background(), code))
		},
		"copytoclipboard": func(args []json.RawMessage) (json.RawMessage, error) {
			text, err := singleStringArg(args)
			if err != nil {
				return nil, err
			}
			if err := a.CopyToClipboard(text); err != nil {
				logger.Warn("Failed to copy to clipboard", "error", err)
				return nil, err
			}
			return nil, nil
		},
	}
}

func singleStringArg(args []json.RawMessage) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	var value string
	if err := json.Unmarshal(args[0], &value); err != nil {
		return "", fmt.Errorf("expected a string argument: %w", err)
	}
	return value, nil
}
