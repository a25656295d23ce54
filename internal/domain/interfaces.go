package domain

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate go tool counterfeiter -generate

// NativeMethod receives the JSON-encoded call arguments and returns a
// JSON-encoded result.
type NativeMethod func(args []json.RawMessage) (json.RawMessage, error)

// NativeObject is a native object exposed to the page by name. Method
// names are lowercased when bound.
type NativeObject interface {
	NativeMethods() map[string]NativeMethod
}

// ScriptExecutor runs script text inside the embedded page
//
//counterfeiter:generate . ScriptExecutor
type ScriptExecutor interface {
	ExecuteScript(script string)
}

// ObjectBinder exposes native objects in the page's script namespace
//
//counterfeiter:generate . ObjectBinder
type ObjectBinder interface {
	BindObject(name string, object NativeObject, permanent bool) error
	UnbindObject(name string, object NativeObject, permanent bool) error
}

// WebView is the embedded rendering surface
//
//counterfeiter:generate . WebView
type WebView interface {
	ScriptExecutor
	ObjectBinder
	LoadURL(url string) error
}

// ExternalBrowser opens URLs outside the embedded surface
//
//counterfeiter:generate . ExternalBrowser
type ExternalBrowser interface {
	OpenURL(url string) error
}

// Dispatcher runs work on the UI goroutine
type Dispatcher interface {
	Post(fn func())
}

// ConfigSource is a mutable key/value configuration with batched change
// notification.
type ConfigSource interface {
	GetBool(key string) bool
	OnChange(fn func()) (cancel func())
}

// LocaleProvider reports the editor's current language code
type LocaleProvider interface {
	Language() string
}

// Transactor groups native script side effects into one undoable transaction
//
//counterfeiter:generate . Transactor
type Transactor interface {
	Begin(title string) int
	End() int
	Cancel(index int)
}

// ScriptLogType classifies a captured scripting engine log line
type ScriptLogType int

const (
	ScriptLogInfo ScriptLogType = iota
	ScriptLogWarning
	ScriptLogError
)

// ScriptLogEntry is one line of output captured during script execution
type ScriptLogEntry struct {
	Type   ScriptLogType
	Output string
}

// ScriptEngine executes native script code and captures its log output
//
//counterfeiter:generate . ScriptEngine
type ScriptEngine interface {
	Run(ctx context.Context, code string) ([]ScriptLogEntry, bool)
}

// CodeExecutionResult is the outcome of running native code on behalf of the page
type CodeExecutionResult struct {
	Success          bool
	Output           string
	TransactionTitle string
}

// CodeExecutor runs code on behalf of the page
type CodeExecutor interface {
	Execute(ctx context.Context, code string) CodeExecutionResult
}

// QueryRecord is one user message submitted to the assistant
type QueryRecord struct {
	ID        string    `json:"id"`
	Visible   string    `json:"visible"`
	Hidden    string    `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryRecorder persists submitted user messages
//
//counterfeiter:generate . QueryRecorder
type QueryRecorder interface {
	RecordQuery(ctx context.Context, record QueryRecord) error
}
