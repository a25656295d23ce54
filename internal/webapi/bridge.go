package webapi

import (
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
	utils "github.com/inference-gateway/editor-assistant/internal/utils"
)

// ObjectName is the page object exposing the assistant's script API
const ObjectName = "window.eda"

const (
	functionCreateConversation       = "createConversation"
	functionAddMessageToConversation = "addMessageToConversation"
	functionAddAgentEnvironment      = "addAgentEnvironment"
	functionSetAgentEnvironment      = "setAgentEnvironment"
	functionUpdateGlobalLocale       = "updateGlobalLocale"
)

const functionCallTemplate = "\n" +
	"try {\n" +
	"  Promise.resolve({WebApiObjectName}.{FunctionName}({Arguments})).then(\n" +
	"    (result) => {\n" +
	"      {NotifyHandlerOfResult}\n" +
	"    },\n" +
	"    (error) => {\n" +
	"      {NotifyHandlerOfError}\n" +
	"    });\n" +
	"} catch (error) {\n" +
	"  {NotifyHandlerOfError}\n" +
	"}\n"

// ScriptError carries the error payload a page function rejected with
type ScriptError struct {
	Function string
	Payload  string
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Function, e.Payload)
}

// IsCanceled reports whether the call was canceled by unbinding
func (e *ScriptError) IsCanceled() bool {
	return e.Payload == CanceledError
}

// WebAPI calls the assistant page's script API and routes the results back
type WebAPI struct {
	executor domain.ScriptExecutor
	binder   domain.ObjectBinder
	router   *ResultRouter
}

// NewWebAPI creates a bridge over the page's executor and binder
func NewWebAPI(executor domain.ScriptExecutor, binder domain.ObjectBinder) *WebAPI {
	return &WebAPI{
		executor: executor,
		binder:   binder,
		router:   NewResultRouter(),
	}
}

// Router returns the result router backing this bridge
func (a *WebAPI) Router() *ResultRouter {
	return a.router
}

// Bind exposes the result router to the page
func (a *WebAPI) Bind() error {
	return a.router.Bind(a.binder)
}

// BindObject exposes object to the page under name
func (a *WebAPI) BindObject(name string, object domain.NativeObject, permanent bool) error {
	return a.binder.BindObject(name, object, permanent)
}

// UnbindObject removes a previously bound object
func (a *WebAPI) UnbindObject(name string, object domain.NativeObject, permanent bool) error {
	return a.binder.UnbindObject(name, object, permanent)
}

// Close unbinds the result router, canceling pending calls
func (a *WebAPI) Close() {
	a.router.Unbind()
}

// FormatResultAndErrorHandlers returns the success and error statements
// reporting to handlerID.
func (a *WebAPI) FormatResultAndErrorHandlers(handlerID string) (string, string) {
	if handlerID == "" {
		return "", ""
	}
	return a.router.FormatJavaScriptHandler(handlerID, "result", false),
		a.router.FormatJavaScriptHandler(handlerID, "error", true)
}

// FormatFunctionCall builds the script calling fn with args. With an empty
// handlerID the result is discarded.
func (a *WebAPI) FormatFunctionCall(fn, args, handlerID string) string {
	onResult, onError := a.FormatResultAndErrorHandlers(handlerID)
	return strings.NewReplacer(
		"{WebApiObjectName}", ObjectName,
		"{FunctionName}", fn,
		"{Arguments}", args,
		"{NotifyHandlerOfResult}", onResult,
		"{NotifyHandlerOfError}", onError,
	).Replace(functionCallTemplate)
}

// ExecuteFunction calls fn and returns a future completed with its result
func (a *WebAPI) ExecuteFunction(fn, args string) *utils.Future[Result] {
	handlerID, future := a.router.RegisterResultHandlerForFuture()
	a.executeAsyncFunction(fn, args, handlerID)
	return future
}

func (a *WebAPI) executeAsyncFunction(fn, args, handlerID string) {
	logger.Debug("Executing page function", "function", fn, "handler_id", handlerID)
	a.executor.ExecuteScript(a.FormatFunctionCall(fn, args, handlerID))
}

// CreateConversation starts a new conversation in the page
func (a *WebAPI) CreateConversation() *utils.Future[struct{}] {
	promise := utils.NewPromise[struct{}]()
	a.ExecuteFunction(functionCreateConversation, "").Then(func(result Result, _ error) {
		if result.IsError {
			promise.Reject(&ScriptError{Function: functionCreateConversation, Payload: result.JSON})
			return
		}
		promise.Resolve(struct{}{})
	})
	return promise.Future()
}

// AddMessageToConversation posts a message. The page's answer is not awaited.
func (a *WebAPI) AddMessageToConversation(options AddMessageToConversationOptions) error {
	args, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal message options: %w", err)
	}
	a.executeAsyncFunction(functionAddMessageToConversation, string(args), "")
	return nil
}

// AddAgentEnvironment registers env and returns a future for its handle
func (a *WebAPI) AddAgentEnvironment(env AgentEnvironment) *utils.Future[AgentEnvironmentHandle] {
	args, err := json.Marshal(env)
	if err != nil {
		return utils.RejectedFuture[AgentEnvironmentHandle](fmt.Errorf("failed to marshal agent environment: %w", err))
	}

	promise := utils.NewPromise[AgentEnvironmentHandle]()
	a.ExecuteFunction(functionAddAgentEnvironment, string(args)).Then(func(result Result, _ error) {
		if result.IsError {
			promise.Reject(&ScriptError{Function: functionAddAgentEnvironment, Payload: result.JSON})
			return
		}
		var handle AgentEnvironmentHandle
		if err := json.Unmarshal([]byte(result.JSON), &handle); err != nil {
			promise.Reject(fmt.Errorf("failed to parse agent environment handle: %w", err))
			return
		}
		promise.Resolve(handle)
	})
	return promise.Future()
}

// SetAgentEnvironment selects the agent environment for new conversations
func (a *WebAPI) SetAgentEnvironment(id AgentEnvironmentID) error {
	args, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to marshal agent environment id: %w", err)
	}
	a.executeAsyncFunction(functionSetAgentEnvironment, string(args), "")
	return nil
}

// UpdateGlobalLocale tells the page which language to display
func (a *WebAPI) UpdateGlobalLocale(code string) error {
	args, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("failed to marshal locale: %w", err)
	}
	a.executeAsyncFunction(functionUpdateGlobalLocale, string(args), "")
	return nil
}
