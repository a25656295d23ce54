package webapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	uuid "github.com/google/uuid"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
	utils "github.com/inference-gateway/editor-assistant/internal/utils"
)

const (
	// ResultRouterName is the script-visible name of the result sink
	ResultRouterName = "aiassistantresultdelegate"

	// NativeNamespace is the script object native objects are bound under
	NativeNamespace = "window.ue"

	// CanceledError is the payload delivered to futures pending at unbind
	CanceledError = `"canceled"`

	handleResultMethod = "handleresult"
)

// Result is a JSON payload returned by the page
type Result struct {
	JSON    string
	IsError bool
}

// ResultHandlerContext is passed to result handlers
type ResultHandlerContext struct {
	Result
	HandlerID string
}

// ResultHandler consumes a result. Returning true unregisters it.
type ResultHandler func(ctx ResultHandlerContext) bool

// ResultRouter receives results the page reports back for script calls and
// routes them to the handler registered under the call's handler ID.
type ResultRouter struct {
	handlersMu sync.Mutex
	handlers   map[string]ResultHandler

	promisesMu sync.Mutex
	promises   map[string]*utils.Promise[Result]

	bindMu sync.Mutex
	binder domain.ObjectBinder

	newID func() string
}

// NewResultRouter creates an unbound router
func NewResultRouter() *ResultRouter {
	return &ResultRouter{
		handlers: make(map[string]ResultHandler),
		promises: make(map[string]*utils.Promise[Result]),
		newID:    func() string { return uuid.New().String() },
	}
}

// RegisterResultHandler stores handler under a fresh handler ID
func (r *ResultRouter) RegisterResultHandler(handler ResultHandler) string {
	id := r.newID()
	r.registerWithID(id, handler)
	return id
}

func (r *ResultRouter) registerWithID(id string, handler ResultHandler) {
	r.handlersMu.Lock()
	r.handlers[id] = handler
	r.handlersMu.Unlock()
}

// RegisterResultHandlerForFuture registers a one-shot handler that
// completes the returned future. The promise is stored before the handler
// becomes reachable.
func (r *ResultRouter) RegisterResultHandlerForFuture() (string, *utils.Future[Result]) {
	id := r.newID()
	promise := utils.NewPromise[Result]()

	r.promisesMu.Lock()
	r.promises[id] = promise
	r.promisesMu.Unlock()

	r.registerWithID(id, func(ctx ResultHandlerContext) bool {
		r.completePending(ctx.HandlerID, ctx.Result)
		return true
	})

	return id, promise.Future()
}

func (r *ResultRouter) completePending(id string, result Result) bool {
	r.promisesMu.Lock()
	promise, ok := r.promises[id]
	delete(r.promises, id)
	r.promisesMu.Unlock()

	if !ok {
		return false
	}
	return promise.Resolve(result)
}

// HandleResult delivers a result to the handler registered under id.
// Unknown IDs are ignored; late results after unbind are expected.
func (r *ResultRouter) HandleResult(id, resultJSON string, isError bool) {
	r.handlersMu.Lock()
	handler, ok := r.handlers[id]
	r.handlersMu.Unlock()

	if !ok {
		logger.Debug("Ignoring result for unknown handler", "handler_id", id)
		return
	}

	done := handler(ResultHandlerContext{
		Result:    Result{JSON: resultJSON, IsError: isError},
		HandlerID: id,
	})
	if done {
		r.handlersMu.Lock()
		delete(r.handlers, id)
		r.handlersMu.Unlock()
	}
}

// PendingHandlers returns the number of registered handlers
func (r *ResultRouter) PendingHandlers() int {
	r.handlersMu.Lock()
	defer r.handlersMu.Unlock()
	return len(r.handlers)
}

// PendingFutures returns the number of unfulfilled futures
func (r *ResultRouter) PendingFutures() int {
	r.promisesMu.Lock()
	defer r.promisesMu.Unlock()
	return len(r.promises)
}

// FormatJavaScriptHandler returns the script statement that reports
// valueExpr back to the handler registered under id.
func (r *ResultRouter) FormatJavaScriptHandler(id, valueExpr string, isError bool) string {
	return fmt.Sprintf("%s.%s.%s(%s, JSON.stringify(%s), %t);",
		NativeNamespace, ResultRouterName, handleResultMethod, strconv.Quote(id), valueExpr, isError)
}

// NativeMethods exposes handleresult(id, json, isError) to the page
func (r *ResultRouter) NativeMethods() map[string]domain.NativeMethod {
	return map[string]domain.NativeMethod{
		handleResultMethod: r.handleResultCall,
	}
}

func (r *ResultRouter) handleResultCall(args []json.RawMessage) (json.RawMessage, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%s expects 3 arguments, got %d", handleResultMethod, len(args))
	}

	var id, resultJSON string
	var isError bool
	if err := json.Unmarshal(args[0], &id); err != nil {
		return nil, fmt.Errorf("invalid handler id: %w", err)
	}
	if err := json.Unmarshal(args[1], &resultJSON); err != nil {
		// non-string payloads pass through verbatim
		resultJSON = string(args[1])
	}
	if err := json.Unmarshal(args[2], &isError); err != nil {
		return nil, fmt.Errorf("invalid error flag: %w", err)
	}

	r.HandleResult(id, resultJSON, isError)
	return nil, nil
}

// Bind exposes the router to the page through binder
func (r *ResultRouter) Bind(binder domain.ObjectBinder) error {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()

	if err := binder.BindObject(ResultRouterName, r, true); err != nil {
		return fmt.Errorf("failed to bind %s: %w", ResultRouterName, err)
	}
	r.binder = binder
	return nil
}

// Unbind removes the router from the page and cancels every pending
// future. Calling it again does nothing.
func (r *ResultRouter) Unbind() {
	r.bindMu.Lock()
	binder := r.binder
	r.binder = nil
	r.bindMu.Unlock()

	if binder != nil {
		if err := binder.UnbindObject(ResultRouterName, r, true); err != nil {
			logger.Warn("Failed to unbind result router", "error", err)
		}
	}

	r.promisesMu.Lock()
	pending := r.promises
	r.promises = make(map[string]*utils.Promise[Result])
	r.promisesMu.Unlock()

	if len(pending) == 0 {
		return
	}

	r.handlersMu.Lock()
	for id := range pending {
		delete(r.handlers, id)
	}
	r.handlersMu.Unlock()

	for _, promise := range pending {
		promise.Resolve(Result{JSON: CanceledError, IsError: true})
	}
}
