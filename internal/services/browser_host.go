package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	uuid "github.com/google/uuid"

	config "github.com/inference-gateway/editor-assistant/config"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
	webapi "github.com/inference-gateway/editor-assistant/internal/webapi"
)

const (
	environmentNameEditor = "UE"
	environmentNameUEFN   = "UEFN"
)

// BrowserHostOptions carries the collaborators of a BrowserHost
type BrowserHostOptions struct {
	View          domain.WebView
	External      domain.ExternalBrowser
	Dispatcher    domain.Dispatcher
	ModeWatch     *ModeWatch
	Locale        domain.LocaleProvider
	Recorder      domain.QueryRecorder
	Assistant     *config.AssistantConfig
	EditorVersion string
	// NativeObjects are bound permanently under their map keys when the
	// page is opened.
	NativeObjects map[string]domain.NativeObject
}

// BrowserHost owns the assistant page: it polices navigation, tracks load
// state, configures the agent environment and queues conversation work
// until the page can accept it. All methods except the accessors must be
// called on the dispatcher goroutine.
type BrowserHost struct {
	view          domain.WebView
	external      domain.ExternalBrowser
	dispatcher    domain.Dispatcher
	modeWatch     *ModeWatch
	locale        domain.LocaleProvider
	recorder      domain.QueryRecorder
	assistant     *config.AssistantConfig
	allowList     *config.URLAllowList
	editorVersion string
	nativeObjects map[string]domain.NativeObject

	api     *webapi.WebAPI
	gate    *ConversationGate
	modeSub *ModeSubscription

	mu                    sync.RWMutex
	loadState             domain.LoadState
	lastOpenedURL         string
	lastNonRedirectURL    string
	lastNavigationAllowed bool
	openedURLChanged      bool
	environmentUEFN       *bool
}

// NewBrowserHost creates a host. Call Open to bind the page API and load
// the assistant.
func NewBrowserHost(opts BrowserHostOptions) *BrowserHost {
	assistant := opts.Assistant
	if assistant == nil {
		assistant = config.DefaultAssistantConfig()
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = InlineDispatcher{}
	}

	return &BrowserHost{
		view:          opts.View,
		external:      opts.External,
		dispatcher:    dispatcher,
		modeWatch:     opts.ModeWatch,
		locale:        opts.Locale,
		recorder:      opts.Recorder,
		assistant:     assistant,
		allowList:     assistant.AllowList(),
		editorVersion: opts.EditorVersion,
		nativeObjects: opts.NativeObjects,
		api:           webapi.NewWebAPI(opts.View, opts.View),
	}
}

// WebAPI returns the bridge to the page's script API
func (h *BrowserHost) WebAPI() *webapi.WebAPI {
	return h.api
}

// Open binds the native objects and loads the main URL
func (h *BrowserHost) Open() error {
	if err := h.api.Bind(); err != nil {
		return err
	}
	for name, object := range h.nativeObjects {
		if err := h.api.BindObject(name, object, true); err != nil {
			return err
		}
	}

	h.ensureGate()
	logger.Info("Opening assistant page", "url", h.assistant.MainURL)
	return h.view.LoadURL(h.assistant.MainURL)
}

func (h *BrowserHost) ensureGate() *ConversationGate {
	if h.gate == nil {
		h.gate = NewConversationGate(h.readinessState)
	}
	return h.gate
}

func (h *BrowserHost) readinessState() domain.ReadinessState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch h.loadState {
	case domain.LoadStateComplete:
		if h.isAssistantPageLoadedLocked() {
			return domain.ReadinessExecute
		}
		return domain.ReadinessWait
	case domain.LoadStateError:
		return domain.ReadinessReject
	default:
		return domain.ReadinessWait
	}
}

func (h *BrowserHost) isAssistantPageLoadedLocked() bool {
	return strings.HasPrefix(h.lastOpenedURL, h.assistant.MainURL)
}

// IsAssistantPageLoaded reports whether the last navigation targeted the
// assistant's main URL.
func (h *BrowserHost) IsAssistantPageLoaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isAssistantPageLoadedLocked()
}

// CanCallNative reports whether the page may call the native object
// named object. Results are always accepted; everything else needs the
// assistant page loaded through an allowed navigation. Safe to call from
// any goroutine.
func (h *BrowserHost) CanCallNative(object string) bool {
	if strings.EqualFold(object, webapi.ResultRouterName) {
		return true
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastNavigationAllowed && h.isAssistantPageLoadedLocked()
}

// LoadState returns the page's current load state
func (h *BrowserHost) LoadState() domain.LoadState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadState
}

// PendingMessages returns the number of queued conversation operations
func (h *BrowserHost) PendingMessages() int {
	if h.gate == nil {
		return 0
	}
	return h.gate.PendingCount()
}

func (h *BrowserHost) setLoadState(state domain.LoadState) {
	h.mu.Lock()
	h.loadState = state
	h.mu.Unlock()

	logger.Debug("Assistant page load state changed", "state", state.String())
	h.ensureGate().Pump()
}

// OnBeforeNavigation decides whether the page may navigate to url. It
// returns true when the navigation is blocked, in which case url is handed
// to the external browser.
func (h *BrowserHost) OnBeforeNavigation(url string, isRedirect bool) bool {
	h.mu.Lock()
	h.openedURLChanged = url != h.lastOpenedURL
	h.lastOpenedURL = url

	allowed := h.allowList.CanLoad(url)
	if !allowed && isRedirect {
		allowed = h.allowList.CanLoad(h.lastNonRedirectURL)
	}
	if allowed && !isRedirect {
		h.lastNonRedirectURL = url
	}
	h.lastNavigationAllowed = allowed
	h.mu.Unlock()

	if allowed {
		return false
	}

	logger.Info("Opening disallowed navigation externally", "url", url, "redirect", isRedirect)
	h.openExternal(url)
	return true
}

// OnBeforePopup sends every popup to the external browser and blocks it
func (h *BrowserHost) OnBeforePopup(url string) bool {
	h.openExternal(url)
	return true
}

func (h *BrowserHost) openExternal(url string) {
	if h.external == nil {
		logger.Warn("No external browser configured", "url", url)
		return
	}
	if err := h.external.OpenURL(url); err != nil {
		logger.Error("Could not open URL", "url", url, "error", err)
	}
}

// OnConsoleMessage forwards a page console message to the log
func (h *BrowserHost) OnConsoleMessage(severity domain.ConsoleSeverity, message, source string, line int) {
	switch severity {
	case domain.ConsoleSeverityError, domain.ConsoleSeverityFatal:
		logger.Error("JavaScript Error", "message", message, "source", source, "line", line)
	case domain.ConsoleSeverityWarning:
		logger.Warn("JavaScript Warning", "message", message, "source", source, "line", line)
	default:
		logger.Info("JavaScript", "message", message, "source", source, "line", line)
	}
}

// OnLoadStarted records that the page began loading
func (h *BrowserHost) OnLoadStarted() {
	h.setLoadState(domain.LoadStateStarted)
}

// OnLoadError records a failed load. Queued work is rejected.
func (h *BrowserHost) OnLoadError() {
	h.setLoadState(domain.LoadStateError)
}

// OnLoadCompleted starts following the mode variable and refreshes the
// agent environment when the page changed.
func (h *BrowserHost) OnLoadCompleted() {
	if h.modeSub == nil && h.modeWatch != nil {
		enabled, sub := h.modeWatch.Follow(h.onModeChanged)
		h.modeSub = sub
		h.UpdateAgentEnvironment(enabled)
	}

	h.mu.RLock()
	changed := h.openedURLChanged
	uefn := h.environmentUEFN != nil && *h.environmentUEFN
	h.mu.RUnlock()

	if changed {
		h.UpdateAgentEnvironment(uefn)
	}
}

// onModeChanged runs on the config watcher's goroutine
func (h *BrowserHost) onModeChanged(enabled bool) {
	h.dispatcher.Post(func() { h.UpdateAgentEnvironment(enabled) })
}

// UpdateAgentEnvironment registers the agent environment for the given
// mode when the assistant page is loaded and the mode is new. Otherwise
// the page is simply marked complete.
func (h *BrowserHost) UpdateAgentEnvironment(uefn bool) {
	h.mu.Lock()
	needsUpdate := h.isAssistantPageLoadedLocked() &&
		(h.environmentUEFN == nil || *h.environmentUEFN != uefn)
	if needsUpdate {
		h.environmentUEFN = &uefn
	}
	h.mu.Unlock()

	if !needsUpdate {
		h.setLoadState(domain.LoadStateComplete)
		return
	}

	name := environmentNameEditor
	if uefn {
		name = environmentNameUEFN
	}
	env := webapi.AgentEnvironment{
		Descriptor: webapi.AgentEnvironmentDescriptor{
			EnvironmentName:    name,
			EnvironmentVersion: h.editorVersion,
		},
	}

	logger.Info("Configuring agent environment", "environment", name, "version", h.editorVersion)
	h.api.AddAgentEnvironment(env).Then(func(handle webapi.AgentEnvironmentHandle, err error) {
		h.dispatcher.Post(func() { h.onAgentEnvironmentAdded(handle, err) })
	})
	h.OnLocaleChanged()
}

func (h *BrowserHost) onAgentEnvironmentAdded(handle webapi.AgentEnvironmentHandle, err error) {
	var scriptErr *webapi.ScriptError
	if errors.As(err, &scriptErr) && scriptErr.IsCanceled() {
		logger.Debug("Agent environment request canceled")
		h.mu.Lock()
		h.environmentUEFN = nil
		h.mu.Unlock()
		return
	}
	if err != nil {
		logger.Error("Failed to add agent environment", "error", err)
		h.mu.Lock()
		h.environmentUEFN = nil
		h.mu.Unlock()

		h.gate = NewConversationGate(h.readinessState)
		h.setLoadState(domain.LoadStateError)
		return
	}

	if err := h.api.SetAgentEnvironment(webapi.AgentEnvironmentID{ID: handle.ID}); err != nil {
		logger.Error("Failed to select agent environment", "error", err)
	}
	h.ensureGate().NotifyEnvironmentConfigured()
	h.setLoadState(domain.LoadStateComplete)
}

// OnLocaleChanged pushes the editor language to the page
func (h *BrowserHost) OnLocaleChanged() {
	if h.locale == nil {
		return
	}
	if err := h.api.UpdateGlobalLocale(h.locale.Language()); err != nil {
		logger.Error("Failed to update page locale", "error", err)
	}
}

// OnClosed resets the load state and drops queued conversation work
func (h *BrowserHost) OnClosed() {
	h.mu.Lock()
	h.loadState = domain.LoadStateDefault
	h.mu.Unlock()
	h.gate = nil
}

// CreateConversation starts a new conversation unless one is already
// being created. Work queued before the new conversation is dropped.
func (h *BrowserHost) CreateConversation() {
	gate := h.ensureGate()
	if gate.SetCreatingConversation(true) {
		return
	}
	h.api.CreateConversation().Then(func(_ struct{}, err error) {
		if err != nil {
			logger.Warn("Create conversation failed", "error", err)
		}
		h.dispatcher.Post(func() { gate.SetCreatingConversation(false) })
	})
}

// AddUserMessageToConversation queues a user message made of a visible
// prompt and hidden context. Empty parts are omitted.
func (h *BrowserHost) AddUserMessageToConversation(visible, hidden string) {
	options := webapi.AddMessageToConversationOptions{
		Message: webapi.Message{Role: webapi.MessageRoleUser},
	}
	if visible != "" {
		options.Message.Content = append(options.Message.Content, webapi.NewTextContent(visible, true))
	}
	if hidden != "" {
		options.Message.Content = append(options.Message.Content, webapi.NewTextContent(hidden, false))
	}

	h.recordQuery(visible, hidden)

	h.ensureGate().Submit(func() {
		if err := h.api.AddMessageToConversation(options); err != nil {
			logger.Error("Failed to add message to conversation", "error", err)
		}
	})
}

func (h *BrowserHost) recordQuery(visible, hidden string) {
	if h.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := domain.QueryRecord{
		ID:        uuid.New().String(),
		Visible:   visible,
		Hidden:    hidden,
		CreatedAt: time.Now(),
	}
	if err := h.recorder.RecordQuery(ctx, record); err != nil {
		logger.Warn("Failed to record query", "error", err)
	}
}

// Close unsubscribes from mode changes and cancels pending page calls
func (h *BrowserHost) Close() {
	h.modeSub.Close()
	h.modeSub = nil

	for name, object := range h.nativeObjects {
		if err := h.api.UnbindObject(name, object, true); err != nil {
			logger.Debug("Failed to unbind native object", "name", name, "error", err)
		}
	}
	h.api.Close()
	h.OnClosed()
}
