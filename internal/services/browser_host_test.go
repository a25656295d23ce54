package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	viper "github.com/spf13/viper"
	zapcore "go.uber.org/zap/zapcore"

	config "github.com/inference-gateway/editor-assistant/config"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	domainfakes "github.com/inference-gateway/editor-assistant/internal/domain/domainfakes"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
	webapi "github.com/inference-gateway/editor-assistant/internal/webapi"
)

var handlerIDPattern = regexp.MustCompile(`handleresult\("([^"]+)"`)

type fixedLocale string

func (l fixedLocale) Language() string { return string(l) }

type nativeObjectStub struct{}

func (nativeObjectStub) NativeMethods() map[string]domain.NativeMethod {
	return map[string]domain.NativeMethod{}
}

type hostFixture struct {
	host     *BrowserHost
	view     *domainfakes.FakeWebView
	external *domainfakes.FakeExternalBrowser
	recorder *domainfakes.FakeQueryRecorder
	source   *ViperConfigSource
	mainURL  string
}

func newHostFixture(t *testing.T) *hostFixture {
	t.Helper()

	source := NewViperConfigSource(viper.New())
	source.SetDefault(ModeVariableName, false)
	watch := NewModeWatch(source, ModeVariableName)
	t.Cleanup(watch.Close)

	f := &hostFixture{
		view:     &domainfakes.FakeWebView{},
		external: &domainfakes.FakeExternalBrowser{},
		recorder: &domainfakes.FakeQueryRecorder{},
		source:   source,
		mainURL:  config.DefaultMainURL,
	}
	f.host = NewBrowserHost(BrowserHostOptions{
		View:          f.view,
		External:      f.external,
		Dispatcher:    InlineDispatcher{},
		ModeWatch:     watch,
		Locale:        fixedLocale("fr"),
		Recorder:      f.recorder,
		Assistant:     config.DefaultAssistantConfig(),
		EditorVersion: "5.7.0",
		NativeObjects: map[string]domain.NativeObject{NativeAPIObjectName: nativeObjectStub{}},
	})
	require.NoError(t, f.host.Open())
	return f
}

func (f *hostFixture) scripts() []string {
	out := make([]string, 0, f.view.ExecuteScriptCallCount())
	for i := 0; i < f.view.ExecuteScriptCallCount(); i++ {
		out = append(out, f.view.ExecuteScriptArgsForCall(i))
	}
	return out
}

func (f *hostFixture) callsTo(fn string) []string {
	var out []string
	for _, script := range f.scripts() {
		if strings.Contains(script, webapi.ObjectName+"."+fn+"(") {
			out = append(out, script)
		}
	}
	return out
}

func (f *hostFixture) resolveLast(t *testing.T, fn, payload string, isError bool) {
	t.Helper()
	calls := f.callsTo(fn)
	require.NotEmpty(t, calls, "no call to %s", fn)
	match := handlerIDPattern.FindStringSubmatch(calls[len(calls)-1])
	require.Len(t, match, 2, "call to %s has no result handler", fn)
	f.host.WebAPI().Router().HandleResult(match[1], payload, isError)
}

func (f *hostFixture) loadAssistantPage(t *testing.T) {
	t.Helper()
	require.False(t, f.host.OnBeforeNavigation(f.mainURL, false))
	f.host.OnLoadStarted()
	f.host.OnLoadCompleted()
}

func (f *hostFixture) configureEnvironment(t *testing.T) {
	t.Helper()
	f.loadAssistantPage(t)
	f.resolveLast(t, "addAgentEnvironment", `{"id":"env-1","hash":"abc"}`, false)
}

func TestBrowserHost_OpenBindsAndLoadsMainURL(t *testing.T) {
	f := newHostFixture(t)

	require.Equal(t, 1, f.view.LoadURLCallCount())
	assert.Equal(t, f.mainURL, f.view.LoadURLArgsForCall(0))

	bound := map[string]bool{}
	for i := 0; i < f.view.BindObjectCallCount(); i++ {
		name, _, permanent := f.view.BindObjectArgsForCall(i)
		assert.True(t, permanent)
		bound[name] = true
	}
	assert.True(t, bound[webapi.ResultRouterName])
	assert.True(t, bound[NativeAPIObjectName])
}

func TestBrowserHost_Navigation(t *testing.T) {
	f := newHostFixture(t)

	assert.False(t, f.host.OnBeforeNavigation(f.mainURL, false))
	assert.False(t, f.host.OnBeforeNavigation("https://www.epicgames.com/id/login", false))
	assert.Equal(t, 0, f.external.OpenURLCallCount())

	assert.True(t, f.host.OnBeforeNavigation(f.mainURL+"/chat", false))
	require.Equal(t, 1, f.external.OpenURLCallCount())
	assert.Equal(t, f.mainURL+"/chat", f.external.OpenURLArgsForCall(0))

	assert.True(t, f.host.OnBeforeNavigation("https://example.com/docs", false))
	require.Equal(t, 2, f.external.OpenURLCallCount())
	assert.Equal(t, "https://example.com/docs", f.external.OpenURLArgsForCall(1))
}

func TestBrowserHost_RedirectFromAllowedPage(t *testing.T) {
	f := newHostFixture(t)

	require.False(t, f.host.OnBeforeNavigation(f.mainURL, false))
	assert.False(t, f.host.OnBeforeNavigation("https://login.example.net/sso", true))
	assert.Equal(t, 0, f.external.OpenURLCallCount())

	assert.True(t, f.host.OnBeforeNavigation("https://login.example.net/sso", false))
	assert.Equal(t, 1, f.external.OpenURLCallCount())

	// blocked loads leave the last allowed page as the redirect source
	assert.False(t, f.host.OnBeforeNavigation("https://login.example.net/next", true))
	assert.Equal(t, 1, f.external.OpenURLCallCount())
}

func TestBrowserHost_RedirectAfterFreshAllowedPage(t *testing.T) {
	f := newHostFixture(t)

	require.True(t, f.host.OnBeforeNavigation("https://example.com/", false))
	require.False(t, f.host.OnBeforeNavigation("https://www.epicgames.com/id/login", false))

	assert.False(t, f.host.OnBeforeNavigation("https://sso.example.org/callback", true))
	assert.Equal(t, 1, f.external.OpenURLCallCount())
}

func TestBrowserHost_CanCallNative(t *testing.T) {
	f := newHostFixture(t)
	assert.False(t, f.host.CanCallNative(NativeAPIObjectName), "nothing has loaded yet")
	assert.True(t, f.host.CanCallNative(webapi.ResultRouterName))

	f.loadAssistantPage(t)
	assert.True(t, f.host.CanCallNative(NativeAPIObjectName))

	// a blocked load keeps the main URL prefix but must not reach native code
	require.True(t, f.host.OnBeforeNavigation(f.mainURL+"/chat", false))
	assert.False(t, f.host.CanCallNative(NativeAPIObjectName))
	assert.True(t, f.host.CanCallNative(webapi.ResultRouterName))

	require.True(t, f.host.OnBeforeNavigation("https://evil.example/", false))
	assert.False(t, f.host.CanCallNative(NativeAPIObjectName))

	require.False(t, f.host.OnBeforeNavigation("https://www.epicgames.com/id/login", false))
	assert.False(t, f.host.CanCallNative(NativeAPIObjectName), "allowed but not the assistant page")

	require.False(t, f.host.OnBeforeNavigation(f.mainURL, false))
	assert.True(t, f.host.CanCallNative(NativeAPIObjectName))
}

// queueDispatcher collects posted tasks until Drain runs them.
type queueDispatcher struct {
	mu    sync.Mutex
	tasks []func()
}

func (d *queueDispatcher) Post(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, fn)
}

func (d *queueDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

func (d *queueDispatcher) Drain() {
	d.mu.Lock()
	tasks := d.tasks
	d.tasks = nil
	d.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

// flippingSource flips its value and fires change hooks from inside the
// first GetBool after it is armed, the way a file watcher can land while
// a subscription is being set up.
type flippingSource struct {
	mu    sync.Mutex
	value bool
	armed bool
	hooks []func()
}

func (s *flippingSource) GetBool(string) bool {
	s.mu.Lock()
	if !s.armed {
		defer s.mu.Unlock()
		return s.value
	}
	s.armed = false
	s.value = !s.value
	value := s.value
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return value
}

func (s *flippingSource) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
	return func() {}
}

func (s *flippingSource) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

func TestBrowserHost_ModeChangeDuringSubscribeIsDispatched(t *testing.T) {
	source := &flippingSource{}
	watch := NewModeWatch(source, ModeVariableName)
	t.Cleanup(watch.Close)

	dispatcher := &queueDispatcher{}
	view := &domainfakes.FakeWebView{}
	host := NewBrowserHost(BrowserHostOptions{
		View:          view,
		External:      &domainfakes.FakeExternalBrowser{},
		Dispatcher:    dispatcher,
		ModeWatch:     watch,
		Locale:        fixedLocale("en"),
		Assistant:     config.DefaultAssistantConfig(),
		EditorVersion: "5.7.0",
	})
	require.NoError(t, host.Open())
	require.False(t, host.OnBeforeNavigation(config.DefaultMainURL, false))
	host.OnLoadStarted()

	source.Arm()
	host.OnLoadCompleted()

	f := &hostFixture{view: view}
	assert.Len(t, f.callsTo("addAgentEnvironment"), 1, "only the initial environment runs inline")
	assert.Equal(t, 1, dispatcher.Len(), "the watcher's change waits for the dispatcher")

	dispatcher.Drain()
	assert.Len(t, f.callsTo("addAgentEnvironment"), 1, "the dispatched change repeats the current mode")
}

func TestBrowserHost_PopupsOpenExternally(t *testing.T) {
	f := newHostFixture(t)
	f.external.OpenURLReturns(errors.New("no browser"))

	assert.True(t, f.host.OnBeforePopup(f.mainURL))
	require.Equal(t, 1, f.external.OpenURLCallCount())
	assert.Equal(t, f.mainURL, f.external.OpenURLArgsForCall(0))
}

func TestBrowserHost_QueuesMessagesUntilEnvironmentConfigured(t *testing.T) {
	f := newHostFixture(t)

	f.host.AddUserMessageToConversation("What is this?", "(Context: viewport)")
	assert.Equal(t, 1, f.host.PendingMessages())
	assert.Empty(t, f.callsTo("addMessageToConversation"))

	f.loadAssistantPage(t)
	assert.Equal(t, 1, f.host.PendingMessages())

	adds := f.callsTo("addAgentEnvironment")
	require.Len(t, adds, 1)
	assert.Contains(t, adds[0], `{"descriptor":{"environmentName":"UE","environmentVersion":"5.7.0"}}`)
	assert.Len(t, f.callsTo("updateGlobalLocale"), 1)
	assert.Contains(t, f.callsTo("updateGlobalLocale")[0], `updateGlobalLocale("fr")`)

	f.resolveLast(t, "addAgentEnvironment", `{"id":"env-1","hash":"abc"}`, false)

	sets := f.callsTo("setAgentEnvironment")
	require.Len(t, sets, 1)
	assert.Contains(t, sets[0], `setAgentEnvironment({"id":"env-1"})`)
	assert.Equal(t, domain.LoadStateComplete, f.host.LoadState())
	assert.Equal(t, 0, f.host.PendingMessages())

	messages := f.callsTo("addMessageToConversation")
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], `"messageRole":"user"`)
	assert.Contains(t, messages[0], `"text":"What is this?"`)
	assert.Contains(t, messages[0], `"visibleToUser":false`)
}

func TestBrowserHost_EnvironmentUpdateIsIdempotent(t *testing.T) {
	f := newHostFixture(t)
	f.configureEnvironment(t)

	f.host.UpdateAgentEnvironment(false)
	assert.Len(t, f.callsTo("addAgentEnvironment"), 1)
	assert.Equal(t, domain.LoadStateComplete, f.host.LoadState())

	f.host.OnLoadCompleted()
	assert.Len(t, f.callsTo("addAgentEnvironment"), 1)
}

func TestBrowserHost_ModeChangeReconfiguresEnvironment(t *testing.T) {
	f := newHostFixture(t)
	f.configureEnvironment(t)

	f.source.Set(ModeVariableName, true)
	f.source.EndCycle()

	adds := f.callsTo("addAgentEnvironment")
	require.Len(t, adds, 2)
	assert.Contains(t, adds[1], `"environmentName":"UEFN"`)
}

func TestBrowserHost_EnvironmentFailureRejectsQueuedWork(t *testing.T) {
	f := newHostFixture(t)
	logs, restore := logger.Capture()
	defer restore()

	f.host.AddUserMessageToConversation("hello", "")
	f.loadAssistantPage(t)
	f.resolveLast(t, "addAgentEnvironment", `"backend unavailable"`, true)

	assert.Equal(t, domain.LoadStateError, f.host.LoadState())
	assert.Equal(t, 0, f.host.PendingMessages())
	assert.Empty(t, f.callsTo("setAgentEnvironment"))
	assert.Empty(t, f.callsTo("addMessageToConversation"))
	assert.Equal(t, 1, logs.FilterMessage("Failed to add agent environment").Len())

	// the mode was forgotten, so the next completed load retries
	f.host.UpdateAgentEnvironment(false)
	assert.Len(t, f.callsTo("addAgentEnvironment"), 2)
}

func TestBrowserHost_WaitsOffAssistantPage(t *testing.T) {
	f := newHostFixture(t)
	f.configureEnvironment(t)

	require.False(t, f.host.OnBeforeNavigation("https://login.example.net/sso", true))
	f.host.OnLoadCompleted()
	assert.False(t, f.host.IsAssistantPageLoaded())

	f.host.AddUserMessageToConversation("queued", "")
	assert.Equal(t, 1, f.host.PendingMessages())

	require.False(t, f.host.OnBeforeNavigation(f.mainURL, false))
	f.host.OnLoadCompleted()
	assert.Equal(t, 0, f.host.PendingMessages())
	assert.Len(t, f.callsTo("addMessageToConversation"), 1)
}

func TestBrowserHost_CreateConversation(t *testing.T) {
	f := newHostFixture(t)
	f.configureEnvironment(t)

	f.host.AddUserMessageToConversation("stale", "")
	assert.Len(t, f.callsTo("addMessageToConversation"), 1)

	f.host.CreateConversation()
	f.host.CreateConversation()
	require.Len(t, f.callsTo("createConversation"), 1)

	f.host.AddUserMessageToConversation("first", "")
	f.host.AddUserMessageToConversation("second", "")
	assert.Equal(t, 1, f.host.PendingMessages())

	f.resolveLast(t, "createConversation", "null", false)

	messages := f.callsTo("addMessageToConversation")
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1], `"text":"second"`)
}

func TestBrowserHost_RecordsQueries(t *testing.T) {
	f := newHostFixture(t)
	f.recorder.RecordQueryReturns(errors.New("disk full"))

	f.host.AddUserMessageToConversation("visible", "hidden")

	require.Equal(t, 1, f.recorder.RecordQueryCallCount())
	_, record := f.recorder.RecordQueryArgsForCall(0)
	assert.Equal(t, "visible", record.Visible)
	assert.Equal(t, "hidden", record.Hidden)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 1, f.host.PendingMessages())
}

func TestBrowserHost_MessageOmitsEmptyParts(t *testing.T) {
	f := newHostFixture(t)
	f.configureEnvironment(t)

	f.host.AddUserMessageToConversation("", "only hidden")

	messages := f.callsTo("addMessageToConversation")
	require.Len(t, messages, 1)
	start := strings.Index(messages[0], "addMessageToConversation(") + len("addMessageToConversation(")
	end := strings.Index(messages[0][start:], ")).then(")
	require.Positive(t, end)

	var options webapi.AddMessageToConversationOptions
	require.NoError(t, json.Unmarshal([]byte(messages[0][start:start+end]), &options))
	require.Len(t, options.Message.Content, 1)
	assert.Equal(t, webapi.TextContent{Text: "only hidden"}, options.Message.Content[0].Content)
	require.NotNil(t, options.Message.Content[0].VisibleToUser)
	assert.False(t, *options.Message.Content[0].VisibleToUser)
}

func TestBrowserHost_ConsoleMessagesAreLogged(t *testing.T) {
	f := newHostFixture(t)
	logs, restore := logger.Capture()
	defer restore()

	f.host.OnConsoleMessage(domain.ConsoleSeverityFatal, "boom", "app.js", 10)
	f.host.OnConsoleMessage(domain.ConsoleSeverityWarning, "careful", "app.js", 11)
	f.host.OnConsoleMessage(domain.ConsoleSeverityInfo, "hello", "app.js", 12)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "JavaScript Error", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "hello", entries[2].ContextMap()["message"])
}

func TestBrowserHost_CloseCancelsPendingCalls(t *testing.T) {
	f := newHostFixture(t)
	f.host.AddUserMessageToConversation("hello", "")
	f.loadAssistantPage(t)

	f.host.Close()

	assert.Equal(t, domain.LoadStateDefault, f.host.LoadState())
	assert.Equal(t, 0, f.host.PendingMessages())
	assert.Equal(t, 0, f.host.WebAPI().Router().PendingFutures())
	assert.Positive(t, f.view.UnbindObjectCallCount())
}
