package container

import (
	"context"
	"os"
	"time"

	viper "github.com/spf13/viper"

	config "github.com/inference-gateway/editor-assistant/config"
	clipboard "github.com/inference-gateway/editor-assistant/internal/clipboard"
	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	storage "github.com/inference-gateway/editor-assistant/internal/infra/storage"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
	services "github.com/inference-gateway/editor-assistant/internal/services"
	web "github.com/inference-gateway/editor-assistant/internal/web"
)

// ServiceContainer manages all application dependencies
type ServiceContainer struct {
	// Configuration
	viper         *viper.Viper
	config        *config.Config
	configService *services.ConfigService
	configSource  *services.ViperConfigSource
	assistant     *config.AssistantConfig
	assistantPath string

	// UI thread and editor state
	dispatcher *services.UIDispatcher
	modeWatch  *services.ModeWatch
	locale     *services.LocaleProvider
	browser    domain.ExternalBrowser

	// Native script execution
	journal      *services.TransactionJournal
	codeExecutor *services.TransactionalCodeExecutor
	nativeAPI    *services.NativeAPI

	// Query history
	storage storage.QueryStorage

	// Page transport
	pageServer *web.PageServer
}

// NewServiceContainer creates a new service container with all dependencies
func NewServiceContainer(cfg *config.Config, v *viper.Viper) *ServiceContainer {
	if v == nil {
		v = viper.New()
	}
	container := &ServiceContainer{
		viper:         v,
		config:        cfg,
		configService: services.NewConfigService(v, cfg),
	}

	container.initializeConfig()
	container.initializeEditorServices()
	container.initializeExecution()
	container.initializeStorage()
	container.initializeTransport()

	return container
}

func (c *ServiceContainer) initializeConfig() {
	c.assistant, c.assistantPath = c.config.LoadAssistant()
	if c.assistantPath == "" {
		logger.Info("No assistant config file found, using defaults", "main_url", c.assistant.MainURL)
	} else {
		logger.Info("Loaded assistant config", "path", c.assistantPath, "main_url", c.assistant.MainURL)
	}

	c.configSource = services.NewViperConfigSource(c.viper)
	c.configSource.SetDefault(c.config.Assistant.ModeVariable, c.config.Assistant.UEFN)
}

func (c *ServiceContainer) initializeEditorServices() {
	c.dispatcher = services.NewUIDispatcher(0)
	c.modeWatch = services.NewModeWatch(c.configSource, c.config.Assistant.ModeVariable)
	c.locale = services.NewLocaleProvider(c.config.Assistant.Locale)
	c.browser = services.SystemBrowser{}
}

func (c *ServiceContainer) initializeExecution() {
	timeout := time.Duration(c.config.Executor.Timeout) * time.Second
	engine := &services.ProcessScriptEngine{
		Interpreter: c.config.Executor.Interpreter,
		Args:        c.config.Executor.Args,
		Timeout:     timeout,
	}
	c.journal = services.NewTransactionJournal()
	c.codeExecutor = services.NewTransactionalCodeExecutor(engine, c.journal)
	c.nativeAPI = services.NewNativeAPI(c.codeExecutor, &clipboard.System{}, timeout)
}

// initializeStorage opens the query history. A backend that cannot be
// reached falls back to memory so the assistant still starts.
func (c *ServiceContainer) initializeStorage() {
	if !c.config.Storage.Enabled {
		return
	}

	store, err := storage.NewStorage(StorageConfigFrom(c.config.Storage))
	if err != nil {
		logger.Warn("Failed to open query history, falling back to memory", "type", c.config.Storage.Type, "error", err)
		store = storage.NewMemoryStorage()
	}
	c.storage = store
}

func (c *ServiceContainer) initializeTransport() {
	c.pageServer = web.NewPageServer(c.config, c.assistant, c.dispatcher, c.NewPageHandler)
}

// StorageConfigFrom maps the runtime storage settings onto the backend config
func StorageConfigFrom(cfg config.StorageConfig) storage.StorageConfig {
	return storage.StorageConfig{
		Type:  cfg.Type,
		JSONL: storage.JsonlStorageConfig{Path: cfg.JSONL.Path},
		SQLite: storage.SQLiteConfig{
			Path: cfg.SQLite.Path,
		},
		Postgres: storage.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
		},
		Redis: storage.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Database: cfg.Redis.Database,
			Password: cfg.Redis.Password,
			TTL:      cfg.Redis.TTL,
		},
	}
}

// NewPageHandler builds the browser host for a connected page
func (c *ServiceContainer) NewPageHandler(view domain.WebView) (web.PageHandler, error) {
	var recorder domain.QueryRecorder
	if c.storage != nil {
		recorder = c.storage
	}

	return services.NewBrowserHost(services.BrowserHostOptions{
		View:          view,
		External:      c.browser,
		Dispatcher:    c.dispatcher,
		ModeWatch:     c.modeWatch,
		Locale:        c.locale,
		Recorder:      recorder,
		Assistant:     c.assistant,
		EditorVersion: c.config.Assistant.EditorVersion,
		NativeObjects: map[string]domain.NativeObject{
			services.NativeAPIObjectName: c.nativeAPI,
		},
	}), nil
}

// Serve runs the dispatcher and the page server until ctx is done, then
// releases every resource.
func (c *ServiceContainer) Serve(ctx context.Context) error {
	if path := c.viper.ConfigFileUsed(); path != "" {
		if _, err := os.Stat(path); err == nil {
			c.configSource.Watch()
		}
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		c.dispatcher.Run(dispatcherCtx)
	}()

	err := c.pageServer.Start(ctx)

	stopDispatcher()
	<-dispatcherDone
	if n := c.dispatcher.Drain(); n > 0 {
		logger.Debug("Ran queued UI tasks after shutdown", "count", n)
	}
	c.Close()
	return err
}

// Close releases the mode watch, the dispatcher and the history store
func (c *ServiceContainer) Close() {
	c.modeWatch.Close()
	c.dispatcher.Close()
	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			logger.Warn("Failed to close query history", "error", err)
		}
	}
}

// GetConfig returns the runtime configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetViper returns the viper instance backing the configuration
func (c *ServiceContainer) GetViper() *viper.Viper {
	return c.viper
}

// GetConfigService returns the config service
func (c *ServiceContainer) GetConfigService() *services.ConfigService {
	return c.configService
}

// GetAssistantConfig returns the assistant page configuration and the file it came from
func (c *ServiceContainer) GetAssistantConfig() (*config.AssistantConfig, string) {
	return c.assistant, c.assistantPath
}

// GetModeWatch returns the editor mode watch
func (c *ServiceContainer) GetModeWatch() *services.ModeWatch {
	return c.modeWatch
}

// GetDispatcher returns the UI dispatcher
func (c *ServiceContainer) GetDispatcher() *services.UIDispatcher {
	return c.dispatcher
}

// GetStorage returns the query history, or nil when history is disabled
func (c *ServiceContainer) GetStorage() storage.QueryStorage {
	return c.storage
}

// GetNativeAPI returns the native object exposed to the page
func (c *ServiceContainer) GetNativeAPI() *services.NativeAPI {
	return c.nativeAPI
}

// GetTransactionJournal returns the journal of committed code executions
func (c *ServiceContainer) GetTransactionJournal() *services.TransactionJournal {
	return c.journal
}

// GetPageServer returns the page transport server
func (c *ServiceContainer) GetPageServer() *web.PageServer {
	return c.pageServer
}
