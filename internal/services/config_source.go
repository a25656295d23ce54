package services

import (
	"container/list"
	"sync"

	fsnotify "github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// ViperConfigSource adapts a viper instance to domain.ConfigSource. Writes
// made through Set are batched; hooks fire once per EndCycle.
type ViperConfigSource struct {
	viper *viper.Viper

	mu    sync.Mutex
	dirty bool
	hooks *list.List
}

// NewViperConfigSource wraps v. Changes to v's config file end a cycle
// when Watch has been called.
func NewViperConfigSource(v *viper.Viper) *ViperConfigSource {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfigSource{
		viper: v,
		hooks: list.New(),
	}
}

// GetBool returns the boolean value stored under key
func (s *ViperConfigSource) GetBool(key string) bool {
	return s.viper.GetBool(key)
}

// SetDefault registers a default value for key
func (s *ViperConfigSource) SetDefault(key string, value any) {
	s.viper.SetDefault(key, value)
}

// Set writes value under key. Subscribers see it after the next EndCycle.
func (s *ViperConfigSource) Set(key string, value any) {
	s.viper.Set(key, value)

	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// OnChange registers fn to run after each mutation cycle
func (s *ViperConfigSource) OnChange(fn func()) func() {
	s.mu.Lock()
	element := s.hooks.PushBack(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hooks.Remove(element)
			s.mu.Unlock()
		})
	}
}

// EndCycle notifies hooks if anything was written since the last cycle.
func (s *ViperConfigSource) EndCycle() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	hooks := make([]func(), 0, s.hooks.Len())
	for e := s.hooks.Front(); e != nil; e = e.Next() {
		hooks = append(hooks, e.Value.(func()))
	}
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// Watch re-reads the backing config file on change and ends a cycle.
func (s *ViperConfigSource) Watch() {
	s.viper.OnConfigChange(func(event fsnotify.Event) {
		logger.Debug("Configuration file changed", "file", event.Name, "op", event.Op.String())
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		s.EndCycle()
	})
	s.viper.WatchConfig()
}
