package clipboard

import (
	"sync"

	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

// System writes to the platform clipboard, initializing it on first use
type System struct {
	once    sync.Once
	initErr error
}

// WriteText places text on the clipboard
func (s *System) WriteText(text string) error {
	s.once.Do(func() {
		s.initErr = Init()
		if s.initErr != nil {
			logger.Warn("Clipboard unavailable", "error", s.initErr)
		}
	})
	if s.initErr != nil {
		return s.initErr
	}
	return writeText(text)
}
