package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const jsonlFileName = "queries.jsonl"

// JsonlStorage implements QueryStorage as an append-only JSONL file
type JsonlStorage struct {
	filePath string
	mu       sync.RWMutex
}

// NewJsonlStorage creates a new JSONL storage instance. Path names a directory.
func NewJsonlStorage(config JsonlStorageConfig) (*JsonlStorage, error) {
	path := config.Path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("history directory not writable: %w", err)
	}
	_ = os.Remove(testFile)

	return &JsonlStorage{filePath: filepath.Join(path, jsonlFileName)}, nil
}

// RecordQuery appends one line to the history file
func (s *JsonlStorage) RecordQuery(_ context.Context, record domain.QueryRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append query: %w", err)
	}
	return nil
}

// ListQueries returns recorded queries, newest first
func (s *JsonlStorage) ListQueries(_ context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	return pageNewestFirst(records, limit, offset), nil
}

// CountQueries returns the number of readable lines in the history file
func (s *JsonlStorage) CountQueries(_ context.Context) (int, error) {
	records, err := s.readAll()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// readAll loads every record. Corrupt lines are skipped.
func (s *JsonlStorage) readAll() ([]domain.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []domain.QueryRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record domain.QueryRecord
		if err := json.Unmarshal(line, &record); err != nil {
			logger.Warn("Skipping corrupt history line", "file", s.filePath, "line", lineNum, "error", err)
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return records, nil
}

// Close is a no-op; the file is opened per write
func (s *JsonlStorage) Close() error {
	return nil
}

// Health checks that the history directory is still writable
func (s *JsonlStorage) Health(_ context.Context) error {
	dir := filepath.Dir(s.filePath)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("history directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("history path is not a directory: %s", dir)
	}
	return nil
}
