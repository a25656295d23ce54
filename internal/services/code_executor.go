package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
	logger "github.com/inference-gateway/editor-assistant/internal/logger"
)

const (
	executionFailedMessage = "Code did not execute successfully. See log for details."
	transactionTitlePrefix = "AI Assistant Code Execution"
)

// TransactionalCodeExecutor runs page-supplied code inside an undoable
// transaction and renders the captured log as text.
type TransactionalCodeExecutor struct {
	engine     domain.ScriptEngine
	transactor domain.Transactor
	now        func() time.Time
}

// NewTransactionalCodeExecutor creates an executor over engine and transactor
func NewTransactionalCodeExecutor(engine domain.ScriptEngine, transactor domain.Transactor) *TransactionalCodeExecutor {
	return &TransactionalCodeExecutor{
		engine:     engine,
		transactor: transactor,
		now:        time.Now,
	}
}

// Execute runs code. The transaction is committed on success and canceled
// otherwise. Empty code is reported as a failure without running anything.
func (e *TransactionalCodeExecutor) Execute(ctx context.Context, code string) domain.CodeExecutionResult {
	if code == "" {
		return domain.CodeExecutionResult{}
	}

	title := fmt.Sprintf("%s %s", transactionTitlePrefix, e.now().Format("2006.01.02-15.04.05"))
	index := e.transactor.Begin(title)
	entries, ok := e.engine.Run(ctx, code)
	if ok {
		e.transactor.End()
	} else {
		e.transactor.Cancel(index)
	}

	result := domain.CodeExecutionResult{
		Success: ok,
		Output:  FormatScriptOutput(ok, entries),
	}
	if ok {
		result.TransactionTitle = title
	}

	logger.Debug("Executed page code", "success", ok, "transaction", title, "log_lines", len(entries))
	return result
}

// FormatScriptOutput joins captured log lines, tagging errors and warnings
// inline. Failures are prefixed with a pointer to the log.
func FormatScriptOutput(success bool, entries []domain.ScriptLogEntry) string {
	var b strings.Builder
	if !success {
		b.WriteString(executionFailedMessage)
		if len(entries) > 0 {
			b.WriteString("\n")
		}
	}

	for i, entry := range entries {
		b.WriteString(entry.Output)
		switch entry.Type {
		case domain.ScriptLogError:
			b.WriteString(" # ERROR")
		case domain.ScriptLogWarning:
			b.WriteString(" # WARNING")
		}
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ProcessScriptEngine runs code through an external interpreter. Stdout
// lines are info, stderr lines are errors unless they look like warnings.
type ProcessScriptEngine struct {
	Interpreter string
	Args        []string
	Timeout     time.Duration
}

// Run executes code and captures its output
func (p *ProcessScriptEngine) Run(ctx context.Context, code string) ([]domain.ScriptLogEntry, bool) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, p.Args...), code)
	cmd := exec.CommandContext(cmdCtx, p.Interpreter, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	entries := scanLogLines(stdout.Bytes(), domain.ScriptLogInfo)
	for _, entry := range scanLogLines(stderr.Bytes(), domain.ScriptLogError) {
		if strings.Contains(entry.Output, "Warning") {
			entry.Type = domain.ScriptLogWarning
		}
		entries = append(entries, entry)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			entries = append(entries, domain.ScriptLogEntry{Type: domain.ScriptLogError, Output: err.Error()})
		}
		logger.Sugar(ctx).Warnw("Script execution failed", "interpreter", p.Interpreter, "error", err)
		return entries, false
	}
	return entries, true
}

func scanLogLines(data []byte, logType domain.ScriptLogType) []domain.ScriptLogEntry {
	var entries []domain.ScriptLogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		entries = append(entries, domain.ScriptLogEntry{Type: logType, Output: scanner.Text()})
	}
	return entries
}

// TransactionJournal is a Transactor that records transaction boundaries
// for hosts without an undo system of their own.
type TransactionJournal struct {
	mu        sync.Mutex
	open      []string
	committed []string
	next      int
}

// NewTransactionJournal creates an empty journal
func NewTransactionJournal() *TransactionJournal {
	return &TransactionJournal{}
}

// Begin opens a transaction and returns its index
func (j *TransactionJournal) Begin(title string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.open = append(j.open, title)
	index := j.next
	j.next++
	logger.Debug("Transaction started", "title", title, "index", index)
	return index
}

// End commits the innermost open transaction and returns the open depth left
func (j *TransactionJournal) End() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.open) == 0 {
		return 0
	}
	title := j.open[len(j.open)-1]
	j.open = j.open[:len(j.open)-1]
	j.committed = append(j.committed, title)
	logger.Debug("Transaction committed", "title", title)
	return len(j.open)
}

// Cancel discards the innermost open transaction
func (j *TransactionJournal) Cancel(index int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.open) == 0 {
		return
	}
	title := j.open[len(j.open)-1]
	j.open = j.open[:len(j.open)-1]
	logger.Debug("Transaction canceled", "title", title, "index", index)
}

// Committed returns the titles of committed transactions, oldest first
func (j *TransactionJournal) Committed() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.committed))
	copy(out, j.committed)
	return out
}
