package domain

// ReadinessState is the answer a readiness predicate gives a deferred-work gate.
type ReadinessState int

const (
	// ReadinessWait keeps queued work pending
	ReadinessWait ReadinessState = iota
	// ReadinessExecute runs queued and new work immediately
	ReadinessExecute
	// ReadinessReject discards queued work
	ReadinessReject
)

// String returns the string representation of the readiness state
func (s ReadinessState) String() string {
	switch s {
	case ReadinessWait:
		return "Wait"
	case ReadinessExecute:
		return "Execute"
	case ReadinessReject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// LoadState tracks the embedded page lifecycle.
type LoadState int

const (
	LoadStateDefault LoadState = iota
	LoadStateStarted
	LoadStateError
	LoadStateComplete
)

// String returns the string representation of the load state
func (s LoadState) String() string {
	switch s {
	case LoadStateDefault:
		return "Default"
	case LoadStateStarted:
		return "LoadStarted"
	case LoadStateError:
		return "LoadError"
	case LoadStateComplete:
		return "LoadComplete"
	default:
		return "Unknown"
	}
}

// ConsoleSeverity is the level attached to a console message emitted by the page.
type ConsoleSeverity int

const (
	ConsoleSeverityDefault ConsoleSeverity = iota
	ConsoleSeverityVerbose
	ConsoleSeverityDebug
	ConsoleSeverityInfo
	ConsoleSeverityWarning
	ConsoleSeverityError
	ConsoleSeverityFatal
)

// ParseConsoleSeverity maps the page transport's severity names. Unknown
// names map to ConsoleSeverityDefault.
func ParseConsoleSeverity(name string) ConsoleSeverity {
	switch name {
	case "verbose":
		return ConsoleSeverityVerbose
	case "debug":
		return ConsoleSeverityDebug
	case "info", "log":
		return ConsoleSeverityInfo
	case "warning", "warn":
		return ConsoleSeverityWarning
	case "error":
		return ConsoleSeverityError
	case "fatal":
		return ConsoleSeverityFatal
	default:
		return ConsoleSeverityDefault
	}
}
