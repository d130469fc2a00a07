package model

// ScanStatus is the terminal result category of a scanner run.
type ScanStatus int

const (
	// ScanClean means the scanner exited 0: no secrets.
	ScanClean ScanStatus = iota
	// ScanFindingsDetected means the scanner exited with the configured
	// leaks code (2): the report holds findings.
	ScanFindingsDetected
	// ScanExecutionError covers every other exit status, including the
	// timeout sentinel.
	ScanExecutionError
)

// String implements fmt.Stringer for log output.
func (s ScanStatus) String() string {
	switch s {
	case ScanClean:
		return "clean"
	case ScanFindingsDetected:
		return "findings_detected"
	case ScanExecutionError:
		return "execution_error"
	default:
		return "invalid"
	}
}

// ScanOutcome is decided strictly by the scanner process exit status:
// 0 becomes Clean, 2 becomes FindingsDetected, anything else becomes
// ExecutionError carrying the raw status.
type ScanOutcome struct {
	Status     ScanStatus
	Findings   []Finding
	ExitStatus int
}

// OutcomeFromExitStatus classifies a raw scanner exit status.
// Findings are attached later by the result parser.
func OutcomeFromExitStatus(code int) ScanOutcome {
	switch code {
	case 0:
		return ScanOutcome{Status: ScanClean, ExitStatus: 0}
	case 2:
		return ScanOutcome{Status: ScanFindingsDetected, ExitStatus: 2}
	default:
		return ScanOutcome{Status: ScanExecutionError, ExitStatus: code}
	}
}

// Channel names one of the three independent reporting outputs.
type Channel string

const (
	ChannelComments Channel = "comments"
	ChannelSummary  Channel = "summary"
	ChannelArtifact Channel = "artifact"
)

// DispatchResult records one channel's attempt. A non-nil Err never
// affects the run outcome or a sibling channel's attempt.
type DispatchResult struct {
	Channel Channel
	Err     error
}

// Failed reports whether the channel attempt errored.
func (r DispatchResult) Failed() bool { return r.Err != nil }
