// Package sarif parses the scanner's SARIF 2.1.0 report and extracts
// findings with their commit metadata.
package sarif

// Report is the subset of a SARIF 2.1.0 document the pipeline consumes.
type Report struct {
	Schema  string `json:"$schema,omitempty"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run is a single analysis-tool run.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool identifies the analysis tool that produced the run.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver is the analysis tool itself.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Result is a single detection.
type Result struct {
	RuleID              string               `json:"ruleId"`
	Message             Message              `json:"message"`
	Locations           []Location           `json:"locations"`
	PartialFingerprints *PartialFingerprints `json:"partialFingerprints,omitempty"`
	Level               string               `json:"level,omitempty"`
}

// Message carries the human-readable detection text.
type Message struct {
	Text string `json:"text"`
}

// Location is where a result was found.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation points into a file.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation names the file.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is the span within the file.
type Region struct {
	StartLine   int              `json:"startLine"`
	StartColumn int              `json:"startColumn,omitempty"`
	EndLine     int              `json:"endLine,omitempty"`
	EndColumn   int              `json:"endColumn,omitempty"`
	Snippet     *ArtifactContent `json:"snippet,omitempty"`
}

// ArtifactContent holds the detected snippet text.
type ArtifactContent struct {
	Text string `json:"text"`
}

// PartialFingerprints is where the scanner stashes commit metadata.
type PartialFingerprints struct {
	CommitSHA     string `json:"commitSha,omitempty"`
	Author        string `json:"author,omitempty"`
	Email         string `json:"email,omitempty"`
	Date          string `json:"date,omitempty"`
	CommitMessage string `json:"commitMessage,omitempty"`
}
