package models

// ReportVisualization references one published visualization in the report.
type ReportVisualization struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ReportSource references one source document cited by the report.
type ReportSource struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Report is the final user-facing artifact of a run.
type Report struct {
	ExecutiveSummary string                `json:"executive_summary" yaml:"executive_summary"`
	DetailedFindings []string              `json:"detailed_findings,omitempty" yaml:"detailed_findings,omitempty"`
	Recommendations  []string              `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Visualizations   []ReportVisualization `json:"visualizations,omitempty" yaml:"visualizations,omitempty"`
	Sources          []ReportSource        `json:"sources,omitempty" yaml:"sources,omitempty"`
	NextSteps        []string              `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`
}

// EmptyReport returns a well-formed but empty report skeleton. Reporting is
// the one stage that degrades instead of failing, so a malformed model
// response still yields a terminal artifact.
func EmptyReport() *Report {
	return &Report{
		DetailedFindings: []string{},
		Recommendations:  []string{},
		Visualizations:   []ReportVisualization{},
		Sources:          []ReportSource{},
		NextSteps:        []string{},
	}
}

// Validation is the judge's verdict on a final report.
type Validation struct {
	Approved   bool    `json:"approved" yaml:"approved"`
	Feedback   string  `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// CodeNeed is the judge's verdict on whether analysis results require a code
// pass before reporting.
type CodeNeed struct {
	NeedsCode bool   `json:"needs_code" yaml:"needs_code"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
