package models

import "testing"

func TestAnalysisHasContent(t *testing.T) {
	tests := []struct {
		name     string
		analysis Analysis
		want     bool
	}{
		{name: "empty", analysis: Analysis{}, want: false},
		{name: "only implications", analysis: Analysis{Implications: []string{"x"}}, want: false},
		{name: "findings", analysis: Analysis{KeyFindings: []string{"x"}}, want: true},
		{name: "metrics", analysis: Analysis{Metrics: []Metric{{Name: "m", Value: 1}}}, want: true},
		{name: "categories", analysis: Analysis{Categories: []Category{{Name: "c"}}}, want: true},
		{name: "time series", analysis: Analysis{TimeSeries: []TimePoint{{Year: 2024}}}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.analysis.HasContent(); got != tc.want {
				t.Errorf("HasContent() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAnalysisSignalsVisualization(t *testing.T) {
	tests := []struct {
		name     string
		analysis Analysis
		want     bool
	}{
		{name: "empty", analysis: Analysis{}, want: false},
		{name: "findings only", analysis: Analysis{KeyFindings: []string{"x"}}, want: false},
		{name: "hints", analysis: Analysis{Visualizations: []VisualizationHint{{Type: "bar"}}}, want: true},
		{name: "metrics", analysis: Analysis{Metrics: []Metric{{Name: "m"}}}, want: true},
		{name: "categories", analysis: Analysis{Categories: []Category{{Name: "c"}}}, want: true},
		{name: "time series", analysis: Analysis{TimeSeries: []TimePoint{{Year: 2020}}}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.analysis.SignalsVisualization(); got != tc.want {
				t.Errorf("SignalsVisualization() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEmptyReport(t *testing.T) {
	r := EmptyReport()
	if r == nil {
		t.Fatal("EmptyReport() = nil")
	}
	if r.ExecutiveSummary != "" {
		t.Errorf("ExecutiveSummary = %q, want empty", r.ExecutiveSummary)
	}
	// The skeleton must be well-formed: slices present, not nil.
	if r.DetailedFindings == nil || r.Recommendations == nil ||
		r.Visualizations == nil || r.Sources == nil || r.NextSteps == nil {
		t.Error("EmptyReport() returned nil slices, want empty slices")
	}
}
