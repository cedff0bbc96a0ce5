package models

// Metric is one quantitative measure extracted from research results.
type Metric struct {
	Name       string  `json:"name" yaml:"name"`
	Value      float64 `json:"value" yaml:"value"`
	Unit       string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Source     string  `json:"source,omitempty" yaml:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// CategoryItem is one counted member of a category.
type CategoryItem struct {
	Name       string  `json:"name" yaml:"name"`
	Count      int     `json:"count,omitempty" yaml:"count,omitempty"`
	Percentage float64 `json:"percentage,omitempty" yaml:"percentage,omitempty"`
}

// Category groups related items discovered during analysis.
type Category struct {
	Name  string         `json:"name" yaml:"name"`
	Items []CategoryItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// TimePoint holds the metrics observed for one year.
type TimePoint struct {
	Year    int      `json:"year" yaml:"year"`
	Metrics []Metric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Relationship links two entities identified in the research.
type Relationship struct {
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Strength float64 `json:"strength,omitempty" yaml:"strength,omitempty"`
}

// DataQuality scores how complete and reliable the gathered data is.
type DataQuality struct {
	Completeness float64 `json:"completeness,omitempty" yaml:"completeness,omitempty"`
	Reliability  float64 `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	SourcesUsed  int     `json:"sources_used,omitempty" yaml:"sources_used,omitempty"`
}

// VisualizationHint recommends a chart to generate from the analysis.
type VisualizationHint struct {
	Type       string `json:"type" yaml:"type"`
	DataSource string `json:"data_source,omitempty" yaml:"data_source,omitempty"`
	Purpose    string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	Priority   int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Analysis is the structured synthesis of all gathered research. Only
// KeyFindings is commonly present; the remaining sections appear when the
// underlying data supports them.
type Analysis struct {
	KeyFindings    []string            `json:"key_findings,omitempty" yaml:"key_findings,omitempty"`
	Implications   []string            `json:"implications,omitempty" yaml:"implications,omitempty"`
	Metrics        []Metric            `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Categories     []Category          `json:"categories,omitempty" yaml:"categories,omitempty"`
	TimeSeries     []TimePoint         `json:"time_series,omitempty" yaml:"time_series,omitempty"`
	Relationships  []Relationship      `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	DataQuality    *DataQuality        `json:"data_quality,omitempty" yaml:"data_quality,omitempty"`
	Visualizations []VisualizationHint `json:"visualizations,omitempty" yaml:"visualizations,omitempty"`
	NextSteps      []string            `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`
}

// HasContent reports whether the analysis contains at least one recognized
// analytical section. A response with none is noise, not analysis.
func (a *Analysis) HasContent() bool {
	return len(a.KeyFindings) > 0 || len(a.Metrics) > 0 ||
		len(a.Categories) > 0 || len(a.TimeSeries) > 0
}

// SignalsVisualization reports whether the analysis carries data that warrants
// generating visualizations.
func (a *Analysis) SignalsVisualization() bool {
	return len(a.Visualizations) > 0 || len(a.Metrics) > 0 ||
		len(a.Categories) > 0 || len(a.TimeSeries) > 0
}
