package planner

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/siftlabs/sift/pkg/models"
)

// plannerPrompt is the decomposition prompt template.
const plannerPrompt = `Break down this research query into specific tasks. Return ONLY the YAML structure below, replacing the placeholders with actual values:

Query: %s
%s
` + "```yaml" + `
tasks:
  - type: web_research
    description: <specific research task>
    parameters:
      search_terms:
        - <specific search term 1>
        - <specific search term 2>
  - type: data_analysis
    description: <specific analysis task>
    parameters:
      data_sources:
        - <specific data source 1>
        - <specific data source 2>
  - type: code_execution
    description: <specific code task>
    parameters:
      code_requirements:
        - <specific requirement 1>
        - <specific requirement 2>
` + "```" + `

Rules:
1. Return ONLY the YAML structure above, nothing else
2. Replace ALL placeholders with specific values
3. Keep the exact same indentation (2 spaces)
4. Each task must have all fields (type, description, parameters)
5. Each parameters field must have its required list (search_terms, data_sources, or code_requirements)
`

// buildPrompt renders the decomposition prompt, including revision feedback
// and any historical context the store can offer. Context retrieval is
// best-effort: failures are logged and the prompt is built without it.
func (p *Planner) buildPrompt(ctx context.Context, query, feedback string) string {
	var extra strings.Builder

	if feedback != "" {
		fmt.Fprintf(&extra, "\nA previous attempt was rejected with this feedback, address it in the new plan:\n%s\n", feedback)
	}

	if p.history != nil {
		if section := p.historyContext(ctx, query); section != "" {
			extra.WriteString(section)
		}
	}

	return fmt.Sprintf(plannerPrompt, query, extra.String())
}

// historyContext summarizes similar past queries, reusable templates, and
// aggregate metrics into a prompt section.
func (p *Planner) historyContext(ctx context.Context, query string) string {
	var b strings.Builder

	similar := p.history.SimilarQueries(ctx, p.embedder, query, 3)
	if len(similar) > 0 {
		b.WriteString("\nSimilar past queries and their outcomes:\n")
		for _, s := range similar {
			outcome := "failed"
			if s.Execution.Success {
				outcome = "succeeded"
			}
			fmt.Fprintf(&b, "- %q (%s, %d tasks)\n", s.Execution.Query, outcome, len(s.Execution.Tasks))
		}
	}

	templates, err := p.history.Templates()
	if err != nil {
		log.Printf("[planner] template lookup failed: %v", err)
	} else {
		var lines []string
		for _, taskType := range []models.TaskType{models.TaskWebResearch, models.TaskDataAnalysis, models.TaskCodeExecution} {
			for i, tmpl := range templates[taskType] {
				if i >= 2 {
					break
				}
				lines = append(lines, fmt.Sprintf("- %s: %s", taskType, tmpl.Description))
			}
		}
		if len(lines) > 0 {
			b.WriteString("\nTask patterns that worked for past queries:\n")
			b.WriteString(strings.Join(lines, "\n"))
			b.WriteString("\n")
		}
	}

	metrics, err := p.history.Metrics()
	if err != nil {
		log.Printf("[planner] metrics lookup failed: %v", err)
	} else if metrics.TotalExecutions > 0 {
		fmt.Fprintf(&b, "\nHistorical success rate: %d of %d runs approved.\n",
			metrics.SuccessfulExecutions, metrics.TotalExecutions)
	}

	return b.String()
}
