package supervisor

// validationPrompt asks the judge whether the final report meets the bar.
const validationPrompt = `Review this research report and determine if it meets quality standards:
%s

Return your decision in YAML format:
` + "```yaml" + `
decision:
  approved: true/false
  feedback: <feedback if not approved>
  confidence: <0-1>
` + "```" + `

Rules:
- Return exactly one fenced yaml block and nothing else.
- approved must be a boolean.
- When approved is false, feedback must say concretely what is missing.`

// codeNeedPrompt asks the judge whether the analysis requires a code pass
// before reporting.
const codeNeedPrompt = `Based on the analysis results, determine if code execution is needed for data processing or other tasks:
%s

Return your decision in YAML format:
` + "```yaml" + `
decision:
  needs_code: true/false
  reason: <explanation>
` + "```" + `

Rules:
- Return exactly one fenced yaml block and nothing else.
- needs_code must be a boolean.`
