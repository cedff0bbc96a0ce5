package worker

// analysisPrompt requests structured analysis of the accumulated research.
const analysisPrompt = `Analyze these research results and extract structured data. Return the following YAML with both qualitative and quantitative analysis (if possible):

Research Results:
%s

` + "```yaml" + `
analysis:
  key_findings:
    - <finding 1>
    - <finding 2>
  implications:
    - <implication 1>
    - <implication 2>

  metrics:
    - name: <metric name>
      value: <numeric value>
      unit: <unit of measurement>
      source: <where this metric came from>
      confidence: <0-1>

  categories:
    - name: <category name>
      items:
        - name: <item name>
          count: <number of occurrences>
          percentage: <percentage of total>

  time_series:
    - year: <year>
      metrics:
        - name: <metric name>
          value: <value>

  relationships:
    - from: <entity 1>
      to: <entity 2>
      type: <relationship type>
      strength: <0-1>

  data_quality:
    completeness: <0-1>
    reliability: <0-1>
    sources_used: <number>

  visualizations:
    - type: <chart type>
      data_source: <which data to use>
      purpose: <what it shows>
      priority: <1-5>

  next_steps:
    - <suggested next step 1>
    - <suggested next step 2>
` + "```" + `

Rules:
1. The analysis key is required while the rest of the fields are optional.
2. Extract ALL possible numerical and/or qualitative data from the research
3. Create categories where patterns emerge
4. Identify time-based trends if present
5. Note relationships between entities
6. Assess data quality
7. Recommend appropriate visualizations
8. Only include sections where data is available
9. Use consistent units and formats
10. Strictly follow the provided YAML structure
11. Do not add any additional text or explanations outside the YAML
`

// codePrompt requests Python that satisfies the task requirements in the
// context of the current analysis.
const codePrompt = `Generate Python code to satisfy these requirements:
Requirements: %s
Context from analysis:
%s

You MUST return ONLY the following YAML structure, with no additional text or explanations:
` + "```yaml" + `
code: |
    # Your Python code here
    # Must be valid Python code
    # Must include proper imports
    # Must save ALL visualizations to temp_dir using plt.savefig()
    # Example: plt.savefig(os.path.join(temp_dir, 'visualization.png'))
    # Must print the result
explanation: |
    Brief explanation of what the code does
visualization_type: |
    Type of visualization if applicable, or 'none'
` + "```" + `

Rules:
1. Return ONLY the YAML structure above
2. Do not add any text before or after the YAML
3. The code must be valid Python code
4. The code must save ALL visualizations to temp_dir using plt.savefig()
5. Keep the exact same indentation (2 spaces)
6. Do not modify the structure or add/remove fields
`

// reportPrompt requests the final structured report.
const reportPrompt = `Generate a comprehensive research report based on:
Analysis:
%s
Code Execution Results:
%s
Web Research:
%s
Visualization URLs: %s
Sources: %s

Format the report in YAML:
` + "```yaml" + `
report:
  executive_summary: |
    <summary>
  detailed_findings:
    - <finding 1>
    - <finding 2>
  recommendations:
    - <recommendation 1>
    - <recommendation 2>
  visualizations:
    - url: <visualization_url>
      description: <description of what the visualization shows>
      type: <type of visualization>
  sources:
    - url: <source_url>
      description: <brief description of the source>
  next_steps:
    - <next step 1>
    - <next step 2>
` + "```" + `
`
