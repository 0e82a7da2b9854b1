package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Guy-Maoz/insights-deck-ai/internal/observability"
)

// Generator produces a dashboard HTML file from a CSV snapshot and
// natural-language instructions. It is the seam the presentation shells
// depend on; Agent is the production implementation.
type Generator interface {
	Generate(ctx context.Context, csvPath, instructions, outputDir, datasetName string) (string, error)
}

// GenerationError is the recoverable per-request failure: callers surface
// it as a user-facing message and keep the session alive.
type GenerationError struct {
	Dataset string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("dashboard generation for %s failed: %v", e.Dataset, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// chatCompleter is the slice of the OpenAI client the agent needs; tests
// substitute a scripted implementation.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Agent drives the tool-calling conversation: the model inspects the
// dataset, optionally previews single charts, and must finish by calling
// generate_dashboard.
type Agent struct {
	client      chatCompleter
	model       string
	temperature float32
	maxRounds   int
	log         observability.Logger
}

// AgentOption customizes an Agent.
type AgentOption func(*Agent)

// WithModel overrides the chat model.
func WithModel(model string) AgentOption {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) AgentOption {
	return func(a *Agent) { a.temperature = t }
}

// WithBaseURL points the agent at an OpenAI-compatible endpoint.
func WithBaseURL(apiKey, baseURL string) AgentOption {
	return func(a *Agent) {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		a.client = openai.NewClientWithConfig(cfg)
	}
}

// WithLogger attaches a logger.
func WithLogger(log observability.Logger) AgentOption {
	return func(a *Agent) { a.log = log }
}

// maxToolRounds bounds the conversation; a well-behaved run finishes in
// three or four rounds (analyze, generate, final answer).
const maxToolRounds = 8

// NewAgent builds the production agent.
func NewAgent(apiKey string, opts ...AgentOption) *Agent {
	a := &Agent{
		client:      openai.NewClient(apiKey),
		model:       openai.GPT4oMini,
		temperature: 0.3,
		maxRounds:   maxToolRounds,
		log:         observability.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Generate runs the agent over the snapshot at csvPath and returns the
// path of the written dashboard HTML file.
func (a *Agent) Generate(ctx context.Context, csvPath, instructions, outputDir, datasetName string) (string, error) {
	frame, err := ReadFrame(csvPath)
	if err != nil {
		return "", &GenerationError{Dataset: datasetName, Err: err}
	}
	if datasetName != "" {
		frame.Name = datasetName
	}

	rt := &toolRuntime{frame: frame, outputDir: outputDir}
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: EnhanceInstructions(frame, instructions)},
	}

	for round := 0; round < a.maxRounds; round++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       a.model,
			Messages:    messages,
			Tools:       toolDefinitions(),
			Temperature: a.temperature,
		})
		if err != nil {
			return "", &GenerationError{Dataset: datasetName, Err: err}
		}
		if len(resp.Choices) == 0 {
			return "", &GenerationError{Dataset: datasetName, Err: fmt.Errorf("provider returned no choices")}
		}
		msg := resp.Choices[0].Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 {
			if rt.generatedPath != "" {
				return rt.generatedPath, nil
			}
			return "", &GenerationError{Dataset: datasetName, Err: fmt.Errorf("model finished without generating a dashboard")}
		}

		for _, tc := range msg.ToolCalls {
			result, err := rt.execute(tc.Function.Name, tc.Function.Arguments)
			if err != nil {
				// Feed the error back so the model can correct itself
				// (wrong column name, unsupported chart type).
				result = fmt.Sprintf("error: %v", err)
				a.log.Warn().Str("tool", tc.Function.Name).Err(err).Msg("tool call failed")
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	if rt.generatedPath != "" {
		return rt.generatedPath, nil
	}
	return "", &GenerationError{Dataset: datasetName, Err: fmt.Errorf("no dashboard after %d rounds", a.maxRounds)}
}

// toolRuntime executes the agent's tool calls against the loaded frame.
type toolRuntime struct {
	frame         *Frame
	outputDir     string
	chartSeq      int
	generatedPath string
}

func (rt *toolRuntime) execute(name, arguments string) (string, error) {
	switch name {
	case "analyze_dataset":
		return rt.analyzeDataset()
	case "create_chart":
		var cfg ChartConfig
		if err := json.Unmarshal([]byte(arguments), &cfg); err != nil {
			return "", fmt.Errorf("decode create_chart arguments: %w", err)
		}
		return rt.createChart(cfg, "light")
	case "generate_dashboard":
		var args struct {
			Config DashboardConfig `json:"config"`
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("decode generate_dashboard arguments: %w", err)
		}
		// Some models pass the config fields at the top level.
		if args.Config.Title == "" && len(args.Config.Charts) == 0 {
			if err := json.Unmarshal([]byte(arguments), &args.Config); err != nil {
				return "", fmt.Errorf("decode dashboard config: %w", err)
			}
		}
		return rt.generateDashboard(args.Config)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (rt *toolRuntime) analyzeDataset() (string, error) {
	b, err := json.MarshalIndent(rt.frame.Summarize(5), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dataset summary: %w", err)
	}
	return string(b), nil
}

func (rt *toolRuntime) createChart(cfg ChartConfig, theme string) (string, error) {
	rt.chartSeq++
	return RenderChart(rt.frame, cfg, theme, fmt.Sprintf("chart-%d", rt.chartSeq))
}

func (rt *toolRuntime) generateDashboard(cfg DashboardConfig) (string, error) {
	if len(cfg.Charts) == 0 {
		return "", fmt.Errorf("dashboard config has no charts")
	}
	if cfg.Title == "" {
		cfg.Title = "Dashboard"
	}
	charts := make([]string, 0, len(cfg.Charts))
	for _, cc := range cfg.Charts {
		html, err := rt.createChart(cc, cfg.Theme)
		if err != nil {
			return "", err
		}
		charts = append(charts, html)
	}
	path, err := WritePage(rt.outputDir, cfg, charts)
	if err != nil {
		return "", err
	}
	rt.generatedPath = path
	return fmt.Sprintf("dashboard written to %s", path), nil
}

func toolDefinitions() []openai.Tool {
	chartProperties := map[string]any{
		"chart_type": map[string]any{
			"type": "string",
			"enum": ChartTypes,
		},
		"x_column": map[string]any{"type": "string"},
		"y_column": map[string]any{"type": "string"},
		"title":    map[string]any{"type": "string"},
	}
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "analyze_dataset",
				Description: "Analyze the dataset and return a summary of its structure and content.",
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "create_chart",
				Description: "Create a single chart and return its HTML representation.",
				Parameters: map[string]any{
					"type":       "object",
					"properties": chartProperties,
					"required":   []string{"chart_type", "x_column"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "generate_dashboard",
				Description: "Generate the complete HTML dashboard from a configuration and return its file path.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"config": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title": map[string]any{"type": "string"},
								"charts": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type":       "object",
										"properties": chartProperties,
										"required":   []string{"chart_type", "x_column"},
									},
								},
								"layout": map[string]any{"type": "string", "enum": []string{"grid", "vertical"}},
								"theme":  map[string]any{"type": "string", "enum": []string{"light", "dark"}},
							},
							"required": []string{"title", "charts"},
						},
					},
					"required": []string{"config"},
				},
			},
		},
	}
}
