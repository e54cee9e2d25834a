package header_mapping_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/init-pkg/menu-import/domain/app"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"
	"github.com/init-pkg/menu-import/internal/config"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v2"
)

type ColumnRoleMapping struct {
	ColumnIndex int     `json:"column_index" jsonschema:"minimum=0" jsonschema_description:"0-based column index from the input"`
	Role        string  `json:"role" jsonschema:"enum=category,enum=subcategory,enum=name_en,enum=name_ar,enum=price,enum=meal,enum=cuisine,enum=unknown" jsonschema_description:"Menu field the column holds"`
	Confidence  float64 `json:"confidence" jsonschema:"minimum=0,maximum=1" jsonschema_description:"Mapping confidence from 0 to 1"`
}

type ColumnMappingResponse struct {
	Mappings []ColumnRoleMapping `json:"mappings" jsonschema_description:"One entry per mapped column"`
}

func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var ColumnMappingResponseSchema = GenerateSchema[ColumnMappingResponse]()

var schemaParam = openai.ResponseFormatJSONSchemaJSONSchemaParam{
	Name:        "menu_column_mapping",
	Description: openai.String("Spreadsheet columns to menu fields mapping"),
	Schema:      ColumnMappingResponseSchema,
	Strict:      openai.Bool(true),
}

type columnInput struct {
	Index    int      `json:"index"`
	Header   string   `json:"header,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

type mappingInput struct {
	Columns []columnInput `json:"columns"`
}

// HeaderMappingService asks a chat model which column holds which menu field.
// It only runs when the heuristic classifier could not find the name or the
// price column; its answer goes through the same confirmation step.
type HeaderMappingService struct {
	log          *slog.Logger
	openaiClient *openai.Client
	model        openai.ChatModel
	enabled      bool

	maxExamplesPerColumn int
	exampleTruncateLen   int
	minConfidence        float64
	ctxTimeout           time.Duration
}

var _ app.ColumnSuggester = &HeaderMappingService{}

func New(log *slog.Logger, cfg *config.Config, openaiClient *openai.Client) *HeaderMappingService {
	return &HeaderMappingService{
		log:                  log,
		openaiClient:         openaiClient,
		model:                openai.ChatModel(cfg.Clients.OpenAI.Model),
		enabled:              cfg.Import.LLMFallback && cfg.Clients.OpenAI.ApiKey != "" && openaiClient != nil,
		maxExamplesPerColumn: 2,
		exampleTruncateLen:   140,
		minConfidence:        0.5,
		ctxTimeout:           25 * time.Second,
	}
}

func (this *HeaderMappingService) Suggest(ctx context.Context, grid menu_classifier.Grid) (menu_classifier.Assignment, error) {
	if !this.enabled {
		return nil, app.ErrSuggestionDisabled
	}

	input := buildInput(grid, this.maxExamplesPerColumn, this.exampleTruncateLen)
	if len(input.Columns) == 0 {
		return nil, menu_classifier.ErrInsufficientData
	}
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("build input json: %w", err)
	}

	resp, err := this.callModel(ctx, string(inputJSON))
	if err != nil {
		return nil, err
	}

	a := toAssignment(resp, len(input.Columns), this.minConfidence)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	this.log.Info("column mapping suggested",
		"columns", len(input.Columns),
		"mapped", len(a))

	return a, nil
}

// buildInput describes every column of the sheet: its header cell and a few
// distinct example values from the rows below it.
func buildInput(grid menu_classifier.Grid, maxExamples, truncateLen int) mappingInput {
	headerRow := -1
	width := 0
	for r, row := range grid {
		if headerRow < 0 && len(row) > 0 {
			headerRow = r
		}
		width = max(width, len(row))
	}
	if headerRow < 0 {
		return mappingInput{}
	}

	cols := make([]columnInput, width)
	for c := range cols {
		cols[c].Index = c
		cols[c].Header = grid.At(headerRow, c).String()

		seen := make(map[string]bool, maxExamples)
		for r := headerRow + 1; r < len(grid) && len(cols[c].Examples) < maxExamples; r++ {
			val := grid.At(r, c).String()
			if val == "" || seen[val] {
				continue
			}
			seen[val] = true
			cols[c].Examples = append(cols[c].Examples, truncate(val, truncateLen))
		}
	}
	return mappingInput{Columns: cols}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + fmt.Sprintf("…(+%d)", len(runes)-n)
}

// toAssignment keeps confident mappings only. A role gets one column and a
// column one role; the more confident mapping wins.
func toAssignment(resp ColumnMappingResponse, width int, minConfidence float64) menu_classifier.Assignment {
	mappings := append([]ColumnRoleMapping(nil), resp.Mappings...)
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Confidence > mappings[j].Confidence
	})

	a := make(menu_classifier.Assignment)
	usedCols := make(map[int]bool)
	for _, m := range mappings {
		role := menu_classifier.Role(m.Role)
		if !role.IsValid() || m.Confidence < minConfidence {
			continue
		}
		if m.ColumnIndex < 0 || m.ColumnIndex >= width {
			continue
		}
		if _, taken := a[role]; taken || usedCols[m.ColumnIndex] {
			continue
		}
		a[role] = m.ColumnIndex
		usedCols[m.ColumnIndex] = true
	}
	return a
}

func (this *HeaderMappingService) callModel(ctx context.Context, inputJSON string) (ColumnMappingResponse, error) {
	system := "You map spreadsheet columns of a restaurant menu to menu fields from a fixed enum. " +
		"name_en is the English item name, name_ar the Arabic item name, meal lists breakfast/lunch/dinner/high tea availability. " +
		"Use the examples to disambiguate. If unsure, use \"unknown\". Return ONLY the JSON required by the schema."
	user := fmt.Sprintf("Map the columns using the examples.\nINPUT_JSON:\n%s", inputJSON)

	ctx, cancel := context.WithTimeout(ctx, this.ctxTimeout)
	defer cancel()

	chat, err := this.openaiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Seed:  openai.Int(42),
		Model: this.model,
	})
	if err != nil {
		return ColumnMappingResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return ColumnMappingResponse{}, errors.New("openai: empty choices")
	}

	var resp ColumnMappingResponse
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &resp); err != nil {
		return ColumnMappingResponse{}, fmt.Errorf("unmarshal model output: %w", err)
	}

	for i := range resp.Mappings {
		if resp.Mappings[i].Role == "" {
			resp.Mappings[i].Role = "unknown"
		}
		resp.Mappings[i].Confidence = round2(min(max(resp.Mappings[i].Confidence, 0), 1))
	}
	return resp, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
