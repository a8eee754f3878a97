package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

const structuredResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "products": {"type": "array", "items": {"type": "string"}},
    "features": {"type": "array", "items": {"type": "string"}},
    "specifications": {"type": "object", "additionalProperties": {"type": "string"}},
    "pricing": {"type": "object", "additionalProperties": {"type": "string"}},
    "keyPoints": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["products", "features", "specifications", "pricing", "keyPoints"],
  "additionalProperties": false
}`

const structuredSystemPrompt = `Extract structured product data from the given document text and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "products" lists product or model names mentioned in the text.
- "features" lists notable capabilities or selling points, one short phrase each.
- "specifications" maps spec names to values (e.g. "horsepower": "300").
- "pricing" maps pricing labels to amounts (e.g. "msrp": "$45,000").
- "keyPoints" lists the most important takeaways for a sales rep.
- Include only information present in the text. Do not hallucinate.
- If a field has no data, use an empty array or empty object.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// structuredPayload matches the LLM response. Spec and pricing values are
// decoded loosely because models sometimes emit numbers for them.
type structuredPayload struct {
	Products       []string       `json:"products"`
	Features       []string       `json:"features"`
	Specifications map[string]any `json:"specifications"`
	Pricing        map[string]any `json:"pricing"`
	KeyPoints      []string       `json:"keyPoints"`
}

// ExtractStructured asks the understanding service for structured product data
// from a bounded window of the text. On any failure (service error, malformed
// response) it returns the empty-but-well-typed structure; callers never need
// to distinguish "missing" from "failed".
func (e *Extractor) ExtractStructured(ctx context.Context, text string, contentType core.ContentType) core.StructuredData {
	if strings.TrimSpace(text) == "" {
		return core.EmptyStructuredData()
	}

	window := text
	if len(window) > e.structuredWindow {
		window = window[:e.structuredWindow]
	}

	systemPrompt := fmt.Sprintf(structuredSystemPrompt, structuredResponseSchema)
	userPrompt := fmt.Sprintf("Document type: %s\n\n%s", contentType, window)

	response, err := e.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		e.logger.Warn("structured extraction failed", "err", err)
		return core.EmptyStructuredData()
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(ai.CleanJSONResponse(response)), &payload); err != nil {
		e.logger.Warn("error parsing structured extraction response", "err", err)
		return core.EmptyStructuredData()
	}

	result := core.EmptyStructuredData()
	result.Products = append(result.Products, payload.Products...)
	result.Features = append(result.Features, payload.Features...)
	result.KeyPoints = append(result.KeyPoints, payload.KeyPoints...)
	for k, v := range payload.Specifications {
		result.Specifications[k] = stringify(v)
	}
	for k, v := range payload.Pricing {
		result.Pricing[k] = stringify(v)
	}
	return result
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
