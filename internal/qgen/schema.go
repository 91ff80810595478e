package qgen

import "github.com/albertyip/dsedrill/internal/llm"

// QuestionSchema defines the JSON shape requested from the LLM for every
// generated question. The "required" list tells the service to emit all
// three fields; locally the shape check is relaxed and absent fields fall
// back to placeholders instead of failing the call.
var QuestionSchema = &llm.Schema{
	Name:        "dse-question",
	Description: "A single HKDSE math practice question with hint and worked solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "題目內容，繁體中文，LaTeX 公式用 $...$ 或 $$...$$ 包裹",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "解題提示，僅提供思考方向，不直接給出答案",
			},
			"solution": map[string]any{
				"type":        "string",
				"description": "完整的逐步解題過程與最終答案",
			},
		},
		"required": []any{"question", "hint", "solution"},
	},
}
