package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// optionsSchema describes the shared "options" argument.
func optionsSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"description":          description,
		"additionalProperties": true,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// URL Building
		{
			Name: "cdn_url",
			Description: "Build the delivery URL for a resource name. Options such as width, height, crop, effect, " +
				"secure, type, format and transformation are compiled into the URL path; http(s) names pass through unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Resource public id or absolute URL",
					},
					"options": optionsSchema("URL and transformation options, e.g. {\"width\": 100, \"crop\": \"fill\"}"),
					"cloud_name": map[string]interface{}{
						"type":        "string",
						"description": "Optional cloud name overriding the configured one",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "cdn_transformation",
			Description: "Compile options into the transformation path alone, returning both the path and its structured segments.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"options": optionsSchema("Transformation options; a \"transformation\" key may hold a map, a list of maps or named transformations"),
				},
				"required": []string{"options"},
			},
		},
		{
			Name:        "cdn_normalize_name",
			Description: "Apply the delivery format to a resource name and percent-encode it as it appears in a URL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Resource public id",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Optional target extension such as jpg or png",
					},
				},
				"required": []string{"name"},
			},
		},

		// Local Preview
		{
			Name: "cdn_preview",
			Description: "Apply options to a local image the way the CDN would and return the result as base64. " +
				"Parameters that cannot be reproduced offline are listed under skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image file",
					},
					"options": optionsSchema("Transformation options, as for cdn_url"),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the preview to instead of returning base64",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
