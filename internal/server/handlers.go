package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/imgcdn-mcp/internal/cdnurl"
	"github.com/ironsheep/imgcdn-mcp/internal/preview"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cdn_url", "cdn_preview").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errNoCloud is returned by cdn_url when neither the server nor the call
// names a cloud.
var errNoCloud = errors.New("no cloud name configured; pass cloud_name")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors, panics included, return a JSON-RPC error response
// with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.callTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// callTool runs executeTool and reports a panic as the call's error, leaving
// the server loop running.
func (s *Server) callTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", "tool", name, "panic", r)
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "cdn_url":
		return s.handleURL(args)
	case "cdn_transformation":
		return s.handleTransformation(args)
	case "cdn_normalize_name":
		return s.handleNormalizeName(args)
	case "cdn_preview":
		return s.handlePreview(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments keeping numbers as json.Number, so
// that 0.5 stays "0.5" and 100 stays "100" in the compiled path.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === URL Handlers ===

type urlArgs struct {
	Name      string         `json:"name"`
	Options   cdnurl.Options `json:"options"`
	CloudName string         `json:"cloud_name"`
}

type urlResult struct {
	URL string `json:"url"`
}

func (s *Server) handleURL(args json.RawMessage) (interface{}, error) {
	var a urlArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, errors.New("name is required")
	}

	r, err := s.resourceFor(a.CloudName)
	if err != nil {
		return nil, err
	}

	u, err := r.URL(a.Name, a.Options)
	if err != nil {
		return nil, err
	}
	return urlResult{URL: u}, nil
}

// resourceFor returns the configured Resource, switched to cloudName when
// one is given.
func (s *Server) resourceFor(cloudName string) (*cdnurl.Resource, error) {
	switch {
	case cloudName == "" && s.resource == nil:
		return nil, errNoCloud
	case cloudName == "":
		return s.resource, nil
	case s.resource == nil:
		return cdnurl.New(cloudName)
	default:
		return s.resource.WithCloudName(cloudName)
	}
}

type transformationArgs struct {
	Options cdnurl.Options `json:"options"`
}

type transformationResult struct {
	Transformation string           `json:"transformation"`
	Segments       []cdnurl.Segment `json:"segments"`
}

func (s *Server) handleTransformation(args json.RawMessage) (interface{}, error) {
	var a transformationArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	segs, err := cdnurl.Segments(a.Options)
	if err != nil {
		return nil, err
	}
	if segs == nil {
		segs = []cdnurl.Segment{}
	}
	return transformationResult{
		Transformation: cdnurl.JoinSegments(segs),
		Segments:       segs,
	}, nil
}

type normalizeNameArgs struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

type normalizeNameResult struct {
	Name string `json:"name"`
}

func (s *Server) handleNormalizeName(args json.RawMessage) (interface{}, error) {
	var a normalizeNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return normalizeNameResult{Name: cdnurl.NormalizeName(a.Name, a.Format)}, nil
}

// === Preview Handlers ===

type previewArgs struct {
	Path       string         `json:"path"`
	Options    cdnurl.Options `json:"options"`
	OutputPath string         `json:"output_path"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	out, err := preview.File(s.cache, a.Path, a.Options)
	if err != nil {
		return nil, err
	}
	if len(out.Skipped) > 0 {
		s.logger.Debug("preview skipped parameters", "path", a.Path, "skipped", out.Skipped)
	}

	if a.OutputPath != "" {
		// A cached decode of the written file is stale now.
		s.cache.Evict(a.OutputPath)
		return out.Save(a.OutputPath)
	}
	return out.Result()
}
