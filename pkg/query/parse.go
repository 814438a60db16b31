package query

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseRequest decodes a question from a JSON or YAML body. Unknown content
// types are parsed as JSON.
func ParseRequest(body io.Reader, contentType string) (*Request, error) {
	if body == nil {
		return nil, fmt.Errorf("request body cannot be nil")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)

	var req Request
	switch strings.ToLower(mediaType) {
	case "application/x-yaml", "application/yaml", "text/yaml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse YAML body: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse JSON body: %w", err)
		}
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return nil, fmt.Errorf("question is required")
	}
	return &req, nil
}
