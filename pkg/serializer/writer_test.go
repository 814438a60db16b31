package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type testCatalog []testConfig

func (c testCatalog) TableHeader() []string { return []string{"NAME", "VALUE"} }

func (c testCatalog) TableRows() [][]string {
	rows := make([][]string, 0, len(c))
	for _, item := range c {
		rows = append(rows, []string{item.Name, strings.Repeat("x", item.Value)})
	}
	return rows
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{{Name: "test1", Value: 123}, {Name: "test2", Value: 456}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0].Name != "test1" || result[0].Value != 123 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), testConfig{Name: "test", Value: 7}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testConfig
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result.Name != "test" || result.Value != 7 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := map[string]any{
		"answer": "2",
		"nested": map[string]any{"state": "Done"},
		"items":  []string{"a", "b"},
	}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FIELD", "VALUE", "answer", "nested.state", "Done", "items.[1]"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_SerializeTable_Struct(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := testConfig{Name: "nodes", Value: 2}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<empty>") {
		t.Fatalf("struct flattened to nothing:\n%s", out)
	}
	for _, want := range []string{"FIELD", "nodes", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_SerializeTable_Tabular(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), testCatalog{{Name: "list_resources", Value: 2}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.HasPrefix(lines[1], "list_resources") {
		t.Errorf("unexpected table: %q", buf.String())
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("xml"), &buf)

	if err := writer.Serialize(context.Background(), testConfig{Name: "test"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON fallback, got %q", buf.String())
	}
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	writer := NewWriter(FormatJSON, nil)
	if writer.output != os.Stdout {
		t.Error("expected stdout output")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		for _, path := range []string{"", "  ", "\t"} {
			writer := NewFileWriterOrStdout(FormatJSON, path)
			if closer, ok := writer.(Closer); ok {
				if err := closer.Close(); err != nil {
					t.Errorf("Close failed for %q: %v", path, err)
				}
			}
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.json")
		writer := NewFileWriterOrStdout(FormatJSON, path)

		if err := writer.Serialize(context.Background(), testConfig{Name: "test", Value: 1}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if closer, ok := writer.(Closer); ok {
			if err := closer.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read output file: %v", err)
		}
		var result testConfig
		if err := json.Unmarshal(content, &result); err != nil {
			t.Fatalf("Failed to unmarshal file content: %v", err)
		}
		if result.Name != "test" {
			t.Errorf("Unexpected data in file: %+v", result)
		}
	})

	t.Run("invalid path falls back to stdout", func(t *testing.T) {
		writer := NewFileWriterOrStdout(FormatJSON, "/nonexistent/path/file.json")
		if writer == nil {
			t.Fatal("expected non-nil writer")
		}
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		if Format(f).IsUnknown() {
			t.Errorf("%s reported unknown", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}
