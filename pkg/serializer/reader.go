package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/cluster-query-agent/pkg/defaults"
	"github.com/NVIDIA/cluster-query-agent/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes ConfigMap sources: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// configMapKeys are the ConfigMap data keys searched for a document, in order.
var configMapKeys = []string{"config.yaml", "config.yml", "config.json"}

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatYAML as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to YAML", "filePath", filePath)
		return FormatYAML
	}
}

// Reader deserializes JSON or YAML documents from an io.Reader.
// Close must be called when the Reader was created with NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from input.
// Table format is write-only and rejected.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a new Reader over a local file or an HTTP(S) URL.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		data, err := NewHTTPClient().Get(context.Background(), filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: strings.NewReader(string(data))}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// Deserialize reads data from the input source and unmarshals it into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying file, if any. Safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile reads and deserializes a document from a file path, URL or
// ConfigMap URI into type T, using the default kubeconfig discovery.
func FromFile[T any](path string) (*T, error) {
	return FromFileWithKubeconfig[T](path, "")
}

// FromFileWithKubeconfig reads and deserializes a document into type T.
// The kubeconfig is only used for ConfigMap URIs.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	var out T
	if err := FromFileInto(path, kubeconfig, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FromFileInto decodes a document into v. Fields the document omits keep
// the values v already holds, so callers can pre-populate defaults.
//
// Supported sources:
//   - Local file paths: /path/to/config.yaml
//   - HTTP URLs: https://example.com/config.yaml
//   - ConfigMap URIs: cm://namespace/name, reading the first of
//     config.yaml, config.yml or config.json
func FromFileInto(path, kubeconfig string, v any) error {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return err
		}
		return fromConfigMap(namespace, name, kubeconfig, v)
	}

	format := FormatFromPath(path)
	reader, err := NewFileReader(format, path)
	if err != nil {
		return fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	if err := reader.Deserialize(v); err != nil {
		return fmt.Errorf("failed to deserialize %q: %w", path, err)
	}

	slog.Debug("loaded document", "path", path, "format", format)
	return nil
}

func fromConfigMap(namespace, name, kubeconfig string, v any) error {
	k8sClient, _, err := client.GetKubeClientWithConfig(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaults.K8sCallTimeout)
	defer cancel()

	cm, err := k8sClient.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}
	return decodeConfigMapData(cm.Data, namespace, name, v)
}

func decodeConfigMapData(data map[string]string, namespace, name string, v any) error {
	for _, key := range configMapKeys {
		content, ok := data[key]
		if !ok {
			continue
		}
		reader, err := NewReader(FormatFromPath(key), strings.NewReader(content))
		if err != nil {
			return err
		}
		if err := reader.Deserialize(v); err != nil {
			return fmt.Errorf("failed to deserialize ConfigMap %s/%s key %s: %w", namespace, name, key, err)
		}
		slog.Debug("loaded document from ConfigMap", "namespace", namespace, "name", name, "key", key)
		return nil
	}
	return fmt.Errorf("ConfigMap %s/%s has none of the keys %v", namespace, name, configMapKeys)
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
