// ABOUTME: Feed source registry loads the list of blog feeds from a file or URL
// ABOUTME: Accepts a JSON array (or YAML sequence) of feed descriptors

package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"portfolio-feeds-api/core/domain"
	coreerrors "portfolio-feeds-api/core/errors"
	"portfolio-feeds-api/core/interfaces"
)

// Loader reads the registry document from Source, which is either a file
// path or an http(s) URL. It implements interfaces.RegistryLoader.
type Loader struct {
	Source     string
	HTTPClient interfaces.HTTPClient
}

// NewLoader creates a registry loader
func NewLoader(source string, client interfaces.HTTPClient) *Loader {
	return &Loader{Source: source, HTTPClient: client}
}

// Load reads and validates the registry. Every failure is a *errors.ConfigurationError.
func (l *Loader) Load(ctx context.Context) ([]domain.FeedDescriptor, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, &coreerrors.ConfigurationError{Message: "Failed to load blog registry", Err: err}
	}

	return Parse(data, isYAML(l.Source))
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if l.Source == "" {
		return nil, fmt.Errorf("registry source not configured")
	}

	if !isRemote(l.Source) {
		return os.ReadFile(l.Source)
	}

	if l.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}

	resp, err := l.HTTPClient.Get(ctx, l.Source)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &coreerrors.HTTPStatusError{StatusCode: resp.StatusCode(), URL: l.Source}
	}

	return io.ReadAll(resp.Body())
}

// Parse decodes a registry document. An empty list, a document that is not a
// list, or an invalid descriptor is a configuration error.
func Parse(data []byte, asYAML bool) ([]domain.FeedDescriptor, error) {
	var feeds []domain.FeedDescriptor

	if asYAML {
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, &coreerrors.ConfigurationError{Message: "Invalid blog registry", Err: err}
		}
		if len(node.Content) == 0 || node.Content[0].Kind != yaml.SequenceNode {
			return nil, &coreerrors.ConfigurationError{Message: "No blog feeds configured"}
		}
		if err := node.Content[0].Decode(&feeds); err != nil {
			return nil, &coreerrors.ConfigurationError{Message: "Invalid blog registry", Err: err}
		}
	} else {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, &coreerrors.ConfigurationError{Message: "No blog feeds configured"}
		}
		if err := json.Unmarshal(trimmed, &feeds); err != nil {
			return nil, &coreerrors.ConfigurationError{Message: "Invalid blog registry", Err: err}
		}
	}

	if len(feeds) == 0 {
		return nil, &coreerrors.ConfigurationError{Message: "No blog feeds configured"}
	}

	for i := range feeds {
		if err := feeds[i].Validate(); err != nil {
			return nil, &coreerrors.ConfigurationError{
				Message: fmt.Sprintf("Invalid blog feed at index %d", i),
				Err:     err,
			}
		}
	}

	return feeds, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isYAML(source string) bool {
	if isRemote(source) {
		if i := strings.IndexAny(source, "?#"); i >= 0 {
			source = source[:i]
		}
	}
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".yaml" || ext == ".yml"
}
