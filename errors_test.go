package htmlinline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alnah/go-htmlinline/internal/assets"
	"github.com/alnah/go-htmlinline/internal/config"
	"github.com/alnah/go-htmlinline/internal/pipeline"
)

func TestConvertError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"invalid base", assets.ErrInvalidBasePath, ErrInvalidBaseDir},
		{"not found", fmt.Errorf("inlining script: %w", assets.ErrAssetNotFound), ErrAssetNotFound},
		{"read", assets.ErrAssetRead, ErrAssetRead},
		{"traversal", assets.ErrPathTraversal, ErrPathTraversal},
		{"remote", assets.ErrRemoteFetch, ErrRemoteFetch},
		{"minify", pipeline.ErrMinify, ErrCSSMinify},
		{"config not found", config.ErrConfigNotFound, ErrConfigNotFound},
		{"config parse", config.ErrConfigParse, ErrConfigParse},
		{"config name", config.ErrEmptyConfigName, ErrInvalidConfig},
		{"config field", config.ErrFieldTooLong, ErrInvalidConfig},
		{"config value", config.ErrInvalidField, ErrInvalidConfig},
		{"context passes through", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("convertError(%v) = %v, want %v", tt.err, got, tt.want)
			}
			if got.Error() != tt.err.Error() {
				t.Errorf("message changed: %q, want %q", got.Error(), tt.err.Error())
			}
		})
	}

	if convertError(nil) != nil {
		t.Error("convertError(nil) != nil")
	}
}
