package mcp

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewServer(t *testing.T) {
	srv := New()
	if srv == nil {
		t.Fatal("New() returned nil")
	}
	if srv.mcpServer == nil {
		t.Error("mcpServer is nil")
	}
	if srv.workbooks == nil {
		t.Error("workbook cache is nil")
	}
}

func TestCacheCapacity(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", DefaultCacheSize},
		{"valid", "32", 32},
		{"not a number", "lots", DefaultCacheSize},
		{"zero", "0", DefaultCacheSize},
		{"negative", "-3", DefaultCacheSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CELLQ_CACHE_SIZE", tt.value)
			if got := cacheCapacity(); got != tt.want {
				t.Errorf("cacheCapacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestJsonResult(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{
			name:      "simple string slice",
			input:     []string{"a", "b", "c"},
			shouldErr: false,
		},
		{
			name:      "map",
			input:     map[string]string{"key": "value"},
			shouldErr: false,
		},
		{
			name:      "nil",
			input:     nil,
			shouldErr: false,
		},
		{
			name:      "struct",
			input:     struct{ Name string }{"test"},
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := jsonResult(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if result == nil {
					t.Error("result is nil")
				}
			}
		})
	}
}

func TestJsonResultTooLarge(t *testing.T) {
	huge := strings.Repeat("x", MaxOutputBytes)

	result, err := jsonResult(huge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for oversized output")
	}
}

func TestJsonResultWithMetadata(t *testing.T) {
	result, err := jsonResultWithMetadata([][]string{{"a", "b"}}, 1, true, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not TextContent type")
	}
	for _, want := range []string{`"data"`, `"metadata"`, `"rows_returned":1`, `"truncated":true`, `"limit":50`} {
		if !strings.Contains(textContent.Text, want) {
			t.Errorf("result %s missing %s", textContent.Text, want)
		}
	}
}
