package arg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		name      string
		raw       []string
		boolFlags []string
		want      map[string]any
	}{
		{
			name: "positional only",
			raw:  []string{"todo", "buy", "milk"},
			want: map[string]any{"args": []string{"todo", "buy", "milk"}},
		},
		{
			name: "flag with value",
			raw:  []string{"todo", "--limit", "3"},
			want: map[string]any{"args": []string{"todo"}, "limit": "3"},
		},
		{
			name: "equals syntax",
			raw:  []string{"--format=yaml", "todo"},
			want: map[string]any{"args": []string{"todo"}, "format": "yaml"},
		},
		{
			name: "trailing boolean",
			raw:  []string{"todo", "--json"},
			want: map[string]any{"args": []string{"todo"}, "json": true},
		},
		{
			name:      "declared boolean does not consume",
			raw:       []string{"--json", "todo"},
			boolFlags: []string{"json"},
			want:      map[string]any{"args": []string{"todo"}, "json": true},
		},
		{
			name: "undeclared boolean consumes next word",
			raw:  []string{"--json", "todo"},
			want: map[string]any{"json": "todo"},
		},
		{
			name:      "single dash flag",
			raw:       []string{"-i", "finish"},
			boolFlags: []string{"i"},
			want:      map[string]any{"args": []string{"finish"}, "i": true},
		},
		{
			name: "lone dash is positional",
			raw:  []string{"todo", "-"},
			want: map[string]any{"args": []string{"todo", "-"}},
		},
		{
			name: "double dash ends flags",
			raw:  []string{"todo", "--", "--not-a-flag", "-x"},
			want: map[string]any{"args": []string{"todo", "--not-a-flag", "-x"}},
		},
		{
			name: "flag before double dash is boolean",
			raw:  []string{"--verbose", "--", "x"},
			want: map[string]any{"args": []string{"x"}, "verbose": true},
		},
		{
			name: "empty",
			raw:  nil,
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArg(tt.raw, tt.boolFlags...))
		})
	}
}

func TestAccessors(t *testing.T) {
	args := ParseArg([]string{"a", "--json", "--force=false", "--remote", "up"}, "json")

	assert.Equal(t, []string{"a"}, Strings(args))
	assert.True(t, Bool(args, "json"))
	assert.False(t, Bool(args, "force"))
	assert.False(t, Bool(args, "missing"))

	remote, ok := String(args, "remote")
	assert.True(t, ok)
	assert.Equal(t, "up", remote)

	_, ok = String(args, "json")
	assert.False(t, ok)

	assert.Nil(t, Strings(map[string]any{}))
}

func TestParseArgText(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want map[string]any
	}{
		{
			name: "dashed words after the lead are text",
			raw:  []string{"todo", "buy", "milk", "-2", "eggs", "-v", "today"},
			want: map[string]any{"args": []string{"todo", "buy", "milk", "-2", "eggs", "-v", "today"}},
		},
		{
			name: "flags before the lead still parse",
			raw:  []string{"--backend", "go-git", "-v", "todo", "--json"},
			want: map[string]any{"args": []string{"todo", "--json"}, "backend": "go-git", "v": true},
		},
		{
			name: "separator after the lead is dropped once",
			raw:  []string{"todo", "--", "--", "x"},
			want: map[string]any{"args": []string{"todo", "--", "x"}},
		},
		{
			name: "stdin marker",
			raw:  []string{"todo", "-"},
			want: map[string]any{"args": []string{"todo", "-"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgText(tt.raw, 1, "v"))
		})
	}
}
