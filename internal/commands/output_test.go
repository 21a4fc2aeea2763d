package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{name: "fallback", args: map[string]any{}, want: "yaml"},
		{name: "json flag wins", args: map[string]any{"json": true, "format": "yaml"}, want: "json"},
		{name: "explicit text", args: map[string]any{"format": "text"}, want: "text"},
		{name: "unknown", args: map[string]any{"format": "toml"}, wantErr: true},
		{name: "missing value", args: map[string]any{"format": true}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(tt.args, "yaml")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender(t *testing.T) {
	v := []string{"a", "b"}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, "text", v, text))
	assert.Equal(t, "a,b\n", buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, "json", v, text))
	assert.JSONEq(t, `["a","b"]`, buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, "yaml", v, text))
	assert.YAMLEq(t, "- a\n- b\n", buf.String())
}

func TestReadMessage(t *testing.T) {
	msg, err := readMessage([]string{"buy", "milk"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", msg)

	oldIn := stdin
	t.Cleanup(func() { stdin = oldIn })

	stdin = strings.NewReader("from stdin\r\n")
	msg, err = readMessage([]string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "from stdin", msg)

	stdin = strings.NewReader("")
	_, err = readMessage([]string{"-"})
	assert.Error(t, err)

	// "-" among other words is literal
	msg, err = readMessage([]string{"a", "-", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a - b", msg)
}
