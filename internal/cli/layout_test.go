package cli

import (
	"reflect"
	"testing"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default json",
			input:   "flow.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "flow.layout.json"},
		},
		{
			name:    "explicit output",
			input:   "flow.json",
			output:  "custom.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "custom.json"},
		},
		{
			name:    "dot format",
			input:   "flow.json",
			formats: []string{"dot"},
			want:    map[string]string{"dot": "flow.dot"},
		},
		{
			name:    "both formats",
			input:   "flow.json",
			formats: []string{"json", "dot"},
			want: map[string]string{
				"json": "flow.layout.json",
				"dot":  "flow.dot",
			},
		},
		{
			name:    "both formats with explicit output",
			input:   "flow.json",
			output:  "out/result.json",
			formats: []string{"json", "dot"},
			want: map[string]string{
				"json": "out/result.layout.json",
				"dot":  "out/result.dot",
			},
		},
		{
			name:    "input without extension",
			input:   "flow",
			formats: []string{"json"},
			want:    map[string]string{"json": "flow.layout.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths(%q, %q, %v) = %v, want %v", tt.input, tt.output, tt.formats, got, tt.want)
			}
		})
	}
}
