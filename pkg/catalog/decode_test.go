package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wronai/repodash/pkg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
		wantShape Shape
		wantErr   bool
	}{
		{
			name:      "bare array",
			body:      `[{"name":"gollm","url":"https://github.com/wronai/gollm"},{"name":"spyq"}]`,
			wantNames: []string{"gollm", "spyq"},
			wantShape: ShapeArray,
		},
		{
			name:      "object with repositories",
			body:      `{"repositories":[{"name":"b"},{"name":"a"}]}`,
			wantNames: []string{"b", "a"},
			wantShape: ShapeObject,
		},
		{
			name:      "explicitly empty repositories",
			body:      `{"repositories":[]}`,
			wantNames: []string{},
			wantShape: ShapeObject,
		},
		{
			name:      "object without repositories",
			body:      `{"generatedAt":"2025-01-01"}`,
			wantNames: []string{},
			wantShape: ShapeObjectWithoutField,
		},
		{
			name:      "null entries are skipped",
			body:      `[null,{"name":"x"},null]`,
			wantNames: []string{"x"},
			wantShape: ShapeArray,
		},
		{
			name:      "surrounding whitespace",
			body:      "\n  [ ]\n",
			wantNames: []string{},
			wantShape: ShapeArray,
		},
		{name: "repositories is an object", body: `{"repositories":{"a":1}}`, wantErr: true},
		{name: "repositories is null", body: `{"repositories":null}`, wantErr: true},
		{name: "repositories is a string", body: `{"repositories":"none"}`, wantErr: true},
		{name: "invalid json", body: `{"repositories":[`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "null body", body: `null`, wantErr: true},
		{name: "number body", body: `42`, wantErr: true},
		{name: "records of wrong type", body: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, shape, err := Decode([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeFormatInvalid) {
					t.Fatalf("Decode() error = %v, want FORMAT_INVALID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if c == nil {
				t.Fatal("Decode() returned a nil catalog on success")
			}
			if shape != tt.wantShape {
				t.Errorf("shape = %v, want %v", shape, tt.wantShape)
			}
			if diff := cmp.Diff(tt.wantNames, c.Names()); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeAllFields(t *testing.T) {
	body := `[{
		"name": "gollm",
		"description": "Go LLM helper",
		"language": "Python",
		"updatedAt": "2025-05-01T10:00:00Z",
		"url": "https://github.com/wronai/gollm",
		"website": "https://wronai.github.io/gollm/",
		"pypi": "gollm",
		"installCommand": "pip install gollm",
		"isArchived": true,
		"isFork": false,
		"cloneCommand": "git clone https://github.com/wronai/gollm.git"
	}]`

	c, _, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := Catalog{{
		Name:           "gollm",
		Description:    "Go LLM helper",
		Language:       "Python",
		UpdatedAt:      "2025-05-01T10:00:00Z",
		URL:            "https://github.com/wronai/gollm",
		Website:        "https://wronai.github.io/gollm/",
		PyPI:           "gollm",
		InstallCommand: "pip install gollm",
		IsArchived:     true,
	}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}
