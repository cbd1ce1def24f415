package cli

import (
	"bytes"
	"errors"
	"testing"
)

type sample struct {
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Skip   bool     `json:"skip"`
	Weight float64  `json:"weight"`
	Note   string   `json:"note"`
}

var sampleData = sample{
	Name:   "Pip",
	Tags:   []string{"colts", "pegasi"},
	Weight: 0.5,
	Note:   "true",
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			var cfgErr *ConfigError
			if tt.wantErr && !errors.As(err, &cfgErr) {
				t.Errorf("error should be a ConfigError, got %T", err)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	output, err := (&TextFormatter{}).Format("test message")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(output) != "test message\n" {
		t.Errorf("Format() = %q", output)
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		indent bool
		want   string
	}{
		{"compact", false, `{"name":"Pip","tags":["colts","pegasi"],"skip":false,"weight":0.5,"note":"true"}` + "\n"},
		{"indented", true, "{\n  \"name\": \"Pip\",\n  \"tags\": [\n    \"colts\",\n    \"pegasi\"\n  ],\n  \"skip\": false,\n  \"weight\": 0.5,\n  \"note\": \"true\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := (&JSONFormatter{Indent: tt.indent}).Format(sampleData)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(output) != tt.want {
				t.Errorf("Format() = %q, want %q", output, tt.want)
			}
		})
	}
}

func TestJSONFormatter_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatTo(&buf, "a<b>&c"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\"a<b>&c\"\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	output, err := (&YAMLFormatter{}).Format(sampleData)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `name: Pip
tags:
  - colts
  - pegasi
skip: false
weight: 0.5
note: "true"
`
	if string(output) != want {
		t.Errorf("Format() =\n%s\nwant\n%s", output, want)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		check  func(Formatter) bool
	}{
		{FormatText, func(f Formatter) bool { _, ok := f.(*TextFormatter); return ok }},
		{FormatJSON, func(f Formatter) bool { j, ok := f.(*JSONFormatter); return ok && j.Indent }},
		{FormatYAML, func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
		{"unknown", func(f Formatter) bool { _, ok := f.(*TextFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if f := NewFormatter(tt.format); !tt.check(f) {
				t.Errorf("NewFormatter(%q) = %T", tt.format, f)
			}
		})
	}
}

func TestYAMLFormatter_Null(t *testing.T) {
	out, err := (&YAMLFormatter{}).Format(map[string]any{"behaviorgroups": []any{nil, "Normal"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "behaviorgroups:\n  - null\n  - Normal\n" {
		t.Errorf("Format() = %q", out)
	}
}
