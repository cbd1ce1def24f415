package ponyini

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/records"
)

// TestConvertFile tests the high-level API
func TestConvertFile(t *testing.T) {
	conv, err := ConvertFile("testdata/pony.ini")
	if err != nil {
		t.Fatalf("ConvertFile() failed: %v", err)
	}

	cfg := conv.Config()
	if len(cfg.Behaviors) != 1 || len(cfg.Effects) != 1 || len(cfg.Speeches) != 1 {
		t.Errorf("records = %d behaviors, %d effects, %d speeches", len(cfg.Behaviors), len(cfg.Effects), len(cfg.Speeches))
	}
	if conv.Result.PonyName != "Mini_Trot" {
		t.Errorf("PonyName = %q, want Mini_Trot", conv.Result.PonyName)
	}
	if got := strings.Join(cfg.Categories, "|"); got != "main ponies|mares|pegasi" {
		t.Errorf("Categories = %q", got)
	}
	if conv.Diagnostics.Count() != 0 {
		t.Errorf("unexpected diagnostics: %v", conv.Diagnostics)
	}

	if _, err := json.Marshal(cfg); err != nil {
		t.Errorf("Config should marshal: %v", err)
	}
}

// TestConvert_MergesDiagnostics tests that parse and transform diagnostics are combined
func TestConvert_MergesDiagnostics(t *testing.T) {
	conv, err := Convert([]byte("Name,\"Rarity\nBehaviour,Stand"), "memory://test")
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}

	if n := conv.Diagnostics.Count(); n != 2 {
		t.Fatalf("diagnostics = %d, want 2: %v", n, conv.Diagnostics)
	}
	if conv.Diagnostics.Errors[0].Type != ponyerrors.ErrorTypeSyntax {
		t.Error("parse diagnostics come first")
	}
	if conv.Diagnostics.Errors[1].Code != ponyerrors.CodeUnknownTag {
		t.Errorf("second diagnostic = %s", conv.Diagnostics.Errors[1].Code)
	}
}

func TestConvert_Strict(t *testing.T) {
	_, err := Convert([]byte("Behavior,Bad,0.1,1,1,0,r.gif,l.gif,None,,,,yes"), "memory://test",
		records.WithStrictCoercion(true))
	if !errors.Is(err, ponyerrors.ErrInvalidBoolean) {
		t.Errorf("Convert() error = %v, want ErrInvalidBoolean", err)
	}
}

func TestFormat(t *testing.T) {
	text, diags, err := Format([]byte("'c\r\nName , Rarity\r\n\r\nSpeak,Hi,hello there,{a ,b}\r\n"), "memory://test")
	if err != nil {
		t.Fatal(err)
	}
	if diags.Count() != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	want := "Name,Rarity\nSpeak,Hi,\"hello there\",{a,b}"
	if text != want {
		t.Errorf("Format() = %q, want %q", text, want)
	}
}

func TestFormat_ReportsUnrepresentableRows(t *testing.T) {
	_, diags, err := Format([]byte("Name,Pip\nSpeak,hello,He said \"hi\" there,{a.mp3},false\n"), "memory://test")
	if err != nil {
		t.Fatal(err)
	}
	if !diags.HasCode(ponyerrors.CodeNotRepresentable) {
		t.Errorf("diagnostics = %v, want a round trip warning", diags)
	}
}

func TestRepair(t *testing.T) {
	input := strings.Join([]string{
		"Name,Mini  Pony",
		"Behavior,Trot,0.5,3,1,2,\"trot  right.gif\",trot%left.gif,None",
		"Speak,\"Soundboard #1\",Hi,{\"hi  there.mp3\",\"it's.ogg\"}",
		"Speak,Other,Hi,{\"hi  there.mp3\"}",
		"Behavior,Short,0.5",
	}, "\n")

	res := parser.NewParser().ParseString(input, "pony.ini")
	repaired := Repair(res.Document)

	tests := []struct {
		row   int
		field int
		item  int
		want  string
	}{
		{0, 1, -1, "Mini_Pony"},
		{1, 6, -1, "trot_right.gif"},
		{1, 7, -1, "trot_left.gif"},
		{2, 3, 0, "hi_there.mp3"},
		{2, 3, 1, "it_s.ogg"},
		{3, 3, 0, "hi  there.mp3"},
	}

	for _, tt := range tests {
		f := repaired.Rows[tt.row].Fields[tt.field]
		if tt.item >= 0 {
			f = f.Items[tt.item]
		}
		if f.Text != tt.want {
			t.Errorf("row %d field %d item %d = %q, want %q", tt.row, tt.field, tt.item, f.Text, tt.want)
		}
	}

	if repaired.Rows[4].Len() != 3 {
		t.Error("absent fields must stay absent")
	}
	if res.Document.Rows[0].Fields[1].Text != "Mini  Pony" {
		t.Error("Repair() must not modify its input")
	}
	if !ast.FieldsEqual(repaired.Rows[2].Fields[:3], res.Document.Rows[2].Fields[:3]) {
		t.Error("Speak name and text are not sanitized")
	}
}

// BenchmarkConvert benchmarks parsing + transform
func BenchmarkConvert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ConvertFile("testdata/pony.ini"); err != nil {
			b.Fatal(err)
		}
	}
}
