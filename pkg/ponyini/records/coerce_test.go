package records

import (
	"errors"
	"math"
	"testing"

	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
)

func TestParseStrictBoolean(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"True", true, false},
		{"false", false, false},
		{"  TRUE ", true, false},
		{"FaLsE", false, false},
		{"yes", false, true},
		{"1", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrictBoolean(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrictBoolean(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ponyerrors.ErrInvalidBoolean) {
					t.Errorf("error %v does not match ErrInvalidBoolean", err)
				}
				if err.Error() != "illegal boolean value: "+tt.in {
					t.Errorf("message = %q", err.Error())
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseStrictBoolean(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{"1,2", Point{1, 2}, false},
		{" -3 , 40 ", Point{-3, 40}, false},
		{"1", Point{}, true},
		{"1,2,3", Point{}, true},
		{"1.5,2", Point{}, true},
		{"a,b", Point{}, true},
		{"", Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ponyerrors.ErrInvalidPoint) {
				t.Errorf("error %v does not match ErrInvalidPoint", err)
			}
			if got != tt.want {
				t.Errorf("ParsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.5", 0.5},
		{"  3", 3},
		{"2.5s", 2.5},
		{".25", 0.25},
		{"1e3", 1000},
		{"-4", -4},
		{"Infinity", math.Inf(1)},
		{"1e999", math.Inf(1)},
		{"", math.NaN()},
		{"abc", math.NaN()},
	}

	for _, tt := range tests {
		got := float64(ParseFloatPrefix(tt.in))
		if !sameFloat(got, tt.want) {
			t.Errorf("ParseFloatPrefix(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"2.5", 2.5},
		{" 7 ", 7},
		{"0x10", 16},
		{"0b101", 5},
		{"1.", 1},
		{"2.5s", math.NaN()},
		{"abc", math.NaN()},
	}

	for _, tt := range tests {
		got := float64(ParseNumber(tt.in))
		if !sameFloat(got, tt.want) {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 12px", 12, true},
		{"-2", -2, true},
		{"1.9", 1, true},
		{"", 0, false},
		{"x1", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseIntPrefix(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseIntPrefix(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain.gif", "plain.gif"},
		{"two words.gif", "two%20words.gif"},
		{"a,b", "a%2Cb"},
		{"(it's)!~*", "(it's)!~*"},
		{"dir/file.gif", "dir%2Ffile.gif"},
		{"é", "%C3%A9"},
		{"100%", "100%25"},
	}

	for _, tt := range tests {
		if got := EncodeURIComponent(tt.in); got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bark.MP3", `audio/mpeg;codecs="mp3"`},
		{"bark", "audio/x-unknown"},
		{"bark.", "audio/x-unknown"},
		{"bark.xyz", "audio/x-xyz"},
		{"bark.ogg", "audio/ogg"},
		{"my.bark.flac", `audio/ogg;codecs="flac"`},
		{"bark.spx", `audio/ogg;codecs="speex"`},
	}

	for _, tt := range tests {
		if got := MIMEType(tt.in); got != tt.want {
			t.Errorf("MIMEType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}
