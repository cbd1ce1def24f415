package records

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
)

const trot = `Behavior,Trot,0.5,3,1,2,right.png,left.png,HorizontalOnly,,,,false,0,0,,true,false,false,"1,2","3,4",false`

func parse(t *testing.T, text string) *ast.Document {
	t.Helper()
	res := parser.NewParser().ParseString(text, "pony.ini")
	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", res.Diagnostics)
	}
	return res.Document
}

func transform(t *testing.T, text string, opts ...Option) *Result {
	t.Helper()
	res, err := NewTransformer(opts...).Transform(parse(t, text))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	return res
}

func TestTransform_Behavior(t *testing.T) {
	res := transform(t, trot)

	b, ok := res.Config.Behaviors["Trot"]
	if !ok {
		t.Fatalf("behavior Trot missing, got %v", res.Config.Behaviors)
	}

	if b.Probability != 0.5 || b.MaxDuration != 3 || b.MinDuration != 1 || b.Speed != 2 {
		t.Errorf("timings = %v %v %v %v, want 0.5 3 1 2", b.Probability, b.MaxDuration, b.MinDuration, b.Speed)
	}
	if b.Movement != "HorizontalOnly" {
		t.Errorf("Movement = %q, want HorizontalOnly", b.Movement)
	}
	if b.RightImage != "right.png" || b.LeftImage != "left.png" {
		t.Errorf("images = %q %q", b.RightImage, b.LeftImage)
	}
	if b.Skip {
		t.Error("Skip = true, want false")
	}
	if !b.AutoSelectImages {
		t.Error("AutoSelectImages = false, want true")
	}
	if b.RightCenter != (Point{X: 1, Y: 2}) {
		t.Errorf("RightCenter = %v, want 1,2", b.RightCenter)
	}
	if b.LeftCenter != (Point{X: 3, Y: 4}) {
		t.Errorf("LeftCenter = %v, want 3,4", b.LeftCenter)
	}
	if b.DontRepeatAnimation {
		t.Error("DontRepeatAnimation = true, want false")
	}
	if b.Effects == nil || len(b.Effects) != 0 {
		t.Errorf("Effects = %v, want empty non-nil", b.Effects)
	}
	if res.Diagnostics.Count() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestTransform_AutoSelectImages(t *testing.T) {
	row := `Behavior,Stand,0.1,15,10,0,r.gif,l.gif,None,,,,false,0,0,,false,,,"0,0","0,0",false`

	tests := []struct {
		name   string
		legacy bool
		want   bool
	}{
		{"legacy forces true", true, true},
		{"repaired reads field", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform(t, row, WithLegacyAutoSelectImages(tt.legacy))
			if got := res.Config.Behaviors["Stand"].AutoSelectImages; got != tt.want {
				t.Errorf("AutoSelectImages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransform_AbsentFields(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		field  string
		target error
	}{
		{"behavior skip", "Behavior,Stand,0.1", "skip", ponyerrors.ErrInvalidBoolean},
		{"behavior auto_select_images", "Behavior,Stand,0.1,15,10,0,r.gif,l.gif,None,,,,false", "auto_select_images", ponyerrors.ErrInvalidBoolean},
		{"behavior leftcenter", strings.TrimSuffix(trot, `,"3,4",false`), "leftcenter", ponyerrors.ErrInvalidPoint},
		{"behavior dont_repeat_animation", strings.TrimSuffix(trot, ",false"), "dont_repeat_animation", ponyerrors.ErrInvalidBoolean},
		{"effect follow", "Effect,sparkle,Trot,a.gif,b.gif,1,1,Center,Center,Center,Center", "follow", ponyerrors.ErrInvalidBoolean},
		{"speak skip", "Speak,hello,hi", "skip", ponyerrors.ErrInvalidBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform(t, tt.row)

			if res.Skipped != 1 || len(res.Records) != 0 {
				t.Errorf("Skipped = %d, records = %d, want the row skipped", res.Skipped, len(res.Records))
			}
			failures := res.Diagnostics.Failures()
			if len(failures) != 1 {
				t.Fatalf("failures = %d, want 1", len(failures))
			}
			if !errors.Is(failures[0], tt.target) {
				t.Errorf("failure %v does not match %v", failures[0], tt.target)
			}

			var fe *FieldError
			if !errors.As(failures[0], &fe) || fe.Field != tt.field {
				t.Errorf("failure %v, want field %s", failures[0], tt.field)
			}
		})
	}
}

func TestTransform_EffectDontRepeatOptional(t *testing.T) {
	for _, row := range []string{
		"Effect,sparkle,Trot,a.gif,b.gif,1,1,Center,Center,Center,Center,false",
		"Effect,sparkle,Trot,a.gif,b.gif,1,1,Center,Center,Center,Center,false,",
	} {
		res := transform(t, row)
		e := res.Config.Effects["sparkle"]
		if e == nil || e.DontRepeatAnimation {
			t.Errorf("%s: effect = %+v, want dont_repeat_animation false", row, e)
		}
		if res.Skipped != 0 {
			t.Errorf("%s: Skipped = %d", row, res.Skipped)
		}
	}
}

func TestTransform_EmptyNumbers(t *testing.T) {
	res := transform(t, `Behavior,Stand,0.1,,,,r.gif,l.gif,None,,,,false,0,0,,true,,,"0,0","0,0",false`)

	b := res.Config.Behaviors["Stand"]
	if b == nil {
		t.Fatal("behavior Stand missing")
	}
	if !b.MaxDuration.IsNaN() || !b.Speed.IsNaN() {
		t.Errorf("empty numbers = %v %v, want NaN", b.MaxDuration, b.Speed)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"maxduration":null`) {
		t.Errorf("NaN should marshal to null: %s", data)
	}
}

func TestTransform_CoercionFailureSkipsRow(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		target error
	}{
		{
			name:   "boolean",
			row:    `Behavior,Bad,0.1,1,1,0,r.gif,l.gif,None,,,,yes`,
			target: ponyerrors.ErrInvalidBoolean,
		},
		{
			name:   "point",
			row:    strings.Replace(trot, `"1,2"`, `"1,2,3"`, 1),
			target: ponyerrors.ErrInvalidPoint,
		},
		{
			name:   "point list",
			row:    strings.Replace(trot, `"3,4"`, `{3,x}`, 1),
			target: ponyerrors.ErrInvalidPoint,
		},
		{
			name:   "effect follow",
			row:    `Effect,sparkle,Trot,a.gif,b.gif,1,1,Center,Center,Center,Center,maybe`,
			target: ponyerrors.ErrInvalidBoolean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform(t, tt.row+"\nCategories,kept")

			if res.Skipped != 1 {
				t.Errorf("Skipped = %d, want 1", res.Skipped)
			}
			if len(res.Config.Behaviors)+len(res.Config.Effects) != 0 {
				t.Error("failing row should not be recorded")
			}
			if len(res.Config.Categories) != 1 {
				t.Error("transform should continue after a failing row")
			}

			failures := res.Diagnostics.Failures()
			if len(failures) != 1 {
				t.Fatalf("failures = %d, want 1", len(failures))
			}
			if !errors.Is(failures[0], tt.target) {
				t.Errorf("failure %v does not match %v", failures[0], tt.target)
			}
			if failures[0].Type != ponyerrors.ErrorTypeCoercion {
				t.Errorf("Type = %s, want coercion", failures[0].Type)
			}
			if failures[0].Location.Line != 1 {
				t.Errorf("Location = %s, want line 1", failures[0].Location)
			}
		})
	}
}

func TestTransform_StrictCoercionAborts(t *testing.T) {
	doc := parse(t, "Categories,a\nBehavior,Bad,0.1,1,1,0,r.gif,l.gif,None,,,,yes\nCategories,b")

	res, err := NewTransformer(WithStrictCoercion(true)).Transform(doc)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ponyerrors.ErrInvalidBoolean) {
		t.Errorf("error %v does not match ErrInvalidBoolean", err)
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error %T is not a FieldError", err)
	}
	if fe.Field != "skip" || fe.Index != 12 || fe.Key != "Bad" {
		t.Errorf("FieldError = %+v", fe)
	}
	if len(res.Config.Categories) != 1 {
		t.Errorf("partial result should stop at the failing row, categories = %v", res.Config.Categories)
	}
}

func TestTransform_Effect(t *testing.T) {
	res := transform(t, `Effect,sparkle,Trot,"sparkle right.gif",sparkle_left.gif,2.5,,Center , Any,Center,Center,True`)

	e := res.Config.Effects["sparkle"]
	if e == nil {
		t.Fatal("effect sparkle missing")
	}
	if e.Behavior != "Trot" {
		t.Errorf("Behavior = %q", e.Behavior)
	}
	if e.RightImage != "sparkle%20right.gif" {
		t.Errorf("RightImage = %q, want URL-encoded", e.RightImage)
	}
	if e.Duration != 2.5 || e.Delay != 0 {
		t.Errorf("Duration, Delay = %v, %v, want 2.5, 0", e.Duration, e.Delay)
	}
	if e.RightLoc != "Center" || e.RightCenter != "Any" {
		t.Errorf("locations = %q %q", e.RightLoc, e.RightCenter)
	}
	if !e.Follow || e.DontRepeatAnimation {
		t.Errorf("Follow, DontRepeatAnimation = %v, %v", e.Follow, e.DontRepeatAnimation)
	}
}

func TestTransform_Speak(t *testing.T) {
	res := transform(t, `Speak,Bark,"hi there",{one.mp3,two.MP3,"three,four"},true,2`)

	s := res.Config.Speeches["Bark"]
	if s == nil {
		t.Fatal("speech Bark missing")
	}
	if s.Text != "hi there" || !s.Skip {
		t.Errorf("Text, Skip = %q, %v", s.Text, s.Skip)
	}
	if s.Group == nil || *s.Group != 2 {
		t.Errorf("Group = %v, want 2", s.Group)
	}

	want := map[string]string{
		`audio/mpeg;codecs="mp3"`: "two.MP3",
		UnknownMIMEType:           "three%2Cfour",
	}
	if len(s.Files) != len(want) {
		t.Fatalf("Files = %v, want %v", s.Files, want)
	}
	for mime, file := range want {
		if s.Files[mime] != file {
			t.Errorf("Files[%s] = %q, want %q", mime, s.Files[mime], file)
		}
	}

	if !res.Diagnostics.HasCode(ponyerrors.CodeDuplicateMIME) {
		t.Error("expected a duplicate file type warning")
	}
	if failures := res.Diagnostics.Failures(); len(failures) != 0 {
		t.Errorf("warnings only expected, got %v", failures)
	}
}

func TestTransform_SpeakGroupAndFiles(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		files    int
		group    bool
		wantWarn bool
	}{
		{"single file scalar", `Speak,Hi,Hello,hi.ogg,false,1`, 1, true, false},
		{"empty files", `Speak,Hi,Hello,,false,1`, 0, true, false},
		{"absent group", `Speak,Hi,Hello,hi.ogg,false`, 1, false, true},
		{"bad group", `Speak,Hi,Hello,hi.ogg,false,abc`, 1, false, true},
		{"group prefix", `Speak,Hi,Hello,hi.ogg,false,12px`, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := transform(t, tt.row)
			s := res.Config.Speeches["Hi"]
			if s == nil {
				t.Fatal("speech Hi missing")
			}
			if len(s.Files) != tt.files {
				t.Errorf("Files = %v, want %d entries", s.Files, tt.files)
			}
			if (s.Group != nil) != tt.group {
				t.Errorf("Group = %v, want present=%v", s.Group, tt.group)
			}
			if got := res.Diagnostics.HasCode(ponyerrors.CodeBadSpeechGroup); got != tt.wantWarn {
				t.Errorf("bad group warning = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestTransform_UnknownTag(t *testing.T) {
	res := transform(t, "Name,Rarity\nbehavior,Stand,0.1")

	if res.PonyName != "Rarity" {
		t.Errorf("PonyName = %q, want Rarity", res.PonyName)
	}
	warnings := res.Diagnostics.ByCode(ponyerrors.CodeUnknownTag)
	if len(warnings) != 1 {
		t.Fatalf("unknown tag warnings = %d, want 1", len(warnings))
	}
	if !strings.HasPrefix(warnings[0].Message, "Rarity: ") {
		t.Errorf("warning should name the pony: %q", warnings[0].Message)
	}
	if !strings.Contains(warnings[0].Suggestion, "Behavior") {
		t.Errorf("Suggestion = %q, want Behavior", warnings[0].Suggestion)
	}
	if warnings[0].Location.Line != 2 {
		t.Errorf("Location = %s, want line 2", warnings[0].Location)
	}
	if len(res.Config.Behaviors) != 0 {
		t.Error("unknown tag must not produce a behavior")
	}
}

func TestTransform_BehaviorGroups(t *testing.T) {
	res := transform(t, "behaviorgroup,1,Normal\nbehaviorgroup,3,Sleep\nbehaviorgroup,x,Bad\nbehaviorgroup,-1,Neg")

	groups := res.Config.BehaviorGroups
	if len(groups) != 2 || groups[1] != "Normal" || groups[3] != "Sleep" {
		t.Errorf("BehaviorGroups = %v, want 1:Normal 3:Sleep", groups)
	}
	if n := len(res.Diagnostics.ByCode(ponyerrors.CodeBadGroupID)); n != 2 {
		t.Errorf("bad group id warnings = %d, want 2", n)
	}

	data, err := json.Marshal(res.Config.BehaviorGroups)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[null,"Normal",null,"Sleep"]` {
		t.Errorf("behaviorgroups = %s", data)
	}

	var back GroupTable
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back[3] != "Sleep" || len(back) != 2 {
		t.Errorf("unmarshaled table = %v", back)
	}
}

func TestConfig_JSON(t *testing.T) {
	text := strings.Join([]string{
		"'Mini pony",
		"Name,Mini Pony",
		`Categories,"main ponies",mares,{pegasi,unicorns}`,
		"behaviorgroup,1,Normal",
		`Speak,"Soundboard #1","Hello!",{"hello.mp3","hello.ogg"},False`,
	}, "\n")

	res := transform(t, text)
	if res.PonyName != "Mini_Pony" {
		t.Errorf("PonyName = %q, want Mini_Pony", res.PonyName)
	}

	data, err := json.Marshal(res.Config)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"behavior":{},"effects":{},"speeches":{"Soundboard #1":{"name":"Soundboard #1","text":"Hello!",` +
		`"files":{"audio/mpeg;codecs=\"mp3\"":"hello.mp3","audio/ogg":"hello.ogg"},"skip":false}},` +
		`"categories":["main ponies","mares","pegasi","unicorns"],"behaviorgroups":[null,"Normal"]}`
	if string(data) != want {
		t.Errorf("json =\n%s\nwant\n%s", data, want)
	}
}

func TestResult_Counts(t *testing.T) {
	res := transform(t, trot+"\nSpeak,Hi,Hello,,false,1\nSpeak,Bye,Bye,,false,1\nName,X")

	counts := res.Counts()
	if counts[TagBehavior] != 1 || counts[TagSpeak] != 2 || counts[TagName] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
}

func TestTransform_ListForScalar(t *testing.T) {
	res := transform(t, `Behavior,Stand,0.1,15,10,0,{a.gif,b.gif},l.gif,None,,,,false,0,0,,true,,,"0,0","0,0",false`)

	if got := res.Config.Behaviors["Stand"].RightImage; got != "a.gif,b.gif" {
		t.Errorf("RightImage = %q, want joined list", got)
	}
	if !res.Diagnostics.HasCode(ponyerrors.CodeListForScalar) {
		t.Error("expected a list-for-scalar warning")
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   Number
		want string
	}{
		{0.5, "0.5"},
		{3, "3"},
		{NaN(), "null"},
		{Number(math.Inf(1)), "null"},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, data, tt.want)
		}
	}

	var n Number
	if err := json.Unmarshal([]byte("null"), &n); err != nil || !n.IsNaN() {
		t.Errorf("Unmarshal(null) = %v, %v, want NaN", n, err)
	}
}
