package records

import (
	"fmt"

	"mercator-hq/ponyini/pkg/ponyini/ast"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/sanitize"
)

// Tag is the record-type tag carried in field 0 of a row.
// Matching is exact and case-sensitive.
type Tag string

const (
	TagName          Tag = "Name"
	TagBehavior      Tag = "Behavior"
	TagEffect        Tag = "Effect"
	TagSpeak         Tag = "Speak"
	TagBehaviorGroup Tag = "behaviorgroup"
	TagCategories    Tag = "Categories"
)

// Tags lists every known tag in the order a pony.ini usually declares them.
var Tags = []Tag{TagName, TagCategories, TagBehaviorGroup, TagBehavior, TagEffect, TagSpeak}

// TagNames returns Tags as strings.
func TagNames() []string {
	names := make([]string, len(Tags))
	for i, t := range Tags {
		names[i] = string(t)
	}
	return names
}

// MaxBehaviorGroupID bounds behavior group ids. Larger ids are dropped with a
// warning since the group table serializes as a dense array.
const MaxBehaviorGroupID = 1 << 16

// Record is one interpreted row. The set of implementations is closed:
// NameRecord, BehaviorRecord, EffectRecord, SpeechRecord, BehaviorGroupRecord
// and CategoriesRecord.
type Record interface {
	Tag() Tag
	record()
}

// NameRecord declares the pony's name.
type NameRecord struct {
	Name string
}

// BehaviorGroupRecord names a behavior group.
type BehaviorGroupRecord struct {
	ID   int
	Name string
}

// CategoriesRecord lists categories for the pony.
type CategoriesRecord struct {
	Categories []string
}

func (*NameRecord) Tag() Tag          { return TagName }
func (*BehaviorRecord) Tag() Tag      { return TagBehavior }
func (*EffectRecord) Tag() Tag        { return TagEffect }
func (*SpeechRecord) Tag() Tag        { return TagSpeak }
func (*BehaviorGroupRecord) Tag() Tag { return TagBehaviorGroup }
func (*CategoriesRecord) Tag() Tag    { return TagCategories }

func (*NameRecord) record()          {}
func (*BehaviorRecord) record()      {}
func (*EffectRecord) record()        {}
func (*SpeechRecord) record()        {}
func (*BehaviorGroupRecord) record() {}
func (*CategoriesRecord) record()    {}

// DecodeOptions controls how a single row is interpreted.
type DecodeOptions struct {
	// LegacyAutoSelectImages forces auto_select_images to true after the
	// value has been validated.
	LegacyAutoSelectImages bool

	// Pony is the active pony name, used as the prefix of warnings.
	Pony string
}

// FieldError is a coercion failure on one field of a row.
// It unwraps to the typed coercion error.
type FieldError struct {
	Tag   Tag
	Key   string // value of field 1, if any
	Field string // field name, e.g. "skip"
	Index int
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q: field %d (%s): %v", e.Tag, e.Key, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: field %d (%s): %v", e.Tag, e.Index, e.Field, e.Err)
}

// Unwrap returns the typed coercion error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decode interprets one row.
//
// A nil Record with a nil error means the row contributes nothing (unknown
// tag, bad group id); the returned warnings say why. A non-nil error is a
// coercion failure (a *FieldError wrapping InvalidBooleanError or
// InvalidPointError) and the row must be skipped.
func Decode(row ast.Row, opts DecodeOptions) (Record, []*ponyerrors.Error, error) {
	d := &decoder{row: row, opts: opts}
	rec, err := d.decode()
	if err != nil {
		return nil, d.warnings, err
	}
	return rec, d.warnings, nil
}

type decoder struct {
	row      ast.Row
	opts     DecodeOptions
	tag      Tag
	warnings []*ponyerrors.Error
}

func (d *decoder) decode() (Record, error) {
	d.tag = Tag(d.row.Tag())
	switch d.tag {
	case TagName:
		return &NameRecord{Name: sanitize.Name(d.text(1, "name"))}, nil
	case TagBehavior:
		return d.behavior()
	case TagEffect:
		return d.effect()
	case TagSpeak:
		return d.speech()
	case TagBehaviorGroup:
		return d.behaviorGroup(), nil
	case TagCategories:
		return d.categories(), nil
	default:
		d.unknown()
		return nil, nil
	}
}

func (d *decoder) behavior() (*BehaviorRecord, error) {
	b := &BehaviorRecord{
		Name:        d.text(1, "name"),
		Probability: ParseFloatPrefix(d.text(2, "probability")),
		MaxDuration: ParseFloatPrefix(d.text(3, "maxduration")),
		MinDuration: ParseFloatPrefix(d.text(4, "minduration")),
		Speed:       ParseFloatPrefix(d.text(5, "speed")),
		RightImage:  d.text(6, "rightimage"),
		LeftImage:   d.text(7, "leftimage"),
		Movement:    d.text(8, "movement"),
		Effects:     make([]string, 0),
		Linked:      d.text(9, "linked"),
		SpeakStart:  d.text(10, "speakstart"),
		SpeakEnd:    d.text(11, "speakend"),
		X:           d.text(13, "x"),
		Y:           d.text(14, "y"),
		Follow:      d.text(15, "follow"),
		Stopped:     d.text(17, "stopped"),
		Moving:      d.text(18, "moving"),
	}

	var err error
	if b.Skip, err = d.boolean(12, "skip"); err != nil {
		return nil, err
	}
	if b.AutoSelectImages, err = d.boolean(16, "auto_select_images"); err != nil {
		return nil, err
	}
	if d.opts.LegacyAutoSelectImages {
		b.AutoSelectImages = true
	}
	if b.RightCenter, err = d.point(19, "rightcenter"); err != nil {
		return nil, err
	}
	if b.LeftCenter, err = d.point(20, "leftcenter"); err != nil {
		return nil, err
	}
	if b.DontRepeatAnimation, err = d.boolean(21, "dont_repeat_animation"); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *decoder) effect() (*EffectRecord, error) {
	e := &EffectRecord{
		Name:        d.text(1, "name"),
		Behavior:    d.text(2, "behavior"),
		RightImage:  EncodeURIComponent(d.text(3, "rightimage")),
		LeftImage:   EncodeURIComponent(d.text(4, "leftimage")),
		Duration:    ParseNumber(d.text(5, "duration")),
		Delay:       ParseNumber(d.text(6, "delay")),
		RightLoc:    parser.TrimSpace(d.text(7, "rightloc")),
		RightCenter: parser.TrimSpace(d.text(8, "rightcenter")),
		LeftLoc:     parser.TrimSpace(d.text(9, "leftloc")),
		LeftCenter:  parser.TrimSpace(d.text(10, "leftcenter")),
	}

	var err error
	if e.Follow, err = d.boolean(11, "follow"); err != nil {
		return nil, err
	}
	// Only this flag may be left out.
	if raw := d.text(12, "dont_repeat_animation"); raw != "" {
		if e.DontRepeatAnimation, err = ParseStrictBoolean(raw); err != nil {
			return nil, d.fieldError(12, "dont_repeat_animation", err)
		}
	}
	return e, nil
}

func (d *decoder) speech() (*SpeechRecord, error) {
	s := &SpeechRecord{
		Name:  d.text(1, "name"),
		Text:  parser.TrimSpace(d.text(2, "text")),
		Files: make(map[string]string),
	}

	var err error
	if s.Skip, err = d.boolean(4, "skip"); err != nil {
		return nil, err
	}

	raw := d.text(5, "group")
	if id, ok := ParseIntPrefix(raw); ok {
		s.Group = &id
	} else {
		d.warn(ponyerrors.CodeBadSpeechGroup, fmt.Sprintf("speech %q: illegal group id %q, group omitted", s.Name, raw))
	}

	for _, file := range d.files() {
		mime := MIMEType(file)
		if prev, dup := s.Files[mime]; dup {
			d.warn(ponyerrors.CodeDuplicateMIME, fmt.Sprintf("speech %q: duplicate file type %s (%s replaces %s)", s.Name, mime, EncodeURIComponent(file), prev))
		}
		s.Files[mime] = EncodeURIComponent(file)
	}
	return s, nil
}

// files returns the speech file names of field 3. A scalar is a one-element
// list; an empty scalar or absent field is no files.
func (d *decoder) files() []string {
	f, ok := d.row.Field(3)
	if !ok {
		return nil
	}
	if f.IsScalar() {
		if f.Text == "" {
			return nil
		}
		return []string{f.Text}
	}
	out := make([]string, 0, len(f.Items))
	for _, item := range f.Items {
		out = append(out, item.Value())
	}
	return out
}

func (d *decoder) behaviorGroup() Record {
	raw := d.text(1, "id")
	id, ok := ParseIntPrefix(raw)
	switch {
	case !ok:
		d.warn(ponyerrors.CodeBadGroupID, fmt.Sprintf("illegal behavior group id %q", raw))
		return nil
	case id < 0 || id > MaxBehaviorGroupID:
		d.warn(ponyerrors.CodeBadGroupID, fmt.Sprintf("behavior group id %d out of range 0..%d", id, MaxBehaviorGroupID))
		return nil
	}
	return &BehaviorGroupRecord{ID: id, Name: d.text(2, "name")}
}

func (d *decoder) categories() Record {
	c := &CategoriesRecord{Categories: make([]string, 0, d.row.Len())}
	for _, f := range d.row.Fields[1:] {
		c.Categories = append(c.Categories, f.Strings()...)
	}
	return c
}

func (d *decoder) unknown() {
	w := d.warn(ponyerrors.CodeUnknownTag, fmt.Sprintf("unknown pony setting: %s", d.tag))
	w.Suggestion = ponyerrors.SuggestTag(string(d.tag), TagNames())
}

// text returns the scalar value of field i, or "" when absent. A list is read
// as its children joined by "," and reported.
func (d *decoder) text(i int, name string) string {
	f, ok := d.row.Field(i)
	if !ok {
		return ""
	}
	if f.IsList() {
		d.warn(ponyerrors.CodeListForScalar, fmt.Sprintf("%s field %d (%s) is a list, reading it as %q", d.tag, i, name, f.Value()))
	}
	return f.Value()
}

// boolean reads a strict boolean from field i. An absent field reads as ""
// and fails like any other value that is not true or false.
func (d *decoder) boolean(i int, name string) (bool, error) {
	v, err := ParseStrictBoolean(d.text(i, name))
	if err != nil {
		return false, d.fieldError(i, name, err)
	}
	return v, nil
}

// point reads a point from "x,y" or a two-element list. An absent field
// is not a point.
func (d *decoder) point(i int, name string) (Point, error) {
	f, ok := d.row.Field(i)
	if !ok {
		return Point{}, d.fieldError(i, name, &ponyerrors.InvalidPointError{})
	}

	var (
		p   Point
		err error
	)
	if f.IsList() {
		p, err = ParsePointParts(f.Strings())
	} else {
		p, err = ParsePoint(f.Text)
	}
	if err != nil {
		return Point{}, d.fieldError(i, name, err)
	}
	return p, nil
}

func (d *decoder) fieldError(i int, name string, err error) error {
	key := ""
	if f, ok := d.row.Field(1); ok {
		key = f.Value()
	}
	return &FieldError{Tag: d.tag, Key: key, Field: name, Index: i, Err: err}
}

func (d *decoder) warn(code ponyerrors.Code, message string) *ponyerrors.Error {
	if d.opts.Pony != "" {
		message = d.opts.Pony + ": " + message
	}
	w := &ponyerrors.Error{
		Type:     ponyerrors.ErrorTypeRecord,
		Code:     code,
		Severity: ponyerrors.SeverityWarning,
		Message:  message,
		Location: d.row.Location,
	}
	d.warnings = append(d.warnings, w)
	return w
}
