package records

import (
	"encoding/json"
	"fmt"
	"math"
)

// Number is a decimal value that may hold the not-a-number sentinel.
// NaN and infinities marshal to JSON null.
type Number float64

// NaN returns the not-a-number sentinel.
func NaN() Number {
	return Number(math.NaN())
}

// IsNaN reports whether n is the not-a-number sentinel.
func (n Number) IsNaN() bool {
	return math.IsNaN(float64(n))
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler. null reads back as NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NaN()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Point is a 2D integer point such as an image center.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// GroupTable is a sparse table of behavior group names indexed by id.
// It marshals to a JSON array with null at every unused index.
type GroupTable map[int]string

// MarshalJSON implements json.Marshaler.
func (g GroupTable) MarshalJSON() ([]byte, error) {
	size := 0
	for id := range g {
		if id+1 > size {
			size = id + 1
		}
	}
	out := make([]*string, size)
	for id, name := range g {
		name := name
		out[id] = &name
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GroupTable) UnmarshalJSON(data []byte) error {
	var in []*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	table := make(GroupTable, len(in))
	for id, name := range in {
		if name != nil {
			table[id] = *name
		}
	}
	*g = table
	return nil
}

// Config is the structured configuration of one pony, built from one
// pony.ini Document. The JSON field names are the ones browser-side pony
// runtimes read.
type Config struct {
	Behaviors      map[string]*BehaviorRecord `json:"behavior"`
	Effects        map[string]*EffectRecord   `json:"effects"`
	Speeches       map[string]*SpeechRecord   `json:"speeches"`
	Categories     []string                   `json:"categories"`
	BehaviorGroups GroupTable                 `json:"behaviorgroups"`
}

// NewConfig returns an empty configuration with every collection allocated,
// so it marshals to {} and [] rather than null.
func NewConfig() *Config {
	return &Config{
		Behaviors:      make(map[string]*BehaviorRecord),
		Effects:        make(map[string]*EffectRecord),
		Speeches:       make(map[string]*SpeechRecord),
		Categories:     make([]string, 0),
		BehaviorGroups: make(GroupTable),
	}
}

// BehaviorRecord is one "Behavior" row.
type BehaviorRecord struct {
	Name                string   `json:"-"`
	Probability         Number   `json:"probability"`
	MaxDuration         Number   `json:"maxduration"`
	MinDuration         Number   `json:"minduration"`
	Speed               Number   `json:"speed"`
	RightImage          string   `json:"rightimage"`
	LeftImage           string   `json:"leftimage"`
	Movement            string   `json:"movement"`
	Effects             []string `json:"effects"`
	Linked              string   `json:"linked"`
	SpeakStart          string   `json:"speakstart"`
	SpeakEnd            string   `json:"speakend"`
	Skip                bool     `json:"skip"`
	X                   string   `json:"x"`
	Y                   string   `json:"y"`
	Follow              string   `json:"follow"`
	AutoSelectImages    bool     `json:"auto_select_images"`
	Stopped             string   `json:"stopped"`
	Moving              string   `json:"moving"`
	RightCenter         Point    `json:"rightcenter"`
	LeftCenter          Point    `json:"leftcenter"`
	DontRepeatAnimation bool     `json:"dont_repeat_animation"`
}

// EffectRecord is one "Effect" row.
type EffectRecord struct {
	Name                string `json:"-"`
	Behavior            string `json:"behavior"`
	RightImage          string `json:"rightimage"`
	LeftImage           string `json:"leftimage"`
	Duration            Number `json:"duration"`
	Delay               Number `json:"delay"`
	RightLoc            string `json:"rightloc"`
	RightCenter         string `json:"rightcenter"`
	LeftLoc             string `json:"leftloc"`
	LeftCenter          string `json:"leftcenter"`
	Follow              bool   `json:"follow"`
	DontRepeatAnimation bool   `json:"dont_repeat_animation"`
}

// SpeechRecord is one "Speak" row. Files maps a derived audio MIME type to the
// URL-encoded file name. Group is nil when the row has no valid group id.
type SpeechRecord struct {
	Name  string            `json:"name"`
	Text  string            `json:"text"`
	Files map[string]string `json:"files"`
	Skip  bool              `json:"skip"`
	Group *int              `json:"group,omitempty"`
}
