package model

// Section identifies one of the three HKDSE paper divisions.
// Each section implies a difficulty and marking policy that is conveyed
// to the generator through the prompt, never enforced locally.
type Section string

const (
	SectionA1 Section = "a1"
	SectionA2 Section = "a2"
	SectionB  Section = "b"
)

// SectionInfo carries the display label and difficulty metadata for a section.
type SectionInfo struct {
	ID         Section
	Label      string // e.g. "甲部(一) Section A1"
	Difficulty string // basic, intermediate, advanced
	Points     string // mark range, e.g. "3–4"
}

// Sections lists the three paper divisions in exam order.
var Sections = []SectionInfo{
	{ID: SectionA1, Label: "甲部(一) Section A1", Difficulty: "basic", Points: "3–4"},
	{ID: SectionA2, Label: "甲部(二) Section A2", Difficulty: "intermediate", Points: "5–7"},
	{ID: SectionB, Label: "乙部 Section B", Difficulty: "advanced", Points: "10–12"},
}

// Topics lists the eight selectable subject categories.
var Topics = []string{
	"基礎代數與百分數",
	"幾何與坐標 (Geometry)",
	"統計學 (Statistics)",
	"多項式與變分",
	"圓的性質",
	"等差與等比數列 (AS/GS)",
	"三角學 (2D/3D)",
	"概率 (Probability)",
}

// SectionByID returns the SectionInfo for the given ID.
// Returns (SectionInfo{}, false) for an unknown ID.
func SectionByID(id Section) (SectionInfo, bool) {
	for _, s := range Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionInfo{}, false
}

// ValidTopic reports whether label is one of the selectable topics.
func ValidTopic(label string) bool {
	for _, t := range Topics {
		if t == label {
			return true
		}
	}
	return false
}

// GenerationResult is one generated practice question. All three fields
// are always populated: absent fields are backfilled with placeholder
// text by the generator, never left empty.
type GenerationResult struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
	Solution string `json:"solution"`
}

// SessionState holds everything one browser session sees: the latest
// generated question (if any), the two reveal flags, and the labels of
// the section/topic the question was generated for.
//
// Mutated only by the exam controller. The reveal flags reset to false
// whenever CurrentResult is replaced.
type SessionState struct {
	CurrentResult  *GenerationResult
	ShowHint       bool
	ShowSolution   bool
	DisplaySection string
	DisplayTopic   string
}

// HasResult reports whether a question has been generated in this session.
func (s *SessionState) HasResult() bool {
	return s.CurrentResult != nil
}
