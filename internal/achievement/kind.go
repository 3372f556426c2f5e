package achievement

import "fmt"

// Kind groups achievements. The set is closed.
type Kind int

const (
	Streak Kind = iota
	Milestone
	Time
	Goal
	Subject
	Focus
)

var kindKeys = [...]string{
	Streak:    "streak",
	Milestone: "milestone",
	Time:      "time",
	Goal:      "goal",
	Subject:   "subject",
	Focus:     "focus",
}

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{Streak, Milestone, Time, Goal, Subject, Focus}
}

// Key is the stored form of the kind.
func (k Kind) Key() string {
	if k < 0 || int(k) >= len(kindKeys) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindKeys[k]
}

func (k Kind) String() string { return k.Key() }

// ParseKind maps a stored key back to its Kind.
func ParseKind(key string) (Kind, error) {
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown achievement kind %q", key)
}

// Icon returns the glyph shown next to achievements of this kind.
func (k Kind) Icon() string {
	switch k {
	case Streak:
		return "🔥"
	case Milestone:
		return "★"
	case Time:
		return "⏱"
	case Goal:
		return "◎"
	case Subject:
		return "📚"
	case Focus:
		return "⚡"
	default:
		return "🏆"
	}
}
