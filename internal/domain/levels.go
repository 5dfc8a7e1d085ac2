package domain

// Level is one of the six seniority bands used across finance front office,
// ordered junior to senior.
type Level string

const (
	LevelAnalyst   Level = "Analyst"
	LevelAssociate Level = "Associate"
	LevelVP        Level = "VP"
	LevelDirector  Level = "Director"
	LevelED        Level = "Executive Director"
	LevelMD        Level = "Managing Director"
	LevelUnknown   Level = "Unknown"
)

// Levels is the fixed ordered set, junior first. Quota weights and the final
// sort priority both follow this order.
var Levels = []Level{
	LevelAnalyst,
	LevelAssociate,
	LevelVP,
	LevelDirector,
	LevelED,
	LevelMD,
}

// LevelWeights drives quota apportionment: campaigns skew heavily junior.
var LevelWeights = map[Level]int{
	LevelAnalyst:   6,
	LevelAssociate: 3,
	LevelVP:        2,
	LevelDirector:  1,
	LevelED:        1,
	LevelMD:        1,
}

// PriorityIndex returns the level's position in the fixed order. Unknown sorts
// after every real level.
func PriorityIndex(l Level) int {
	for i, known := range Levels {
		if known == l {
			return i
		}
	}
	return len(Levels)
}

// ParseLevel maps a user-supplied label to a Level, tolerating the common
// short forms. Unrecognized input maps to LevelUnknown.
func ParseLevel(s string) Level {
	switch normKey(s) {
	case "analyst":
		return LevelAnalyst
	case "associate":
		return LevelAssociate
	case "vp", "vice president":
		return LevelVP
	case "director":
		return LevelDirector
	case "ed", "executive director":
		return LevelED
	case "md", "managing director":
		return LevelMD
	}
	return LevelUnknown
}
