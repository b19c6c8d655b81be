package models

// Cue names a sound the engine asks the audio layer to play.
type Cue int

const (
	CueStart Cue = iota
	CueCorrect
	CueLevelUp
	CueWrong
	CueTimeout
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueCorrect:
		return "correct"
	case CueLevelUp:
		return "level_up"
	case CueWrong:
		return "wrong"
	case CueTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
