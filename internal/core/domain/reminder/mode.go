package reminder

import "errors"

var ErrParseMode = errors.New("invalid mode")

type Mode struct {
	v string
}

func (m Mode) String() string {
	return m.v
}

func ParseMode(value string) (Mode, error) {
	switch value {
	case "standard":
		return ModeStandard, nil
	case "beat":
		return ModeBeat, nil
	default:
		return ModeUnknown, ErrParseMode
	}
}

var (
	ModeUnknown  = Mode{}
	ModeStandard = Mode{v: "standard"}
	ModeBeat     = Mode{v: "beat"}
)
