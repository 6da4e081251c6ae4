package logging

// Level is the severity of a log record. Lower values are more severe, so a
// record is emitted when its level is at or below the logger's threshold.
type Level int

const (
	// LevelError includes failures the daemon cannot recover from on its own.
	LevelError Level = iota

	// LevelWarning includes expected but potentially harmful events, such as
	// malformed traffic from remote peers.
	LevelWarning

	// LevelInfo includes coarse-grained lifecycle events.
	LevelInfo

	// LevelDebug includes fine-grained events useful when diagnosing the
	// daemon, typically one per handled datagram.
	LevelDebug
)

// Tag returns the single-character marker written into each record.
func (l Level) Tag() byte {
	switch l {
	case LevelError:
		return 'E'
	case LevelWarning:
		return 'W'
	case LevelInfo:
		return 'I'
	default:
		return 'D'
	}
}

// String returns the canonical configuration token for the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

// ParseLevel maps a configuration token to a Level. Matching is exact and
// case-sensitive: "debug" or "d", "warning" or "w", "info" or "i". Any other
// token, including the empty string, resolves to LevelError so that a
// misconfigured daemon logs too little rather than too much.
func ParseLevel(token string) Level {
	switch token {
	case "debug", "d":
		return LevelDebug
	case "warning", "w":
		return LevelWarning
	case "info", "i":
		return LevelInfo
	default:
		return LevelError
	}
}
