package player

import "github.com/ayoisaiah/detox/internal/apperr"

var (
	// ErrFileNotFound is returned when the local music file does not exist.
	ErrFileNotFound = &apperr.Error{
		Message: "focus music file not found: %s",
	}

	// ErrPlaybackUnavailable is returned when audio cannot be played on this
	// system or the file cannot be decoded.
	ErrPlaybackUnavailable = &apperr.Error{
		Message: "playback unavailable",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "music file must be in mp3, ogg, flac, or wav format: %s",
	}
)
