package config

import "github.com/ayoisaiah/detox/internal/apperr"

var (
	// ErrConfig is returned when the configuration cannot be read, written
	// or validated.
	ErrConfig = &apperr.Error{
		Message: "configuration error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing config file failed",
	}

	errInvalidLimit = &apperr.Error{
		Message: "daily time limit must be between %d and %d minutes",
	}

	errIncompleteSchedule = &apperr.Error{
		Message: "schedule needs both a start and an end time",
	}

	errInvalidScheduleTime = &apperr.Error{
		Message: "invalid schedule %s time: %s",
	}

	errSameScheduleTimes = &apperr.Error{
		Message: "schedule start and end times must differ",
	}

	errUnknownMusicType = &apperr.Error{
		Message: "unknown focus music type: %s (must be noisli, local, or off)",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid music file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errMissingMusicPath = &apperr.Error{
		Message: "focus music type is local but local_path is empty",
	}

	errInvalidInterval = &apperr.Error{
		Message: "check interval must be between %v and %v",
	}

	errInvalidRedirectIP = &apperr.Error{
		Message: "redirect ip is not a valid IP address: %s",
	}
)
