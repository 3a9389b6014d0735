package blocker

import "github.com/ayoisaiah/detox/internal/apperr"

var (
	// ErrPermissionDenied means the hosts file could not be modified with
	// the current privileges.
	ErrPermissionDenied = &apperr.Error{
		Message: "permission denied: run detox as an administrator to modify %s",
	}

	// ErrIO is returned for any other failure to read or write the hosts file.
	ErrIO = &apperr.Error{
		Message: "unable to update %s",
	}
)
