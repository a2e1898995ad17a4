package vos

import (
	"errors"
	"io/fs"
)

// Describe returns the conventional shell wording for a filesystem error.
func Describe(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, ErrIsDir):
		return ErrIsDir.Error()
	case errors.Is(err, ErrNotDir):
		return ErrNotDir.Error()
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
