//go:build !linux

package fileutil

import "errors"

var errNoReplaceUnsupported = errors.New("rename without replace unsupported")

func renameNoReplace(_, _ string) error {
	return errNoReplaceUnsupported
}
