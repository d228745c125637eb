//go:build unix

/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apperr

import (
	"errors"

	"golang.org/x/sys/unix"

	"dirpx.dev/apperr/reason"
)

func platformIOReason(err error) (reason.Reason, bool) {
	switch {
	case errors.Is(err, unix.ENOSPC), errors.Is(err, unix.EDQUOT):
		return ReasonIONoSpace, true
	case errors.Is(err, unix.EROFS):
		return ReasonIOReadOnly, true
	case errors.Is(err, unix.EMFILE), errors.Is(err, unix.ENFILE):
		return ReasonIOTooManyFiles, true
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return ReasonIOPermission, true
	default:
		return reason.Empty, false
	}
}
