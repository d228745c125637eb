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
	"io"
	"io/fs"

	"dirpx.dev/apperr/reason"
)

// Default reasons attached by the constructors.
var (
	ReasonIO              = reason.MustParse("fs.io")
	ReasonIONotExist      = reason.MustParse("fs.io.not_exist")
	ReasonIOPermission    = reason.MustParse("fs.io.permission")
	ReasonIOExist         = reason.MustParse("fs.io.exist")
	ReasonIOUnexpectedEOF = reason.MustParse("fs.io.unexpected_eof")
	ReasonIONoSpace       = reason.MustParse("fs.io.no_space")
	ReasonIOReadOnly      = reason.MustParse("fs.io.read_only")
	ReasonIOTooManyFiles  = reason.MustParse("fs.io.too_many_files")

	ReasonInputNotFound = reason.MustParse("fs.input.not_found")
	ReasonOutputMkdir   = reason.MustParse("fs.output.mkdir")

	ReasonLineParse  = reason.MustParse("record.line.parse")
	ReasonFieldCount = reason.MustParse("record.line.field_count")
	ReasonAnimalType = reason.MustParse("record.field.animal_type")
	ReasonRegNum     = reason.MustParse("record.field.reg_num")

	ReasonJoinFailed    = reason.MustParse("task.join.failed")
	ReasonJoinPanic     = reason.MustParse("task.join.panic")
	ReasonJoinCancelled = reason.MustParse("task.join.cancelled")
)

// ioReason refines ReasonIO from the platform errno first, then from the
// portable io/fs sentinels.
func ioReason(err error) reason.Reason {
	if r, ok := platformIOReason(err); ok {
		return r
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonIONotExist
	case errors.Is(err, fs.ErrPermission):
		return ReasonIOPermission
	case errors.Is(err, fs.ErrExist):
		return ReasonIOExist
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ReasonIOUnexpectedEOF
	default:
		return ReasonIO
	}
}
