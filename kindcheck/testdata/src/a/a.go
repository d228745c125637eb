package a

import "dirpx.dev/apperr/kind"

type failure struct{ k kind.Kind }

func (f failure) Kind() kind.Kind { return f.k }

func exhaustive(k kind.Kind) string {
	switch k {
	case kind.IO, kind.InputFileNotFound, kind.OutputDirectoryCreate:
		return "environment"
	case kind.LineParse, kind.InvalidAnimalType, kind.InvalidRegNum, kind.MalformedLine:
		return "input"
	case kind.TaskJoin:
		return "concurrency"
	}
	return ""
}

func withDefault(k kind.Kind) bool {
	switch k {
	case kind.IO:
		return true
	default:
		return false
	}
}

func partial(k kind.Kind) int {
	switch k { // want `switch on kind.Kind is missing cases: MalformedLine, TaskJoin`
	case kind.IO, kind.InputFileNotFound, kind.OutputDirectoryCreate:
		return 74
	case kind.LineParse, kind.InvalidAnimalType, kind.InvalidRegNum:
		return 65
	}
	return 1
}

func literals(f failure) int {
	switch f.Kind() { // want `switch on kind.Kind is missing cases: InputFileNotFound, InvalidAnimalType, InvalidRegNum, LineParse, MalformedLine, OutputDirectoryCreate, TaskJoin`
	case "io":
		return 1
	}
	return 0
}

func category(c kind.Category) bool {
	switch c {
	case kind.CategoryInput:
		return true
	}
	return false
}

func untagged(k kind.Kind) bool {
	switch {
	case k == kind.IO:
		return true
	}
	return false
}

func onString(s string) bool {
	switch s {
	case "io":
		return true
	}
	return false
}
