package kind

type Kind string

const (
	MinLength = 2
	MaxLength = 32
)

const (
	IO                    Kind = "io"
	InputFileNotFound     Kind = "input_file_not_found"
	OutputDirectoryCreate Kind = "output_directory_create"
	LineParse             Kind = "line_parse"
	InvalidAnimalType     Kind = "invalid_animal_type"
	InvalidRegNum         Kind = "invalid_reg_num"
	MalformedLine         Kind = "malformed_line"
	TaskJoin              Kind = "task_join"
)

type Category string

const CategoryInput Category = "input"

var Empty Kind = ""
