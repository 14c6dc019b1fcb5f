package errcodes

// Code идентифицирует класс ошибки на границе API.
type Code string

func (c Code) String() string {
	return string(c)
}

const (
	InternalServerError Code = "InternalServerError"
	ValidationError     Code = "ValidationError"
	NotFound            Code = "NotFound"

	// Коды каталога жилых комплексов.
	CommunityNotFound  Code = "CommunityNotFound"
	InvalidCommunityID Code = "InvalidCommunityID"
	InvalidWeights     Code = "InvalidWeights"
	UnsupportedCity    Code = "UnsupportedCity"
	FetchFailed        Code = "FetchFailed"
)
