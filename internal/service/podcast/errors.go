package podcast

import "fmt"

// Kind классифицирует отказ конвейера, чтобы фронтенды выбирали статус/код
// выхода программно, а не по тексту сообщения.
type Kind int

const (
	KindValidation Kind = iota // пустой ввод, до внешних вызовов дело не доходит
	KindConfig                 // отсутствует учётная запись синтеза
	KindDownload               // скачивание/извлечение аудио
	KindTranscription          // пустой или нераспознаваемый транскрипт
	KindSynthesis              // бэкенд TTS упал или не вернул аудио
	KindTranscode              // перекодирование в MP3
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfig:
		return "config"
	case KindDownload:
		return "download"
	case KindTranscription:
		return "transcription"
	case KindSynthesis:
		return "synthesis"
	case KindTranscode:
		return "transcode"
	default:
		return "unknown"
	}
}

// StageError — ошибка конкретной стадии конвейера.
type StageError struct {
	Kind Kind
	Err  error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(kind Kind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

func stageErrf(kind Kind, format string, args ...any) *StageError {
	return &StageError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
