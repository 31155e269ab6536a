package speech

import "context"

// STTClient - голос → текст. Работает с файлом на диске.
type STTClient interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// TTSClient - текст → ссылка на готовый аудиофайл.
type TTSClient interface {
	Synthesize(ctx context.Context, text string) (audioURL string, err error)
}
