package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	STTAssemblyAI = "assemblyai"
	STTDeepgram   = "deepgram"
	STTWhisper    = "whisper"
	STTGoogle     = "google"

	LLMGemini = "gemini"
	LLMOpenAI = "openai"

	TTSMurf       = "murf"
	TTSElevenLabs = "elevenlabs"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type S3 struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Insecure  bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Telegram struct {
	Token       string
	AdminChatID int64
}

type Config struct {
	Port string

	STTProvider string
	LLMProvider string
	TTSProvider string

	AssemblyAIKey string
	DeepgramKey   string
	OpenAIKey     string
	GeminiKey     string
	MurfKey       string
	ElevenLabsKey string

	GeminiModel       string
	OpenAIModel       string
	MurfVoiceID       string
	ElevenLabsVoiceID string
	Language          string

	ProviderTimeout time.Duration
	MaxUploadBytes  int64

	SessionStore string
	Redis        Redis
	S3           S3
	Telegram     Telegram
}

// Load читает .env (если есть) и переменные окружения. Отсутствие ключей не фатально -
// см. MissingCredentials.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port: env("PORT", "8080"),

		STTProvider: strings.ToLower(env("STT_PROVIDER", STTAssemblyAI)),
		LLMProvider: strings.ToLower(env("LLM_PROVIDER", LLMGemini)),
		TTSProvider: strings.ToLower(env("TTS_PROVIDER", TTSMurf)),

		AssemblyAIKey: os.Getenv("ASSEMBLYAI_API_KEY"),
		DeepgramKey:   os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		MurfKey:       os.Getenv("MURF_API_KEY"),
		ElevenLabsKey: os.Getenv("ELEVENLABS_API_KEY"),

		GeminiModel:       env("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIModel:       env("OPENAI_MODEL", "gpt-4o-mini"),
		MurfVoiceID:       env("MURF_VOICE_ID", "en-UK-hazel"),
		ElevenLabsVoiceID: env("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"), // Rachel
		Language:          env("STT_LANGUAGE", "en"),

		ProviderTimeout: envDuration("PROVIDER_TIMEOUT", 60*time.Second),
		MaxUploadBytes:  envInt64("MAX_UPLOAD_MB", 32) << 20,

		SessionStore: strings.ToLower(env("SESSION_STORE", StoreMemory)),
		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       int(envInt64("REDIS_DB", 0)),
		},
		S3: S3{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			Insecure:  envBool("S3_INSECURE"),
		},
		Telegram: Telegram{
			Token:       os.Getenv("TELEGRAM_NOTIFY_TOKEN"),
			AdminChatID: envInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
		},
	}
}

// MissingCredentials - имена переменных, без которых выбранные провайдеры будут падать на запросах.
func (c Config) MissingCredentials() []string {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch c.STTProvider {
	case STTDeepgram:
		check("DEEPGRAM_API_KEY", c.DeepgramKey)
	case STTWhisper:
		check("OPENAI_API_KEY", c.OpenAIKey)
	case STTGoogle:
		// ADC, ключа нет
	default:
		check("ASSEMBLYAI_API_KEY", c.AssemblyAIKey)
	}

	switch c.LLMProvider {
	case LLMOpenAI:
		check("OPENAI_API_KEY", c.OpenAIKey)
	default:
		check("GEMINI_API_KEY", c.GeminiKey)
	}

	switch c.TTSProvider {
	case TTSElevenLabs:
		check("ELEVENLABS_API_KEY", c.ElevenLabsKey)
		check("S3_ENDPOINT", c.S3.Endpoint)
		check("S3_BUCKET", c.S3.Bucket)
	default:
		check("MURF_API_KEY", c.MurfKey)
	}

	return missing
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}
