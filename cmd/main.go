package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_agent/internal/ai"
	"github.com/Vovarama1992/voice_agent/internal/config"
	"github.com/Vovarama1992/voice_agent/internal/delivery"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	"github.com/Vovarama1992/voice_agent/internal/error_notificator"
	"github.com/Vovarama1992/voice_agent/internal/infra"
	"github.com/Vovarama1992/voice_agent/internal/ports"
	"github.com/Vovarama1992/voice_agent/internal/session"
	"github.com/Vovarama1992/voice_agent/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	info := func(msg string) {
		zl.Log(logger.LogEntry{Level: "info", Message: msg, Service: domain.ServiceName})
	}
	fail := func(msg string, err error) {
		zl.Log(logger.LogEntry{Level: "error", Message: msg, Service: domain.ServiceName, Error: err})
	}

	info("[init] loading API keys...")
	for _, name := range cfg.MissingCredentials() {
		fail("[init] missing "+name, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var notifyInfra error_notificator.Notificator = error_notificator.NewLogInfra(zl)
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			fail("[init] telegram notifier disabled", err)
		} else {
			notifyInfra = error_notificator.NewTelegramInfra(bot, cfg.Telegram.AdminChatID)
		}
	}
	errService := error_notificator.NewService(notifyInfra)

	// =========================================================================
	// CLIENTS (STT / LLM / TTS)
	// =========================================================================

	var sttClient speech.STTClient
	switch cfg.STTProvider {
	case config.STTDeepgram:
		sttClient = speech.NewDeepgramClient(cfg.DeepgramKey, cfg.Language, cfg.ProviderTimeout)
	case config.STTWhisper:
		sttClient = speech.NewWhisperClient(cfg.OpenAIKey)
	case config.STTGoogle:
		google := speech.NewGoogleSTT(cfg.Language)
		defer google.Close()
		sttClient = google
	default:
		cfg.STTProvider = config.STTAssemblyAI
		sttClient = speech.NewAssemblyAIClient(cfg.AssemblyAIKey, cfg.ProviderTimeout)
	}

	var llmClient ai.LLMClient
	switch cfg.LLMProvider {
	case config.LLMOpenAI:
		llmClient = ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	default:
		cfg.LLMProvider = config.LLMGemini
		llmClient = ai.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel)
	}

	var ttsClient speech.TTSClient
	switch cfg.TTSProvider {
	case config.TTSElevenLabs:
		var storage ports.AudioStorage
		s3Client, err := infra.NewS3Client(ctx, cfg.S3)
		if err != nil {
			fail("[init] s3 unavailable, elevenlabs audio will not be stored", err)
		} else {
			storage = domain.NewS3Service(s3Client)
		}
		ttsClient = speech.NewElevenLabsClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID, storage, cfg.ProviderTimeout)
	default:
		cfg.TTSProvider = config.TTSMurf
		ttsClient = speech.NewMurfTTS(cfg.MurfKey, cfg.MurfVoiceID, cfg.ProviderTimeout)
	}

	// =========================================================================
	// SESSION STORE
	// =========================================================================

	var store domain.TranscriptStore = session.NewMemoryStore()
	if cfg.SessionStore == config.StoreRedis {
		rdb, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			fail("[init] redis unavailable, falling back to in-memory sessions", err)
			cfg.SessionStore = config.StoreMemory
		} else {
			defer rdb.Close()
			store = session.NewRedisStore(rdb)
		}
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechService := speech.NewService(sttClient, cfg.STTProvider, ttsClient, zl)
	aiService := ai.NewAiService(llmClient, cfg.LLMProvider, cfg.ProviderTimeout, zl)

	pipeline := domain.NewPipeline(
		speechService, // STT
		aiService,     // LLM
		speechService, // TTS
		store,
		session.NewLocker(),
		errService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(delivery.RequestLogger(baseLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{delivery.RequestIDHeader},
	}))

	voiceHandler := delivery.NewVoiceHandler(pipeline, zl, cfg.MaxUploadBytes)
	delivery.RegisterRoutes(r, voiceHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	info("[start] stt=" + cfg.STTProvider + " llm=" + cfg.LLMProvider + " tts=" + cfg.TTSProvider + " store=" + cfg.SessionStore)
	info("listening at " + addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
