package config_test

import (
	"testing"
	"time"

	"github.com/Vovarama1992/voice_agent/internal/config"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STT_PROVIDER", "LLM_PROVIDER", "TTS_PROVIDER",
		"ASSEMBLYAI_API_KEY", "DEEPGRAM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"MURF_API_KEY", "ELEVENLABS_API_KEY", "S3_ENDPOINT", "S3_BUCKET",
		"PROVIDER_TIMEOUT", "MAX_UPLOAD_MB", "SESSION_STORE", "TELEGRAM_ADMIN_CHAT_ID",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.STTAssemblyAI, cfg.STTProvider)
	assert.Equal(t, config.LLMGemini, cfg.LLMProvider)
	assert.Equal(t, config.TTSMurf, cfg.TTSProvider)
	assert.Equal(t, config.StoreMemory, cfg.SessionStore)
	assert.Equal(t, "en-UK-hazel", cfg.MurfVoiceID)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "42")

	cfg := config.FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, config.LLMOpenAI, cfg.LLMProvider)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, int64(4<<20), cfg.MaxUploadBytes)
	assert.Equal(t, int64(42), cfg.Telegram.AdminChatID)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("MAX_UPLOAD_MB", "lots")

	cfg := config.FromEnv()

	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestMissingCredentials(t *testing.T) {
	t.Run("default providers need the three keys", func(t *testing.T) {
		clearEnv(t)
		cfg := config.FromEnv()
		assert.Equal(t, []string{"ASSEMBLYAI_API_KEY", "GEMINI_API_KEY", "MURF_API_KEY"}, cfg.MissingCredentials())
	})

	t.Run("all present", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ASSEMBLYAI_API_KEY", "a")
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("MURF_API_KEY", "m")
		cfg := config.FromEnv()
		assert.Empty(t, cfg.MissingCredentials())
	})

	t.Run("elevenlabs needs a bucket", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STT_PROVIDER", "whisper")
		t.Setenv("LLM_PROVIDER", "openai")
		t.Setenv("TTS_PROVIDER", "elevenlabs")
		t.Setenv("OPENAI_API_KEY", "o")
		t.Setenv("ELEVENLABS_API_KEY", "e")
		cfg := config.FromEnv()
		assert.Equal(t, []string{"S3_ENDPOINT", "S3_BUCKET"}, cfg.MissingCredentials())
	})
}
