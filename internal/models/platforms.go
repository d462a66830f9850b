package models

// ClientTypes enumerates the provider types the setup wizard offers.
func ClientTypes() []string {
	return []string{
		"openai",
		"claude",
		"gemini",
		"ollama",
		"openai-compatible",
	}
}

// OpenAICompatiblePlatforms lists hosted platforms that speak the OpenAI
// wire format and are configured as openai-compatible clients when named
// via the platform environment override.
var OpenAICompatiblePlatforms = []string{
	"deepseek",
	"fireworks",
	"groq",
	"mistral",
	"moonshot",
	"openrouter",
	"perplexity",
	"together",
}

// IsOpenAICompatible reports whether the platform is served through the
// openai-compatible client type.
func IsOpenAICompatible(platform string) bool {
	for _, name := range OpenAICompatiblePlatforms {
		if name == platform {
			return true
		}
	}
	return false
}
