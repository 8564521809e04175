package gateway

// ModelsUpdate is the payload merged into the document's "models" section.
// Mode "merge" tells the gateway to fold providers into its existing model
// registry instead of replacing it.
type ModelsUpdate struct {
	Mode      string              `json:"mode"`
	Providers map[string]Provider `json:"providers"`
}

// Provider describes one model-serving backend.
type Provider struct {
	BaseURL string  `json:"baseUrl"`
	APIKey  string  `json:"apiKey"`
	API     string  `json:"api"`
	Models  []Model `json:"models"`
}

// Model declares a single model exposed by a provider.
type Model struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Reasoning     bool              `json:"reasoning"`
	Input         []string          `json:"input"`
	Cost          ModelCost         `json:"cost"`
	ContextWindow int               `json:"contextWindow"`
	MaxTokens     int               `json:"maxTokens"`
	Headers       map[string]string `json:"headers"`
	Compat        ModelCompat       `json:"compat"`
}

// ModelCost is the per-token accounting block. ECS-provisioned models are
// billed out of band, so every field stays zero.
type ModelCost struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheRead  float64 `json:"cacheRead"`
	CacheWrite float64 `json:"cacheWrite"`
}

// ModelCompat carries capability switches the gateway checks before
// shaping requests.
type ModelCompat struct {
	SupportsDeveloperRole bool `json:"supportsDeveloperRole"`
}

// TelegramChannel configures the Telegram messaging channel.
type TelegramChannel struct {
	Enabled     bool   `json:"enabled"`
	DMPolicy    string `json:"dmPolicy"`
	BotToken    string `json:"botToken"`
	GroupPolicy string `json:"groupPolicy"`
	StreamMode  string `json:"streamMode"`
}

// DingTalkChannel configures the DingTalk connector channel. The connector
// authenticates back to the gateway with the install's own auth token.
type DingTalkChannel struct {
	Enabled        bool   `json:"enabled"`
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	GatewayToken   string `json:"gatewayToken"`
	SessionTimeout int64  `json:"sessionTimeout"`
}

// WeComChannel configures the WeCom webhook channel.
type WeComChannel struct {
	Enabled        bool   `json:"enabled"`
	WebhookPath    string `json:"webhookPath"`
	Token          string `json:"token"`
	EncodingAESKey string `json:"encodingAESKey"`
}

// PluginEntry registers a channel in the gateway's plugin table.
type PluginEntry struct {
	Enabled bool `json:"enabled"`
}
