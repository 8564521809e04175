package gateway

import (
	"github.com/openclaw/clawadm/pkg/logger"
)

// Getter resolves a credential key to its value, "" meaning unset.
type Getter interface {
	Get(key string) string
}

// Credentials is the flat set of secrets and identifiers a setup run works
// from. An empty field means the corresponding feature stays disabled.
type Credentials struct {
	ArkAPIKey     string
	ArkModelID    string
	ArkCodingPlan bool

	FeishuAppID     string
	FeishuAppSecret string

	TelegramBotToken string

	DingTalkClientID     string
	DingTalkClientSecret string

	WeComToken          string
	WeComEncodingAESKey string
}

// ResolveCredentials pulls every recognized key through src.
func ResolveCredentials(src Getter) Credentials {
	return Credentials{
		ArkAPIKey:            src.Get("ARK_API_KEY"),
		ArkModelID:           src.Get("ARK_MODEL_ID"),
		ArkCodingPlan:        src.Get("ARK_CODING_PLAN") == "true",
		FeishuAppID:          src.Get("FEISHU_APP_ID"),
		FeishuAppSecret:      src.Get("FEISHU_APP_SECRET"),
		TelegramBotToken:     src.Get("TELEGRAM_BOT_TOKEN"),
		DingTalkClientID:     src.Get("DINGTALK_CLIENT_ID"),
		DingTalkClientSecret: src.Get("DINGTALK_CLIENT_SECRET"),
		WeComToken:           src.Get("WECOM_TOKEN"),
		WeComEncodingAESKey:  src.Get("WECOM_ENCODING_AES_KEY"),
	}
}

// LogSummary logs which credentials are present. Secret values are masked;
// the model id is an identifier, not a secret, and is logged in the clear.
func (c Credentials) LogSummary() {
	logger.Infof("Final config:")
	logger.Infof("  ARK_API_KEY: %s", mask(c.ArkAPIKey))
	if c.ArkModelID != "" {
		logger.Infof("  ARK_MODEL_ID: %s", c.ArkModelID)
	} else {
		logger.Infof("  ARK_MODEL_ID: (not set)")
	}
	logger.Infof("  ARK_CODING_PLAN: %t", c.ArkCodingPlan)
	logger.Infof("  FEISHU_APP_ID: %s", mask(c.FeishuAppID))
	logger.Infof("  FEISHU_APP_SECRET: %s", mask(c.FeishuAppSecret))
	logger.Infof("  TELEGRAM_BOT_TOKEN: %s", mask(c.TelegramBotToken))
	logger.Infof("  DINGTALK_CLIENT_ID: %s", mask(c.DingTalkClientID))
	logger.Infof("  DINGTALK_CLIENT_SECRET: %s", mask(c.DingTalkClientSecret))
	logger.Infof("  WECOM_TOKEN: %s", mask(c.WeComToken))
	logger.Infof("  WECOM_ENCODING_AES_KEY: %s", mask(c.WeComEncodingAESKey))
}

func mask(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "***SET***"
}
