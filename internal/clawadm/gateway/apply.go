package gateway

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bytedance/gg/gcond"

	"github.com/openclaw/clawadm/pkg/logger"
	"github.com/openclaw/clawadm/pkg/version"
)

const (
	arkProviderID = "ark"

	arkBytePlusURL       = "https://ark.ap-southeast.bytepluses.com/api/v3"
	arkBytePlusCodingURL = "https://ark.ap-southeast.bytepluses.com/api/coding/v3"
	arkVolcesURL         = "https://ark.cn-beijing.volces.com/api/v3"
	arkVolcesCodingURL   = "https://ark.cn-beijing.volces.com/api/coding/v3"

	arkContextWindow = 200000
	arkMaxTokens     = 8192

	dingTalkSessionTimeoutMS = 1800000

	wecomWebhookPath = "/wecom"
	wecomAESKeyLen   = 43

	authTokenBytes = 32
)

// ProvisionAuthToken overwrites gateway.auth.token with a fresh random hex
// token and returns it. The token is regenerated on every run on purpose:
// re-provisioning a host invalidates all sessions issued against the old
// token.
func (d Document) ProvisionAuthToken() string {
	buf := make([]byte, authTokenBytes)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	d.ensure("gateway", "auth")["token"] = token
	logger.Infof("Generated gateway auth token: %s...", token[:8])
	return token
}

// ArkBaseURL selects the ARK endpoint for a deployment site and plan tier.
// Every site other than BytePlus resolves to the cn-beijing endpoints,
// including the "unknown" sentinel.
func ArkBaseURL(site string, codingPlan bool) string {
	if site == "BytePlus" {
		return gcond.If(codingPlan, arkBytePlusCodingURL, arkBytePlusURL)
	}
	return gcond.If(codingPlan, arkVolcesCodingURL, arkVolcesURL)
}

// ApplyArkProvider merges the ARK model provider into the document and
// points the default agent at it. Requires both an API key and a model id;
// with either missing the document is left untouched.
func (d Document) ApplyArkProvider(creds Credentials, site, instanceID string) bool {
	if creds.ArkAPIKey == "" || creds.ArkModelID == "" {
		logger.Infof("Skipping ARK config (ARK_API_KEY or ARK_MODEL_ID not set)")
		return false
	}

	logger.Infof("Configuring ARK model...")
	baseURL := ArkBaseURL(site, creds.ArkCodingPlan)
	logger.Infof("ARK_BASE_URL: %s", baseURL)

	update := ModelsUpdate{
		Mode: "merge",
		Providers: map[string]Provider{
			arkProviderID: {
				BaseURL: baseURL,
				APIKey:  creds.ArkAPIKey,
				API:     "openai-completions",
				Models: []Model{{
					ID:            creds.ArkModelID,
					Name:          creds.ArkModelID,
					Reasoning:     false,
					Input:         []string{"text"},
					Cost:          ModelCost{},
					ContextWindow: arkContextWindow,
					MaxTokens:     arkMaxTokens,
					Headers: map[string]string{
						"X-Client-Request-Id": fmt.Sprintf("ecs-openclaw/%s/%s", version.Get().GitVersion, instanceID),
					},
					Compat: ModelCompat{SupportsDeveloperRole: false},
				}},
			},
		},
	}

	models, _ := d["models"].(map[string]any)
	d["models"] = DeepMerge(models, toMap(update))

	// The default agent's model references are replaced outright, not
	// merged: stale per-model overrides must not survive a re-provision.
	modelRef := arkProviderID + "/" + creds.ArkModelID
	defaults := d.ensure("agents", "defaults")
	defaults["model"] = map[string]any{"primary": modelRef}
	defaults["models"] = map[string]any{modelRef: map[string]any{}}

	logger.Infof("ARK configured successfully")
	return true
}

// ApplyChannels evaluates every channel activation in fixed order. Each
// channel is gated only on its own credentials; one channel's absence never
// affects another.
func (d Document) ApplyChannels(creds Credentials) {
	d.applyFeishu(creds)
	d.applyTelegram(creds)
	d.applyDingTalk(creds)
	d.applyWeCom(creds)
}

// applyFeishu writes the app id and app secret independently: either one
// alone is enough to land its own field.
func (d Document) applyFeishu(creds Credentials) {
	if creds.FeishuAppID != "" {
		logger.Infof("Configuring Feishu App ID...")
		d.ensure("channels", "feishu")["appId"] = creds.FeishuAppID
		logger.Infof("Feishu App ID configured")
	} else {
		logger.Infof("Skipping Feishu App ID (not set)")
	}

	if creds.FeishuAppSecret != "" {
		logger.Infof("Configuring Feishu App Secret...")
		d.ensure("channels", "feishu")["appSecret"] = creds.FeishuAppSecret
		logger.Infof("Feishu App Secret configured")
	} else {
		logger.Infof("Skipping Feishu App Secret (not set)")
	}
}

func (d Document) applyTelegram(creds Credentials) {
	if creds.TelegramBotToken == "" {
		logger.Infof("Skipping Telegram (not set)")
		return
	}
	logger.Infof("Configuring Telegram...")
	d.ensure("channels")["telegram"] = toMap(TelegramChannel{
		Enabled:     true,
		DMPolicy:    "pairing",
		BotToken:    creds.TelegramBotToken,
		GroupPolicy: "allowlist",
		StreamMode:  "partial",
	})
	d.ensure("plugins", "entries")["telegram"] = toMap(PluginEntry{Enabled: true})
	logger.Infof("Telegram configured")
}

func (d Document) applyDingTalk(creds Credentials) {
	if creds.DingTalkClientID == "" || creds.DingTalkClientSecret == "" {
		logger.Infof("Skipping DingTalk (DINGTALK_CLIENT_ID or DINGTALK_CLIENT_SECRET not set)")
		return
	}
	logger.Infof("Configuring DingTalk...")

	gatewayToken, _ := d.ensure("gateway", "auth")["token"].(string)
	d.ensure("channels")["dingtalk-connector"] = toMap(DingTalkChannel{
		Enabled:        true,
		ClientID:       creds.DingTalkClientID,
		ClientSecret:   creds.DingTalkClientSecret,
		GatewayToken:   gatewayToken,
		SessionTimeout: dingTalkSessionTimeoutMS,
	})
	d.enableChatCompletionsEndpoint()
	logger.Infof("DingTalk configured (chatCompletions endpoint enabled)")
}

// applyWeCom enables the WeCom webhook channel. Beyond the channel block
// itself this widens the gateway's exposure: bind scope goes to "lan" and
// the control UI accepts insecure auth, because WeCom callbacks arrive from
// outside the host. See README for the security implications.
func (d Document) applyWeCom(creds Credentials) {
	if creds.WeComToken == "" || creds.WeComEncodingAESKey == "" {
		logger.Infof("Skipping WeCom (WECOM_TOKEN or WECOM_ENCODING_AES_KEY not set)")
		return
	}
	logger.Infof("Configuring WeCom...")
	if len(creds.WeComEncodingAESKey) != wecomAESKeyLen {
		logger.Warnf("EncodingAESKey should be %d characters (got %d)", wecomAESKeyLen, len(creds.WeComEncodingAESKey))
	}

	d.ensure("channels")["wecom"] = toMap(WeComChannel{
		Enabled:        true,
		WebhookPath:    wecomWebhookPath,
		Token:          creds.WeComToken,
		EncodingAESKey: creds.WeComEncodingAESKey,
	})

	logger.Infof("Enabling public access for WeCom...")
	gw := d.ensure("gateway")
	gw["bind"] = "lan"
	controlUI := d.ensure("gateway", "controlUi")
	controlUI["enabled"] = true
	controlUI["allowInsecureAuth"] = true
	d.enableChatCompletionsEndpoint()
	logger.Infof("WeCom configured (public access enabled)")
}

func (d Document) enableChatCompletionsEndpoint() {
	d.ensure("gateway", "http", "endpoints", "chatCompletions")["enabled"] = true
}

// StampMeta records when this document was last touched. Millisecond
// precision is not carried; the generation marker is fixed at .000.
func (d Document) StampMeta(now time.Time) {
	d.ensure("meta")["lastTouchedAt"] = now.UTC().Format("2006-01-02T15:04:05") + ".000Z"
}
