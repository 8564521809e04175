package gateway

import (
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawadm/pkg/logger"
)

var logHook = new(logrustest.Hook)

func init() {
	logger.SetOutput(io.Discard)
	logger.AddHook(logHook)
}

func warningCount() int {
	n := 0
	for _, e := range logHook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestProvisionAuthTokenIsFreshEveryRun(t *testing.T) {
	d := Document{}

	first := d.ProvisionAuthToken()
	assert.Regexp(t, hexToken, first)
	assert.Equal(t, first, d.ensure("gateway", "auth")["token"])

	// Regeneration on every run is intended: a second provisioning pass
	// must invalidate sessions issued against the first token.
	second := d.ProvisionAuthToken()
	assert.Regexp(t, hexToken, second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, d.ensure("gateway", "auth")["token"])
}

func TestFreshRunWithoutCredentials(t *testing.T) {
	d := Document{}

	d.ProvisionAuthToken()
	applied := d.ApplyArkProvider(Credentials{}, "BytePlus", "i-123")
	d.ApplyChannels(Credentials{})
	d.StampMeta(time.Date(2026, 2, 3, 12, 30, 45, 987654321, time.UTC))

	assert.False(t, applied)
	assert.Len(t, d, 2, "only gateway and meta sections expected, got %v", d)
	assert.Regexp(t, hexToken, d.ensure("gateway", "auth")["token"])
	assert.Equal(t, "2026-02-03T12:30:45.000Z", d.ensure("meta")["lastTouchedAt"])
}

func TestStampMetaUsesUTC(t *testing.T) {
	d := Document{}
	loc := time.FixedZone("UTC+8", 8*3600)
	d.StampMeta(time.Date(2026, 2, 3, 20, 0, 0, 0, loc))
	assert.Equal(t, "2026-02-03T12:00:00.000Z", d.ensure("meta")["lastTouchedAt"])
}

func TestArkBaseURLTable(t *testing.T) {
	cases := []struct {
		site       string
		codingPlan bool
		want       string
	}{
		{"BytePlus", false, "https://ark.ap-southeast.bytepluses.com/api/v3"},
		{"BytePlus", true, "https://ark.ap-southeast.bytepluses.com/api/coding/v3"},
		{"cn-beijing", false, "https://ark.cn-beijing.volces.com/api/v3"},
		{"cn-beijing", true, "https://ark.cn-beijing.volces.com/api/coding/v3"},
		{"unknown", false, "https://ark.cn-beijing.volces.com/api/v3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ArkBaseURL(tc.site, tc.codingPlan), "site=%s codingPlan=%t", tc.site, tc.codingPlan)
	}
}

func TestApplyArkProviderRequiresKeyAndModel(t *testing.T) {
	d := Document{}
	assert.False(t, d.ApplyArkProvider(Credentials{ArkAPIKey: "k1"}, "BytePlus", "i-1"))
	assert.False(t, d.ApplyArkProvider(Credentials{ArkModelID: "m1"}, "BytePlus", "i-1"))
	assert.NotContains(t, d, "models")
	assert.NotContains(t, d, "agents")
}

func TestApplyArkProvider(t *testing.T) {
	d := Document{
		"models": map[string]any{
			"providers": map[string]any{
				"existing": map[string]any{"baseUrl": "https://other.example.com"},
			},
		},
	}

	ok := d.ApplyArkProvider(Credentials{ArkAPIKey: "k1", ArkModelID: "m1"}, "BytePlus", "i-abc")
	require.True(t, ok)

	providers := d.ensure("models", "providers")
	assert.Contains(t, providers, "existing", "merge mode must keep other providers")

	ark, ok := providers["ark"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://ark.ap-southeast.bytepluses.com/api/v3", ark["baseUrl"])
	assert.Equal(t, "k1", ark["apiKey"])
	assert.Equal(t, "openai-completions", ark["api"])
	assert.Equal(t, "merge", d.ensure("models")["mode"])

	models, ok := ark["models"].([]any)
	require.True(t, ok)
	require.Len(t, models, 1)
	model, ok := models[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "m1", model["id"])
	assert.Equal(t, "m1", model["name"])
	assert.Equal(t, false, model["reasoning"])
	assert.Equal(t, []any{"text"}, model["input"])
	assert.Equal(t, float64(200000), model["contextWindow"])
	assert.Equal(t, float64(8192), model["maxTokens"])

	headers, ok := model["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ecs-openclaw/0203.1/i-abc", headers["X-Client-Request-Id"])

	compat, ok := model["compat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, compat["supportsDeveloperRole"])

	cost, ok := model["cost"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"input", "output", "cacheRead", "cacheWrite"} {
		assert.Equal(t, float64(0), cost[field])
	}

	defaults := d.ensure("agents", "defaults")
	assert.Equal(t, map[string]any{"primary": "ark/m1"}, defaults["model"])
	assert.Equal(t, map[string]any{"ark/m1": map[string]any{}}, defaults["models"])
}

func TestApplyArkProviderReplacesStaleAgentOverrides(t *testing.T) {
	d := Document{
		"agents": map[string]any{
			"defaults": map[string]any{
				"model":  map[string]any{"primary": "old/model"},
				"models": map[string]any{"old/model": map[string]any{"temperature": 0.2}},
			},
		},
	}

	require.True(t, d.ApplyArkProvider(Credentials{ArkAPIKey: "k", ArkModelID: "new"}, "x", "i-1"))

	defaults := d.ensure("agents", "defaults")
	assert.Equal(t, map[string]any{"primary": "ark/new"}, defaults["model"])
	assert.Equal(t, map[string]any{"ark/new": map[string]any{}}, defaults["models"])
}

func TestApplyFeishuFieldsAreIndependent(t *testing.T) {
	d := Document{}
	d.ApplyChannels(Credentials{FeishuAppID: "cli_123"})
	assert.Equal(t, "cli_123", d.ensure("channels", "feishu")["appId"])
	assert.NotContains(t, d.ensure("channels", "feishu"), "appSecret")

	d2 := Document{}
	d2.ApplyChannels(Credentials{FeishuAppSecret: "sec"})
	assert.Equal(t, "sec", d2.ensure("channels", "feishu")["appSecret"])
	assert.NotContains(t, d2.ensure("channels", "feishu"), "appId")
}

func TestApplyTelegram(t *testing.T) {
	d := Document{}
	d.ApplyChannels(Credentials{TelegramBotToken: "123:abc"})

	telegram, ok := d.ensure("channels")["telegram"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"enabled":     true,
		"dmPolicy":    "pairing",
		"botToken":    "123:abc",
		"groupPolicy": "allowlist",
		"streamMode":  "partial",
	}, telegram)

	assert.Equal(t, map[string]any{"enabled": true}, d.ensure("plugins", "entries")["telegram"])
}

func TestApplyDingTalkRequiresBothCredentials(t *testing.T) {
	d := Document{}
	d.ApplyChannels(Credentials{DingTalkClientID: "id-only"})
	assert.NotContains(t, d, "channels")
	assert.NotContains(t, d, "gateway")
}

func TestApplyDingTalkEmbedsGatewayToken(t *testing.T) {
	d := Document{}
	token := d.ProvisionAuthToken()
	d.ApplyChannels(Credentials{DingTalkClientID: "id", DingTalkClientSecret: "secret"})

	dingtalk, ok := d.ensure("channels")["dingtalk-connector"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, dingtalk["enabled"])
	assert.Equal(t, "id", dingtalk["clientId"])
	assert.Equal(t, "secret", dingtalk["clientSecret"])
	assert.Equal(t, token, dingtalk["gatewayToken"])
	assert.Equal(t, float64(1800000), dingtalk["sessionTimeout"])

	assert.Equal(t, true, d.ensure("gateway", "http", "endpoints", "chatCompletions")["enabled"])
}

func TestApplyWeCom(t *testing.T) {
	logHook.Reset()

	key43 := strings.Repeat("a", 43)
	d := Document{}
	d.ApplyChannels(Credentials{WeComToken: "tok", WeComEncodingAESKey: key43})

	assert.Zero(t, warningCount(), "43-char AES key must not warn")

	wecom, ok := d.ensure("channels")["wecom"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"enabled":        true,
		"webhookPath":    "/wecom",
		"token":          "tok",
		"encodingAESKey": key43,
	}, wecom)

	// Security-relevant side effects of enabling WeCom.
	assert.Equal(t, "lan", d.ensure("gateway")["bind"])
	assert.Equal(t, true, d.ensure("gateway", "controlUi")["enabled"])
	assert.Equal(t, true, d.ensure("gateway", "controlUi")["allowInsecureAuth"])
	assert.Equal(t, true, d.ensure("gateway", "http", "endpoints", "chatCompletions")["enabled"])
}

func TestApplyWeComShortAESKeyWarnsButConfigures(t *testing.T) {
	logHook.Reset()

	d := Document{}
	d.ApplyChannels(Credentials{WeComToken: "tok", WeComEncodingAESKey: strings.Repeat("a", 40)})

	assert.Equal(t, 1, warningCount())
	wecom, ok := d.ensure("channels")["wecom"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, wecom["enabled"], "short key still configures the channel")
}

func TestResolveCredentials(t *testing.T) {
	src := mapGetter{
		"ARK_API_KEY":     "k",
		"ARK_MODEL_ID":    "m",
		"ARK_CODING_PLAN": "true",
		"WECOM_TOKEN":     "w",
	}
	creds := ResolveCredentials(src)

	assert.Equal(t, "k", creds.ArkAPIKey)
	assert.Equal(t, "m", creds.ArkModelID)
	assert.True(t, creds.ArkCodingPlan)
	assert.Equal(t, "w", creds.WeComToken)
	assert.Empty(t, creds.TelegramBotToken)

	creds = ResolveCredentials(mapGetter{"ARK_CODING_PLAN": "TRUE"})
	assert.False(t, creds.ArkCodingPlan, "coding plan flag is an exact-match on \"true\"")
}

type mapGetter map[string]string

func (m mapGetter) Get(key string) string { return m[key] }
