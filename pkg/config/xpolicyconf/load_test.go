package xpolicyconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsample/pkg/sampling/xevent"
	"github.com/omeyang/xsample/pkg/sampling/xpolicy"
)

const validYAML = `always_keep: [ERROR, FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
  WARN: 0.5
  INFO: 0.1
  DEBUG: 0.01
  TRACE: 0.0
load_factor: 0.8
rules:
  - name: health-probes
    match:
      endpoint: /health
    fraction: 0.001
`

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "sampling.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validYAML), 0600))

		policy, err := Load(path)
		require.NoError(t, err)

		assert.True(t, policy.AlwaysKeep[xevent.SeverityError])
		assert.True(t, policy.AlwaysKeep[xevent.SeverityFatal])
		assert.Equal(t, 0.5, policy.RateBySeverity[xevent.SeverityWarn])
		assert.Equal(t, 0.8, policy.LoadFactor)
		require.Len(t, policy.Rules, 1)
		assert.Equal(t, "health-probes", policy.Rules[0].Name)
		assert.Equal(t, 0.001, policy.Rules[0].Fraction)
		assert.True(t, policy.Rules[0].Match(map[string]string{"endpoint": "/health"}))
		assert.False(t, policy.Rules[0].Match(map[string]string{"endpoint": "/api"}))
	})

	t.Run("json", func(t *testing.T) {
		content := `{
  "always_keep": ["ERROR", "FATAL"],
  "rates": {"FATAL": 1, "ERROR": 1, "WARN": 1, "INFO": 0.2, "DEBUG": 0, "TRACE": 0}
}`
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "sampling.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		policy, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0.2, policy.RateBySeverity[xevent.SeverityInfo])
		// load_factor 缺省为 1.0
		assert.Equal(t, 1.0, policy.LoadFactor)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load("policy.toml")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, ErrLoadFailed)
	})
}

func TestLoadBytes(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		_, err := LoadBytes([]byte(validYAML), Format("toml"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadBytes([]byte("rates: ["), FormatYAML)
		assert.ErrorIs(t, err, ErrParseFailed)
	})

	t.Run("unknown severity name", func(t *testing.T) {
		content := `always_keep: [ERROR, FATAL, VERBOSE]
rates:
  FATAL: 1.0
`
		_, err := LoadBytes([]byte(content), FormatYAML)
		assert.ErrorIs(t, err, ErrParseFailed)
		assert.ErrorIs(t, err, xevent.ErrInvalidSeverity)
	})

	t.Run("severity names case insensitive", func(t *testing.T) {
		content := `always_keep: [error, Fatal]
rates:
  fatal: 1.0
  error: 1.0
  warning: 0.5
  info: 0.1
  debug: 0.0
  trace: 0.0
`
		policy, err := LoadBytes([]byte(content), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, 0.5, policy.RateBySeverity[xevent.SeverityWarn])
	})

	t.Run("policy invariant enforced", func(t *testing.T) {
		// 缺少 ERROR 豁免：校验在加载阶段拒绝
		content := `always_keep: [FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
  WARN: 0.5
  INFO: 0.1
  DEBUG: 0.0
  TRACE: 0.0
`
		_, err := LoadBytes([]byte(content), FormatYAML)
		assert.ErrorIs(t, err, xpolicy.ErrInvalidPolicy)
		assert.ErrorIs(t, err, xpolicy.ErrAlwaysKeepRequired)
	})

	t.Run("missing rate rejected", func(t *testing.T) {
		content := `always_keep: [ERROR, FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
`
		_, err := LoadBytes([]byte(content), FormatYAML)
		assert.ErrorIs(t, err, xpolicy.ErrMissingRate)
	})

	t.Run("rate out of range rejected", func(t *testing.T) {
		content := `always_keep: [ERROR, FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
  WARN: 1.5
  INFO: 0.1
  DEBUG: 0.0
  TRACE: 0.0
`
		_, err := LoadBytes([]byte(content), FormatYAML)
		assert.ErrorIs(t, err, xpolicy.ErrInvalidFraction)
	})

	t.Run("prefix rule", func(t *testing.T) {
		content := validYAML + `  - name: internal
    match_prefix:
      endpoint: /internal/
    fraction: 0.01
`
		policy, err := LoadBytes([]byte(content), FormatYAML)
		require.NoError(t, err)
		require.Len(t, policy.Rules, 2)
		assert.True(t, policy.Rules[1].Match(map[string]string{"endpoint": "/internal/debug"}))
		assert.False(t, policy.Rules[1].Match(map[string]string{"endpoint": "/api"}))
	})

	t.Run("combined match and prefix", func(t *testing.T) {
		content := `always_keep: [ERROR, FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
  WARN: 0.5
  INFO: 0.1
  DEBUG: 0.0
  TRACE: 0.0
rules:
  - name: free-tier-api
    match:
      tier: free
    match_prefix:
      endpoint: /api/
    fraction: 0.05
`
		policy, err := LoadBytes([]byte(content), FormatYAML)
		require.NoError(t, err)
		require.Len(t, policy.Rules, 1)

		rule := policy.Rules[0]
		assert.True(t, rule.Match(map[string]string{"tier": "free", "endpoint": "/api/v1"}))
		assert.False(t, rule.Match(map[string]string{"tier": "paid", "endpoint": "/api/v1"}))
		assert.False(t, rule.Match(map[string]string{"tier": "free", "endpoint": "/health"}))
	})

	t.Run("rule without matchers is catch-all", func(t *testing.T) {
		content := `always_keep: [ERROR, FATAL]
rates:
  FATAL: 1.0
  ERROR: 1.0
  WARN: 0.5
  INFO: 0.1
  DEBUG: 0.0
  TRACE: 0.0
rules:
  - name: fallback
    fraction: 0.2
`
		policy, err := LoadBytes([]byte(content), FormatYAML)
		require.NoError(t, err)
		require.Len(t, policy.Rules, 1)
		assert.True(t, policy.Rules[0].Match(nil))
	})
}
