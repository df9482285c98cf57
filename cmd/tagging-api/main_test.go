package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryannaik/tagging-api/internal/tagging"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{
		"GOOGLE_API_KEY", "PORT", "VISION_ENDPOINT", "VISION_MAX_RESULTS",
		"LABEL_CACHE_SIZE", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(k, env[k])
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"GOOGLE_API_KEY": "test-key"})

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config{
		GoogleAPIKey:       "test-key",
		Port:               "8000",
		VisionMaxResults:   10,
		LabelCacheSize:     0,
		RateLimitPerMinute: 120,
		RateLimitBurst:     20,
	}, cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"GOOGLE_API_KEY":        "test-key",
		"PORT":                  "9090",
		"VISION_ENDPOINT":       "http://localhost:9999/",
		"VISION_MAX_RESULTS":    "5",
		"LABEL_CACHE_SIZE":      "500",
		"RATE_LIMIT_PER_MINUTE": "0",
		"RATE_LIMIT_BURST":      "1",
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:9999/", cfg.VisionEndpoint)
	assert.Equal(t, 5, cfg.VisionMaxResults)
	assert.Equal(t, 500, cfg.LabelCacheSize)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, 1, cfg.RateLimitBurst)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	setEnv(t, nil)

	_, err := loadConfig()
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	setEnv(t, map[string]string{"GOOGLE_API_KEY": "k", "LABEL_CACHE_SIZE": "lots"})
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LABEL_CACHE_SIZE")

	setEnv(t, map[string]string{"GOOGLE_API_KEY": "k", "RATE_LIMIT_BURST": "-1"})
	_, err = loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestServeCommand_MissingAPIKey(t *testing.T) {
	setEnv(t, nil)

	rootCmd.SetArgs([]string{"serve"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func runClassifyCmd(t *testing.T, args ...string) []tagging.Tag {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"classify"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		labelsFlag = false
	})

	require.NoError(t, rootCmd.Execute())

	var tags []tagging.Tag
	require.NoError(t, json.Unmarshal(out.Bytes(), &tags))
	return tags
}

func TestClassifyCommand_Text(t *testing.T) {
	tags := runClassifyCmd(t, "--labels=false", "a", "red", "bird", "at", "sunset")
	assert.ElementsMatch(t, []tagging.Tag{
		{Category: tagging.CategoryColor, Value: "red"},
		{Category: tagging.CategoryAnimal, Value: "bird"},
	}, tags)
}

func TestClassifyCommand_Labels(t *testing.T) {
	tags := runClassifyCmd(t, "--labels", "Cat", "Skyscraper")
	assert.ElementsMatch(t, []tagging.Tag{
		{Category: tagging.CategoryAnimal, Value: "Cat"},
		{Category: tagging.CategoryOther, Value: "Skyscraper"},
	}, tags)
}

func TestNewApp_WithCache(t *testing.T) {
	a, err := newApp(context.Background(), config{
		GoogleAPIKey:     "test-key",
		VisionEndpoint:   "http://127.0.0.1:1/",
		VisionMaxResults: 10,
		LabelCacheSize:   10,
	})
	require.NoError(t, err)
	defer a.closeFn()

	assert.NotNil(t, a.store)
	assert.NotNil(t, a.analyzer)
}

func TestServeUntilDone_StopsOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, srv) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServeUntilDone_ListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}

	err := serveUntilDone(context.Background(), srv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server stopped")
}
