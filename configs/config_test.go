package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// テスト用の環境変数を設定
	testCases := map[string]string{
		"PORT":              "9090",
		"ENVIRONMENT":       "test",
		"API_KEY":           "test-key",
		"DATA_DIR":          "testdata",
		"SUPPORT_LOG_PATH":  "/tmp/support.csv",
		"REDIS_ADDR":        "localhost:6379",
		"REDIS_DB":          "2",
		"SESSION_TTL_HOURS": "48",
	}

	// 環境変数を設定
	for key, value := range testCases {
		os.Setenv(key, value)
	}

	// テスト後にクリーンアップ
	defer func() {
		for key := range testCases {
			os.Unsetenv(key)
		}
	}()

	// 設定を読み込み
	cfg := LoadConfig()

	// 検証
	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}

	if cfg.APIKey != "test-key" {
		t.Errorf("Expected APIKey to be 'test-key', got '%s'", cfg.APIKey)
	}

	if cfg.DataDir != "testdata" {
		t.Errorf("Expected DataDir to be 'testdata', got '%s'", cfg.DataDir)
	}

	if cfg.SupportLogPath != "/tmp/support.csv" {
		t.Errorf("Expected SupportLogPath to be '/tmp/support.csv', got '%s'", cfg.SupportLogPath)
	}

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Expected RedisAddr to be 'localhost:6379', got '%s'", cfg.RedisAddr)
	}

	if cfg.RedisDB != 2 {
		t.Errorf("Expected RedisDB to be 2, got %d", cfg.RedisDB)
	}

	if cfg.SessionTTLHours != 48 {
		t.Errorf("Expected SessionTTLHours to be 48, got %d", cfg.SessionTTLHours)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// 環境変数をクリア
	vars := []string{
		"PORT", "ENVIRONMENT", "API_KEY", "DATA_DIR",
		"SUPPORT_LOG_PATH", "REDIS_ADDR", "REDIS_DB", "SESSION_TTL_HOURS",
	}

	for _, v := range vars {
		os.Unsetenv(v)
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// デフォルト値の検証
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}

	if cfg.DataDir != "data" {
		t.Errorf("Expected default DataDir to be 'data', got '%s'", cfg.DataDir)
	}

	if cfg.SupportLogPath != "customer_support_log.csv" {
		t.Errorf("Expected default SupportLogPath to be 'customer_support_log.csv', got '%s'", cfg.SupportLogPath)
	}

	if cfg.RedisAddr != "" {
		t.Errorf("Expected default RedisAddr to be empty, got '%s'", cfg.RedisAddr)
	}

	if cfg.SessionTTLHours != 24 {
		t.Errorf("Expected default SessionTTLHours to be 24, got %d", cfg.SessionTTLHours)
	}

	// 整数でない値はデフォルトにフォールバックする
	os.Setenv("REDIS_DB", "not-a-number")
	defer os.Unsetenv("REDIS_DB")
	cfg = LoadConfig()
	if cfg.RedisDB != 0 {
		t.Errorf("Expected RedisDB to fall back to 0, got %d", cfg.RedisDB)
	}
}
