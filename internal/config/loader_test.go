package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/routefix/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	// Keep .env lookups inside a scratch directory.
	t.Chdir(t.TempDir())

	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROUTEFIX_LOG_LEVEL", "debug")
			_ = os.Setenv("ROUTEFIX_METRICS_FILE", "/tmp/routefix.prom")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/routefix.prom")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
log_level: warn
metrics_file: /var/lib/node_exporter/routefix.prom
`)
			_ = os.Setenv("ROUTEFIX_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/var/lib/node_exporter/routefix.prom")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
log_level: warn
metrics_file: /from/file.prom
`)
			_ = os.Setenv("ROUTEFIX_CONFIG", tmpFile)
			_ = os.Setenv("ROUTEFIX_LOG_LEVEL", "error") // This should override the file

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")              // Overridden by env
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/from/file.prom") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("ROUTEFIX_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ROUTEFIX_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When metrics_file points at a directory", func() {
			_ = os.Setenv("ROUTEFIX_METRICS_FILE", t.TempDir())

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "is a directory")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			tmpFile := createTempConfigFile(t, `
# This is a comment
log_level: debug  # Inline comment
`)
			_ = os.Setenv("ROUTEFIX_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})
	})
}

func TestConfigLoaderDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".env"), "ROUTEFIX_LOG_LEVEL=debug\nROUTEFIX_METRICS_FILE=/from/dotenv.prom\n")

	convey.Convey("Given a .env file in the working directory", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When the environment already sets one of its keys", func() {
			_ = os.Setenv("ROUTEFIX_METRICS_FILE", "/from/env.prom")

			cfg, err := config.Load(context.Background())

			convey.Convey("Then it should fill gaps without overriding the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/from/env.prom")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ROUTEFIX_CONFIG",
		"ROUTEFIX_LOG_LEVEL",
		"ROUTEFIX_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routefix-config.yaml")
	writeFile(t, path, content)
	return path
}
