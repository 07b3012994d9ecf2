package config_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/sakif/exercise-tracker/internal/config"
)

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config with a store URI", t, func() {
		cfg := config.New()
		cfg.MongoURI = "memory://"

		convey.Convey("It is valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("A port outside 1-65535 is rejected", func() {
			for _, port := range []int{0, -1, 65536} {
				cfg.Port = port
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("A blank store URI is rejected", func() {
			cfg.MongoURI = "   "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("A non-positive shutdown timeout is rejected", func() {
			cfg.ShutdownTimeout = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			cfg.ShutdownTimeout = -time.Second
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An unknown log level is rejected", func() {
			cfg.LogLevel = "loud"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfigSlogLevel(t *testing.T) {
	convey.Convey("Log levels map onto slog", t, func() {
		cases := map[string]slog.Level{
			"debug": slog.LevelDebug,
			"info":  slog.LevelInfo,
			"WARN":  slog.LevelWarn,
			"error": slog.LevelError,
			"":      slog.LevelInfo,
			"loud":  slog.LevelInfo,
		}
		for in, want := range cases {
			cfg := config.New()
			cfg.LogLevel = in
			convey.So(cfg.SlogLevel(), convey.ShouldEqual, want)
		}
	})
}
