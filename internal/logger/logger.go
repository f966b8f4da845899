// Package logger wires zap for the API process. All packages log through
// the shared sugared logger returned by Get.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Init builds the process logger once. Production gets JSON output with
// stack traces suppressed (request logging already carries the context
// that matters); anything else gets the readable console encoder.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
			cfg.DisableStacktrace = true
		} else {
			cfg = zap.NewDevelopmentConfig()
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		log = base.Named("centavo").Sugar()
	})
}

// Get returns the shared logger, initializing a development one if Init
// was never called (tests rely on this).
func Get() *zap.SugaredLogger {
	if log == nil {
		Init("development")
	}
	return log
}

// Sync flushes buffered entries; call before the process exits.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
