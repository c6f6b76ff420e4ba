// Command setd runs the set engine as a standalone HTTP service.
package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/events"
	"github.com/vpol/redis/internal/executor"
	"github.com/vpol/redis/internal/httpapi"
	"github.com/vpol/redis/internal/keyspace"
)

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	cfg := config.NewDefault()
	ks := keyspace.New(log)
	sink := events.NewZapSink(log)
	exec := executor.New(256, 64)
	defer exec.Close()

	srv := httpapi.New(ks, cfg, sink, exec, log)

	addr := os.Getenv("SETD_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("listening", zap.String("addr", addr))
	if err := srv.Router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
