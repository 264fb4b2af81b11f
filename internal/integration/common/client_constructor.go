package common

import (
	"strings"

	"github.com/Jseow008/ThePlayBook-sub001/internal/config"
	pkgHTTP "github.com/Jseow008/ThePlayBook-sub001/pkg/http"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewBaseConnector builds a JSON connector for one upstream. Zero timeouts
// keep the client defaults; outbound logging is only installed when debug
// lines would be written anyway.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithAuthToken(cfg.Token),
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		opts = append(opts, pkgHTTP.WithRequestLogging())
	}

	return pkgHTTP.NewConnector(&pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: strings.TrimRight(cfg.Url, "/"),
	}, opts...)
}
