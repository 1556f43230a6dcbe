package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"filmorate/internal/config"
)

// CORS настраивает Cross-Origin Resource Sharing по конфигурации.
// Заголовок X-Request-ID всегда доступен клиенту.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    withRequestID(cfg.ExposedHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	// В debug режиме пустой список означает "разрешить всех",
	// в остальных режимах только явно указанные источники.
	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	case gin.Mode() == gin.DebugMode:
		corsConfig.AllowAllOrigins = true
	default:
		// пустой AllowOrigins cors.New считает ошибкой конфигурации
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(corsConfig)
}

func withRequestID(headers []string) []string {
	for _, h := range headers {
		if h == RequestIDHeader {
			return headers
		}
	}
	return append(append([]string(nil), headers...), RequestIDHeader)
}
