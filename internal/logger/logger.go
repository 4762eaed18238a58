package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New arma el logger de zap: consola con colores en desarrollo, JSON en producción.
func New(development bool) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	return config.Build()
}

// MustNew es New pero hace panic si zap no se puede construir.
func MustNew(development bool) *zap.Logger {
	l, err := New(development)
	if err != nil {
		panic("no se pudo crear el logger: " + err.Error())
	}
	return l
}
