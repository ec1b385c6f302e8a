package logger

import (
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. Only Initialize may replace it; until then
// it is a no-op logger.
var Log *zap.Logger = zap.NewNop()

// Initialize sets up the singleton with the given level. When filePath is
// non-empty, log output is teed to a rotated file in addition to stderr.
func Initialize(level string, filePath string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	if filePath == "" {
		cfg := zap.NewProductionConfig()
		cfg.Level = lvl
		zl, err := cfg.Build()
		if err != nil {
			return err
		}
		Log = zl
		return nil
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl),
		zapcore.NewCore(encoder, fileSink, lvl),
	)
	Log = zap.New(core)
	return nil
}

type (
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter captures status and size while delegating to the
	// embedded http.ResponseWriter.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// RequestLogger logs every request with its outcome.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{
			status: http.StatusOK, // default when WriteHeader is never called
		}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		h.ServeHTTP(&lw, r)

		Log.Info("request completed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Int("status", responseData.status),
			zap.Int("size", responseData.size),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
