package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }

func DurationMs(v time.Duration) zap.Field {
	return zap.Int64("duration_ms", v.Milliseconds())
}

// Campos estándar de negocio.

func TenantID(v string) zap.Field  { return zap.String("tenant_id", v) }
func AccountID(v string) zap.Field { return zap.String("account_id", v) }
func ProjectID(v string) zap.Field { return zap.String("project_id", v) }
func TaskID(v string) zap.Field    { return zap.String("task_id", v) }
func Subdomain(v string) zap.Field { return zap.String("subdomain", v) }
func Action(v string) zap.Field    { return zap.String("action", v) }

// Campos de diagnóstico.

func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
