package interfaces

// Logger is the structured logger used by every layer. Fields are attached
// to the entry as key/value pairs:
//
//	logger.Warn("RSS service failed", map[string]interface{}{
//		"feed":     "Example Blog",
//		"strategy": "primary",
//		"error":    err.Error(),
//	})
type Logger interface {
	// Debug logs per-attempt and per-request detail.
	Debug(msg string, fields map[string]interface{})

	// Info logs lifecycle events such as registry loads and server start.
	Info(msg string, fields map[string]interface{})

	// Warn logs recoverable failures, such as one proxy strategy failing.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that leave a feed or the registry unusable.
	Error(msg string, fields map[string]interface{})
}
