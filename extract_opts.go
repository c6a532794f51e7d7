package gfarch

import "log/slog"

// extractConfig holds configuration for Extract.
type extractConfig struct {
	codecs map[Compression]Codec
	logger *slog.Logger
}

// codec resolves the codec for a scheme, preferring an injected one.
func (c *extractConfig) codec(comp Compression) (Codec, bool) {
	if cd, ok := c.codecs[comp]; ok {
		return cd, true
	}
	return defaultCodec(comp)
}

// log returns the logger, falling back to a discard logger if nil.
func (c *extractConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

// ExtractWithCodec overrides the codec used for a compression scheme.
func ExtractWithCodec(compression Compression, codec Codec) ExtractOption {
	return func(c *extractConfig) {
		if c.codecs == nil {
			c.codecs = make(map[Compression]Codec)
		}
		c.codecs[compression] = codec
	}
}

// ExtractWithLogger sets a logger for debug output.
func ExtractWithLogger(logger *slog.Logger) ExtractOption {
	return func(c *extractConfig) {
		c.logger = logger
	}
}
