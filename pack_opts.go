package gfarch

import "log/slog"

// packConfig holds configuration for Pack.
type packConfig struct {
	gfcpOffset    uint32
	gfcpOffsetSet bool
	codecs        map[Compression]Codec
	logger        *slog.Logger
}

// codec resolves the codec for a scheme, preferring an injected one.
func (c *packConfig) codec(comp Compression) (Codec, bool) {
	if cd, ok := c.codecs[comp]; ok {
		return cd, true
	}
	return defaultCodec(comp)
}

// log returns the logger, falling back to a discard logger if nil.
func (c *packConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// PackOption configures Pack.
type PackOption func(*packConfig)

// PackWithGFCPOffset places the compression header at a fixed absolute
// offset instead of directly after the file-info block. At least one
// known title requires its archives to keep the compression header at
// 0x2000. The offset must not overlap the entry and filename tables.
func PackWithGFCPOffset(offset uint32) PackOption {
	return func(c *packConfig) {
		c.gfcpOffset = offset
		c.gfcpOffsetSet = true
	}
}

// PackWithCodec overrides the codec used for a compression scheme.
func PackWithCodec(compression Compression, codec Codec) PackOption {
	return func(c *packConfig) {
		if c.codecs == nil {
			c.codecs = make(map[Compression]Codec)
		}
		c.codecs[compression] = codec
	}
}

// PackWithLogger sets a logger for debug output.
func PackWithLogger(logger *slog.Logger) PackOption {
	return func(c *packConfig) {
		c.logger = logger
	}
}
