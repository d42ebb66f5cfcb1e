package module

import (
	"strconv"

	"eueoeo/internal/core/snowflake"
	"eueoeo/internal/platform/config"
	"eueoeo/internal/platform/logger"
)

// Options for the backfill module
type Options struct {
	ChannelID int64
	PageSize  int
	Seed      snowflake.ID
}

// FromConfig builds Options from the BACKFILL_ env scope
func FromConfig(cfg config.Conf) Options {
	b := cfg.Prefix("BACKFILL_")

	channel, err := strconv.ParseInt(b.MustString("CHANNEL_ID"), 10, 64)
	if err != nil {
		logger.Get().Panic().Err(err).Msg("BACKFILL_CHANNEL_ID must be a snowflake id")
	}

	var seed snowflake.ID
	if s := b.MayString("SEED", ""); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			logger.Get().Panic().Err(err).Msg("BACKFILL_SEED must be a snowflake id")
		}
		seed = snowflake.ID(v)
	}

	return Options{
		ChannelID: channel,
		PageSize:  b.MayInt("PAGE_SIZE", 100),
		Seed:      seed,
	}
}
