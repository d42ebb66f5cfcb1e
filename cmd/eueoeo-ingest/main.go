package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"eueoeo/internal/modkit"
	"eueoeo/internal/modkit/module"
	"eueoeo/internal/modkit/repokit"
	"eueoeo/internal/platform/config"
	"eueoeo/internal/platform/logger"
	"eueoeo/internal/platform/store"

	"eueoeo/internal/adapters/source/discord"
	"eueoeo/internal/core/checkin"
	"eueoeo/internal/services/backfill/guardrails"
	backfillmod "eueoeo/internal/services/backfill/module"
	ledgerdom "eueoeo/internal/services/ledger/domain"
	ledgermod "eueoeo/internal/services/ledger/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	dcCfg := root.Prefix("DISCORD_")
	bfCfg := root.Prefix("BACKFILL_")

	l := logger.Get()

	var (
		fSeed        = flag.String("seed", "", "starting message id for a channel with no cursor and no history")
		fPageSize    = flag.Int("page-size", 0, "source page size override")
		fSyncMembers = flag.Bool("sync-members", false, "refresh participant names from the guild member list before the run")
	)
	flag.Parse()

	// surface flags to the module's FromConfig scope
	mustSetEnv("BACKFILL_SEED", *fSeed)
	if *fPageSize > 0 {
		mustSetEnv("BACKFILL_PAGE_SIZE", strconv.Itoa(*fPageSize))
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "eueoeo-ingest",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	rules := checkin.DefaultRules()

	// ledger owns history and streak state
	lg := ledgermod.New(deps, rules.Location)
	module.Register(lg.Name(), lg.Ports())
	recorder := module.MustPortsOf[ledgerdom.RecorderPort](lg)
	reader := module.MustPortsOf[ledgerdom.ReaderPort](lg)

	client := discord.NewClient(discord.Options{
		BotToken: dcCfg.MustString("BOT_TOKEN"),
	})

	// interrupt lands between pages; an in-flight page still checkpoints
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *fSyncMembers {
		guildID, err := strconv.ParseInt(dcCfg.MustString("GUILD_ID"), 10, 64)
		if err != nil {
			l.Panic().Err(err).Msg("DISCORD_GUILD_ID must be a snowflake id")
		}
		members, err := client.ListMembers(ctx, guildID)
		if err != nil {
			l.Fatal().Err(err).Msg("member list failed")
		}
		if err := recorder.SyncMembers(ctx, members); err != nil {
			l.Fatal().Err(err).Msg("member sync failed")
		}
		l.Info().Int("members", len(members)).Msg("participant names refreshed")
	}

	opts := backfillmod.FromConfig(root)
	src := discord.NewSource(client, opts.ChannelID)

	bf := backfillmod.New(deps, src, recorder, reader, rules)
	module.Register(bf.Name(), bf.Ports())
	runner := module.MustPortsOf[backfillmod.Ports](bf).Runner

	lease := guardrails.MakeChannelLease(deps)
	budget := guardrails.Timeouts{
		Run:   bfCfg.MayDuration("RUN_TIMEOUT", 0),
		Fetch: bfCfg.MayDuration("FETCH_TIMEOUT", 0),
	}

	err = lease(ctx, opts.ChannelID, func(ctx context.Context) error {
		ctx, cancel := guardrails.WithRun(ctx, budget)
		defer cancel()

		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		l.Info().
			Str("run_id", report.RunID).
			Int("pages", report.Pages).
			Int("seen", report.Seen).
			Int("accepted", report.Accepted).
			Int("skipped", report.Skipped).
			Int64("cursor", int64(report.Cursor)).
			Msg("catch-up finished")
		return nil
	})
	if err != nil {
		if errors.Is(err, guardrails.ErrLeaseHeld) {
			l.Warn().Int64("channel_id", opts.ChannelID).Msg("another ingest run holds the channel lease")
			return
		}
		l.Fatal().Err(err).Msg("backfill failed")
	}
}
