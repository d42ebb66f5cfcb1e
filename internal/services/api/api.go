// Package api provides the HTTP API for the application
package api

import (
	"eueoeo/internal/core/checkin"
	"eueoeo/internal/platform/config"
	"eueoeo/internal/platform/logger"
	phttp "eueoeo/internal/platform/net/http"
	"eueoeo/internal/platform/store"

	"eueoeo/internal/modkit"
	"eueoeo/internal/modkit/httpkit"
	"eueoeo/internal/modkit/module"

	metamod "eueoeo/internal/services/api/meta/module"
	statsmod "eueoeo/internal/services/api/stats/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// stats reports calendar figures in the same zone check-ins resolve in
	loc := checkin.DefaultRules().Location

	mods := []module.Module{
		metamod.New(deps),
		statsmod.New(deps, loc),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
