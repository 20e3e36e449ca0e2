package main

import (
	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/web"
)

// buildTable converts the manifest routes into a route table of wire
// view references.
func buildTable(cfg *config.Config) (*route.Table[web.ViewRef], error) {
	defs := make([]route.Def[web.ViewRef], 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		def := route.Def[web.ViewRef]{
			Path:   rc.Path,
			End:    rc.End,
			Prefix: rc.Prefix,
		}

		if rc.Component != "" {
			def.Load = route.Value(web.ViewRef{
				Component: rc.Component,
				Props:     rc.Props,
			})
		} else {
			views := make(map[string]route.LoadFunc[web.ViewRef], len(rc.Outlets))
			for name, vc := range rc.Outlets {
				views[name] = route.ValueFunc(web.ViewRef{
					Component: vc.Component,
					Props:     vc.Props,
				})
			}
			def.Load = route.Named(views)
		}

		defs = append(defs, def)
	}
	return route.Build(defs)
}
