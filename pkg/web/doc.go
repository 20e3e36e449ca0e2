// Package web bridges the resolver to browser clients over a
// websocket. It realizes the two external collaborators the engine
// expects: the path source (client "navigate" frames) and the outlet
// consumer (serialized state frames pushed after each publication).
//
// The bridge is a chi-mountable handler:
//
//	table, _ := route.Build(defs)
//	h := web.NewHandler(table)
//
//	r := chi.NewRouter()
//	r.Mount("/wayfind", h.Routes())
package web
