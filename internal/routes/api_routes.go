package routes

import (
	"agora/backend/internal/api"
	"agora/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes mounts the /api tree. Numeric segments are IDs, so
// {id:[0-9]+} routes win over {username} ones.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	authenticated := middleware.AuthMiddleware(deps.Services.Tokens, deps.Services.Sessions)

	r.Route("/api", func(a chi.Router) {
		a.Get("/ping", api.Pong)

		// Public routes
		a.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)
			public.Post("/auth/login", handlers.Login())
			public.Post("/auth/register/min", handlers.RegisterMinimal())
			public.Post("/auth/register", handlers.RegisterFull())
		})

		a.Group(func(member chi.Router) {
			member.Use(authenticated)

			member.Post("/auth/register/desc", handlers.RegisterDescription())
			member.Get("/auth/reauth", handlers.Reauth())
			member.Post("/auth/logout", handlers.Logout())

			member.Get("/members", handlers.ListMembers())
			member.Get("/members/{id:[0-9]+}", handlers.GetMemberByID())
			member.Get("/members/{username}", handlers.GetMemberByUsername())
			member.Patch("/members/{id:[0-9]+}/edit", handlers.EditMember())
			member.Delete("/members/{id:[0-9]+}/delete", handlers.DeleteMember())

			member.Post("/affiliates/{id:[0-9]+}/follow", handlers.Follow())
			member.Delete("/affiliates/{id:[0-9]+}/unfollow", handlers.Unfollow())

			member.Get("/followers/affiliate/{id:[0-9]+}", handlers.GetFollowers())
			member.Get("/followers/requests", handlers.GetFollowRequests())
			member.Patch("/followers/requests/{id:[0-9]+}/accept", handlers.AcceptFollow())
			member.Delete("/followers/requests/{id:[0-9]+}/decline", handlers.DeclineFollow())
			member.Get("/followees/affiliate/{id:[0-9]+}", handlers.GetFollowees())

			member.Post("/posts", handlers.CreatePost())
			member.Post("/posts/{id:[0-9]+}/switch-save", handlers.SwitchSaved())
			member.Delete("/posts/{id:[0-9]+}/delete", handlers.DeletePost())

			member.Get("/feed", handlers.GetFeed())
			member.Get("/feed/affiliate/{id:[0-9]+}", handlers.GetAffiliateFeed())
			member.Get("/feed/saved", handlers.GetSavedFeed())

			member.Post("/boards", handlers.CreateBoard())
			member.Get("/boards/{id:[0-9]+}", handlers.GetBoard())
		})
	})
}
