// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers はルーティングに登録するハンドラの集まりです
type Handlers struct {
	Learner    *LearnerHandler
	Vocabulary *VocabularyHandler
	Review     *ReviewHandler
}

// RegisterRoutes は /api/v1 以下のルートを登録します。auth は認証が必要なルートにだけ適用されます
func RegisterRoutes(r chi.Router, h Handlers, auth func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/learners", h.Learner.Register)
		r.Post("/auth/login", h.Learner.Login)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/me", h.Learner.GetMe)
			r.Patch("/me", h.Learner.UpdateMe)

			r.Route("/vocabulary", func(r chi.Router) {
				r.Get("/", h.Vocabulary.ListItems)
				r.Post("/", h.Vocabulary.CreateItem)
				r.Post("/import", h.Vocabulary.ImportItems)
				r.Get("/{item_id}", h.Vocabulary.GetItem)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/due", h.Review.GetDueItems)
				r.Get("/new", h.Review.GetNewItems)
				r.Get("/stats", h.Review.GetStats)
				r.Get("/state", h.Review.ExportState)
				r.Put("/state", h.Review.ImportState)
				r.Get("/{item_id}", h.Review.GetRecord)
				r.Post("/{item_id}", h.Review.SubmitReview)
				r.Delete("/{item_id}", h.Review.ResetItem)
			})
		})
	})
}
