package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Post("", handler.CreateLog)
	logs.Get("", handler.GetLogs)
	logs.Get("/day/:date", handler.GetLogByDay)
	logs.Get("/:id", handler.GetLogByID)
	logs.Put("/:id/sections/:section", handler.UpdateSection)
	logs.Patch("/:id/aggregates", handler.UpdateAggregates)
	logs.Delete("/:id", handler.DeleteLog)
	logs.Post("/:id/insight", handler.GenerateInsight)
	logs.Get("/:id/insight", handler.GetInsight)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("", handler.ListInsights)

	summary := api.Group("/summary", handler.AuthRequired)
	summary.Get("/weekly", handler.GetWeeklySummary)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/timezone", handler.UpdateTimezone)
	settings.Post("/profile", handler.UpdateDisplayName)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Delete("/delete-account", handler.DeleteAccount)
}
