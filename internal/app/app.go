package app

import (
	"beatwatch/internal/app/deps"
	"beatwatch/internal/app/services"
	currenttime "beatwatch/internal/http/handlers/beats/current_time"
	"beatwatch/internal/http/handlers/events"
	acknowledgereminder "beatwatch/internal/http/handlers/reminders/acknowledge_reminder"
	createreminder "beatwatch/internal/http/handlers/reminders/create_reminder"
	deletereminder "beatwatch/internal/http/handlers/reminders/delete_reminder"
	dismissreminder "beatwatch/internal/http/handlers/reminders/dismiss_reminder"
	listreminders "beatwatch/internal/http/handlers/reminders/list_reminders"
	"beatwatch/internal/http/handlers/reminders/queue"
	updatereminder "beatwatch/internal/http/handlers/reminders/update_reminder"
	getmute "beatwatch/internal/http/handlers/settings/get_mute"
	setmute "beatwatch/internal/http/handlers/settings/set_mute"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders))
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodPatch, "/{eventID:[0-9]+}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{eventID:[0-9]+}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(http.MethodPost, "/{eventID:[0-9]+}/dismiss", dismissreminder.New(s.DismissReminder))
	reminderRouter.Method(
		http.MethodPost,
		"/{eventID:[0-9]+}/acknowledge",
		acknowledgereminder.New(s.AcknowledgeReminder),
	)

	settingsRouter := chi.NewRouter()
	settingsRouter.Method(http.MethodGet, "/mute", getmute.New(deps.SettingsCache))
	settingsRouter.Method(http.MethodPut, "/mute", setmute.New(s.UpdateSettings))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Method(http.MethodGet, "/time", currenttime.New(deps.Now))
	router.Method(http.MethodGet, "/queue", queue.New(deps.ActiveQueue))
	router.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer))
	router.Mount("/reminders", reminderRouter)
	router.Mount("/settings", settingsRouter)

	return &http.Server{
		Handler:           router,
		Addr:              deps.Config.BindAddress,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// SSE connections are long-lived, the write timeout would cut
		// them off.
		WriteTimeout: 0,
		IdleTimeout:  30 * time.Second,
	}
}
