package services

import (
	"beatwatch/internal/app/deps"
	"beatwatch/internal/core/services"
	acknowledgereminder "beatwatch/internal/core/services/acknowledge_reminder"
	createreminder "beatwatch/internal/core/services/create_reminder"
	deletereminder "beatwatch/internal/core/services/delete_reminder"
	dismissreminder "beatwatch/internal/core/services/dismiss_reminder"
	dispatchreminder "beatwatch/internal/core/services/dispatch_reminder"
	listreminders "beatwatch/internal/core/services/list_reminders"
	sendreminder "beatwatch/internal/core/services/send_reminder"
	updatereminder "beatwatch/internal/core/services/update_reminder"
	updatesettings "beatwatch/internal/core/services/update_settings"
)

type Services struct {
	CreateReminder      services.Service[createreminder.Input, createreminder.Result]
	UpdateReminder      services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder      services.Service[deletereminder.Input, deletereminder.Result]
	DismissReminder     services.Service[dismissreminder.Input, dismissreminder.Result]
	AcknowledgeReminder services.Service[acknowledgereminder.Input, acknowledgereminder.Result]
	ListReminders       services.Service[listreminders.Input, listreminders.Result]

	DispatchReminder services.Service[dispatchreminder.Input, dispatchreminder.Result]
	SendReminder     services.Service[sendreminder.Input, sendreminder.Result]

	UpdateSettings services.Service[updatesettings.Input, updatesettings.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.CreateReminder = createreminder.New(
		deps.Logger,
		deps.EventStore,
		deps.Config.LocalTimezone,
		deps.Now,
	)
	s.UpdateReminder = updatereminder.New(
		deps.Logger,
		deps.EventStore,
		deps.Config.LocalTimezone,
		deps.Now,
	)
	s.DeleteReminder = deletereminder.New(
		deps.Logger,
		deps.EventStore,
	)
	s.DismissReminder = dismissreminder.New(
		deps.Logger,
		deps.EventStore,
		deps.ActiveQueue,
	)
	s.AcknowledgeReminder = acknowledgereminder.New(
		deps.Logger,
		deps.ActiveQueue,
	)
	s.ListReminders = listreminders.New(
		deps.Logger,
		deps.EventStore,
		deps.ActiveQueue,
		deps.Now,
	)

	s.DispatchReminder = dispatchreminder.New(
		deps.Logger,
		deps.DispatchGuard,
		deps.InternalSender,
		deps.DuePublisher,
		deps.SettingsCache,
	)
	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.EmailSender,
	)

	s.UpdateSettings = updatesettings.New(
		deps.Logger,
		deps.SettingsRepository,
		deps.SettingsCache,
	)

	return s
}
