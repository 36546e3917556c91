package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/internal/session"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Matching      *MatchingHandler
	Jobs          *JobHandler
	Chat          *ChatHandler
	Notifications *NotificationHandler
	Directory     *DirectoryHandler
	Admin         *AdminHandler
}

func NewAppHandlers(container *services.ServiceContainer, sessions *session.Manager) *AppHandlers {
	base := NewBaseHandler(sessions)

	return &AppHandlers{
		Auth:          NewAuthHandler(base, container.Auth),
		Profile:       NewProfileHandler(base, container.Profile),
		Matching:      NewMatchingHandler(base, container.Matching),
		Jobs:          NewJobHandler(base, container.Jobs),
		Chat:          NewChatHandler(base, container.Chat),
		Notifications: NewNotificationHandler(base, container.Notifications),
		Directory:     NewDirectoryHandler(base, container.Directory, container.Profile),
		Admin:         NewAdminHandler(base, container.Admin),
	}
}
