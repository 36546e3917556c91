package services

import (
	"technest_backend/internal/config"
	"technest_backend/internal/email"
	"technest_backend/internal/imageprocessor"
	"technest_backend/internal/repositories"
	"technest_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories and shared
// infrastructure. Handlers receive it fully built.
type ServiceContainer struct {
	Auth          AuthService
	Profile       ProfileService
	Matching      MatchingService
	Jobs          JobService
	Chat          ChatService
	Notifications NotificationService
	Directory     DirectoryService
	Admin         AdminService
}

func NewServiceContainer(cfg *config.Config, store storage.Storage, mailer email.Provider) *ServiceContainer {
	accountRepo := repositories.NewAccountRepository()
	memberRepo := repositories.NewMemberRepository()
	companyRepo := repositories.NewCompanyRepository()
	taxonomyRepo := repositories.NewTaxonomyRepository()
	jobRepo := repositories.NewJobRepository()
	chatRepo := repositories.NewChatRepository()
	notificationRepo := repositories.NewNotificationRepository()
	contentRepo := repositories.NewContentRepository()
	adminRepo := repositories.NewAdminRepository()

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)

	return &ServiceContainer{
		Auth: NewAuthService(accountRepo, memberRepo, companyRepo, mailer, cfg.App.BaseURL),
		Profile: NewProfileService(memberRepo, companyRepo, taxonomyRepo, contentRepo,
			notificationRepo, store, processor, cfg.Upload.MaxImageSize),
		Matching:      NewMatchingService(memberRepo, companyRepo),
		Jobs:          NewJobService(jobRepo, memberRepo, companyRepo, taxonomyRepo, notificationRepo),
		Chat:          NewChatService(chatRepo, memberRepo, companyRepo, store),
		Notifications: NewNotificationService(notificationRepo, memberRepo, companyRepo),
		Directory:     NewDirectoryService(memberRepo, companyRepo, taxonomyRepo, mailer),
		Admin: NewAdminService(adminRepo, accountRepo, memberRepo, companyRepo,
			taxonomyRepo, jobRepo, notificationRepo, contentRepo, store),
	}
}
