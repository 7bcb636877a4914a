package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"flowx-relief/internal/config"
	"flowx-relief/internal/repository"
	"flowx-relief/internal/service/announcement"
	"flowx-relief/internal/service/area"
	"flowx-relief/internal/service/audit"
	"flowx-relief/internal/service/auth"
	"flowx-relief/internal/service/dashboard"
	"flowx-relief/internal/service/email"
	"flowx-relief/internal/service/flood"
	"flowx-relief/internal/service/floodctx"
	"flowx-relief/internal/service/notification"
	"flowx-relief/internal/service/report"
	"flowx-relief/internal/service/request"
	"flowx-relief/internal/service/shelter"
	"flowx-relief/internal/service/subsidy"
	"flowx-relief/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Floods       floodctx.Resolver
	Flood        flood.Service
	Request      request.Service
	Subsidy      subsidy.Service
	Shelter      shelter.Service
	Announcement announcement.Service
	Area         area.Service
	Email        email.Service
	Audit        audit.Service
	Notification notification.Service
	Dashboard    dashboard.Service
	Report       report.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	auditService := audit.NewService(repos.AuditLog)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)
	floods := floodctx.NewResolver(repos.Flood, floodctx.WithLocation(cfg.Location()))

	requestService := request.NewService(
		repos.Request,
		repos.Area,
		repos.Subsidy,
		repos.UnitOfWork,
		floods,
		auditService,
		notificationService,
		emailService,
	)

	var store report.ObjectStore
	if minioClient != nil {
		store = minioClient
	}

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Session, repos.Area, emailService, cfg),
		User:         user.NewService(repos.User),
		Floods:       floods,
		Flood:        flood.NewService(repos.Flood, repos.UnitOfWork, floods, auditService),
		Request:      requestService,
		Subsidy:      subsidy.NewService(repos.Subsidy, floods),
		Shelter:      shelter.NewService(repos.Shelter),
		Announcement: announcement.NewService(repos.Announcement, floods, auditService, notificationService),
		Area:         area.NewService(repos.Area, redis),
		Email:        emailService,
		Audit:        auditService,
		Notification: notificationService,
		Dashboard:    dashboard.NewService(repos.Request, floods, redis),
		Report:       report.NewService(requestService, store, cfg.MinIOBucket),
	}
}
