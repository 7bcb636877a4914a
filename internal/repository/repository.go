package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Area         AreaRepository
	Flood        FloodRepository
	Request      RequestRepository
	Subsidy      SubsidyRepository
	Shelter      ShelterRepository
	Announcement AnnouncementRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
	UnitOfWork   UnitOfWork
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Area:         NewAreaRepository(db),
		Flood:        NewFloodRepository(db),
		Request:      NewRequestRepository(db),
		Subsidy:      NewSubsidyRepository(db),
		Shelter:      NewShelterRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		UnitOfWork:   NewUnitOfWork(db),
	}
}
