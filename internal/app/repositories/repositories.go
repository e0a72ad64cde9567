package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	PaymentRepository      *PaymentRepository
	SubjectRepository      *SubjectRepository
	UserRepository         *UserRepository
	ActivityRepository     *ActivityRepository
	FeeScheduleRepository  *FeeScheduleRepository
	AnnouncementRepository *AnnouncementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		SubjectRepository:      NewSubjectRepository(db),
		UserRepository:         NewUserRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		FeeScheduleRepository:  NewFeeScheduleRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
	}
}
