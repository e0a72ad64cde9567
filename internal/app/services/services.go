package services

import (
	"github.com/schooldesk/api/internal/app/repositories"
)

// Services holds all the service instances
type Services struct {
	StudentService      *StudentService
	PaymentService      *PaymentService
	SubjectService      *SubjectService
	UserService         *UserService
	ActivityService     *ActivityService
	FeeScheduleService  *FeeScheduleService
	AnnouncementService *AnnouncementService
}

// NewServices wires all services onto the repositories and the event
// publisher.
func NewServices(repos *repositories.Repositories, events EventPublisher, logoURL string) *Services {
	activity := NewActivityService(repos.ActivityRepository)

	studentService := NewStudentService(
		repos.StudentRepository,
		repos.PaymentRepository,
		repos.SubjectRepository,
		repos.FeeScheduleRepository,
		activity,
	)

	return &Services{
		StudentService:      studentService,
		PaymentService:      NewPaymentService(repos.PaymentRepository, studentService, activity, logoURL),
		SubjectService:      NewSubjectService(repos.SubjectRepository, activity),
		UserService:         NewUserService(repos.UserRepository, events, activity),
		ActivityService:     activity,
		FeeScheduleService:  NewFeeScheduleService(repos.FeeScheduleRepository, activity),
		AnnouncementService: NewAnnouncementService(repos.AnnouncementRepository),
	}
}
