package services

import (
	"context"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/pkg/finance"
)

// The store interfaces name exactly what each service needs from the
// persistence layer. The pgx repositories satisfy them in production;
// tests substitute in-memory fakes.

// StudentStore is the persistence surface of the student collection.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	ExistsByStudentNo(ctx context.Context, studentNo string) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	SetFinancialSummary(ctx context.Context, id int64, summary finance.Summary) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}

// PaymentStore is the persistence surface of the payment ledger.
type PaymentStore interface {
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error)
	GetByReference(ctx context.Context, studentID int64, reference string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, studentID int64, reference string, payment *models.Payment) error
	Delete(ctx context.Context, studentID int64, reference string) (*models.Payment, error)
}

// SubjectStore is the persistence surface of the curriculum collection.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	FindByOffering(ctx context.Context, course, yearLevel, semester string) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence surface of the staff accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// ActivityStore is the persistence surface of the activity log.
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, typeTag string, limit, offset int) ([]*models.Activity, error)
	Count(ctx context.Context, typeTag string) (int, error)
}

// FeeScheduleStore is the persistence surface of the fee structure.
type FeeScheduleStore interface {
	GetAll(ctx context.Context) ([]*models.FeeSchedule, error)
	GetByDepartment(ctx context.Context, department models.Department) (*models.FeeSchedule, error)
	ReplaceDepartment(ctx context.Context, schedule *models.FeeSchedule) error
	ReplaceAll(ctx context.Context, schedules []models.FeeSchedule) error
}

// AnnouncementStore is the persistence surface of the calendar.
type AnnouncementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id int64) error
}

// EventPublisher pushes collection-change notifications to subscribers.
// The websocket hub satisfies it in production.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}
