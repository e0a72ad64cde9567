package services

import (
	"context"
	"sort"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/finance"
)

// In-memory stores used to exercise the services without a database.
// They mirror the repositories' semantics, including the transactional
// balance adjustments of the payment store.

type fakeStudentStore struct {
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, s *models.Student) error {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) GetByStudentNo(_ context.Context, studentNo string) (*models.Student, error) {
	for _, s := range f.students {
		if s.StudentNo == studentNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStudentStore) ExistsByStudentNo(ctx context.Context, studentNo string) (bool, error) {
	_, err := f.GetByStudentNo(ctx, studentNo)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeStudentStore) Update(_ context.Context, s *models.Student) error {
	if _, ok := f.students[s.ID]; !ok {
		return repositories.ErrStudentNotFound
	}
	cp := *s
	cp.UpdatedAt = time.Now()
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentStore) SetFinancialSummary(_ context.Context, id int64, summary finance.Summary) error {
	s, ok := f.students[id]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	s.FinancialSummary = &summary
	s.Balance = summary.RemainingBalance
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return repositories.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) DeleteMany(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.students[id]; ok {
			delete(f.students, id)
			n++
		}
	}
	return n, nil
}

type fakePaymentStore struct {
	nextID   int64
	payments []*models.Payment
	students *fakeStudentStore
}

func newFakePaymentStore(students *fakeStudentStore) *fakePaymentStore {
	return &fakePaymentStore{students: students}
}

func (f *fakePaymentStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.StudentID == studentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) GetByReference(_ context.Context, studentID int64, reference string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.StudentID == studentID && p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	if _, err := f.GetByReference(ctx, payment.StudentID, payment.Reference); err == nil {
		return repositories.ErrPaymentRefExists
	}
	f.nextID++
	payment.ID = f.nextID
	payment.CreatedAt = time.Now()
	cp := *payment
	f.payments = append(f.payments, &cp)
	if payment.Status == finance.PaymentCompleted {
		f.adjustBalance(payment.StudentID, -payment.Amount)
	}
	return nil
}

func (f *fakePaymentStore) Update(ctx context.Context, studentID int64, reference string, payment *models.Payment) error {
	for i, p := range f.payments {
		if p.StudentID == studentID && p.Reference == reference {
			var delta float64
			if p.Status == finance.PaymentCompleted {
				delta += p.Amount
			}
			if payment.Status == finance.PaymentCompleted {
				delta -= payment.Amount
			}
			payment.ID = p.ID
			payment.StudentID = studentID
			payment.CreatedAt = p.CreatedAt
			cp := *payment
			f.payments[i] = &cp
			f.adjustBalance(studentID, delta)
			return nil
		}
	}
	return repositories.ErrPaymentNotFound
}

func (f *fakePaymentStore) Delete(_ context.Context, studentID int64, reference string) (*models.Payment, error) {
	for i, p := range f.payments {
		if p.StudentID == studentID && p.Reference == reference {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			if p.Status == finance.PaymentCompleted {
				f.adjustBalance(studentID, p.Amount)
			}
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentStore) adjustBalance(studentID int64, delta float64) {
	if s, ok := f.students.students[studentID]; ok {
		s.Balance += delta
	}
}

type fakeSubjectStore struct {
	nextID   int64
	subjects map[int64]*models.Subject
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: make(map[int64]*models.Subject)}
}

func (f *fakeSubjectStore) Create(_ context.Context, s *models.Subject) error {
	for _, existing := range f.subjects {
		if existing.SubjectID == s.SubjectID {
			return repositories.ErrSubjectAlreadyExists
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	cp := *s
	f.subjects[s.ID] = &cp
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, repositories.ErrSubjectNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubjectStore) GetAll(_ context.Context) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSubjectStore) FindByOffering(_ context.Context, course, yearLevel, semester string) (*models.Subject, error) {
	for _, s := range f.subjects {
		if s.Course == course && s.YearLevel == yearLevel && s.Semester == semester {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrSubjectNotFound
}

func (f *fakeSubjectStore) Update(_ context.Context, s *models.Subject) error {
	if _, ok := f.subjects[s.ID]; !ok {
		return repositories.ErrSubjectNotFound
	}
	cp := *s
	f.subjects[s.ID] = &cp
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.subjects[id]; !ok {
		return repositories.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repositories.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) GetAll(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeActivityStore struct {
	entries []*models.Activity
}

func (f *fakeActivityStore) Create(_ context.Context, a *models.Activity) error {
	a.ID = int64(len(f.entries) + 1)
	a.CreatedAt = time.Now()
	cp := *a
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeActivityStore) List(_ context.Context, typeTag string, limit, offset int) ([]*models.Activity, error) {
	var matched []*models.Activity
	for i := len(f.entries) - 1; i >= 0; i-- {
		if typeTag == "" || f.entries[i].Type == typeTag {
			matched = append(matched, f.entries[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeActivityStore) Count(_ context.Context, typeTag string) (int, error) {
	var n int
	for _, a := range f.entries {
		if typeTag == "" || a.Type == typeTag {
			n++
		}
	}
	return n, nil
}

type fakeFeeScheduleStore struct {
	schedules map[models.Department]*models.FeeSchedule
}

func newFakeFeeScheduleStore() *fakeFeeScheduleStore {
	return &fakeFeeScheduleStore{schedules: make(map[models.Department]*models.FeeSchedule)}
}

func (f *fakeFeeScheduleStore) GetAll(_ context.Context) ([]*models.FeeSchedule, error) {
	out := make([]*models.FeeSchedule, 0, len(f.schedules))
	for _, d := range models.Departments {
		if s, ok := f.schedules[d]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFeeScheduleStore) GetByDepartment(_ context.Context, department models.Department) (*models.FeeSchedule, error) {
	s, ok := f.schedules[department]
	if !ok {
		return nil, repositories.ErrFeeScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeFeeScheduleStore) ReplaceDepartment(_ context.Context, schedule *models.FeeSchedule) error {
	cp := *schedule
	cp.UpdatedAt = time.Now()
	f.schedules[schedule.Department] = &cp
	return nil
}

func (f *fakeFeeScheduleStore) ReplaceAll(_ context.Context, schedules []models.FeeSchedule) error {
	f.schedules = make(map[models.Department]*models.FeeSchedule)
	for _, s := range schedules {
		cp := s
		cp.UpdatedAt = time.Now()
		f.schedules[s.Department] = &cp
	}
	return nil
}

type fakeAnnouncementStore struct {
	nextID  int64
	entries map[int64]*models.Announcement
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{entries: make(map[int64]*models.Announcement)}
}

func (f *fakeAnnouncementStore) Create(_ context.Context, a *models.Announcement) error {
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.entries[a.ID] = &cp
	return nil
}

func (f *fakeAnnouncementStore) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	a, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrAnnouncementNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnnouncementStore) ListRange(_ context.Context, from, to time.Time) ([]*models.Announcement, error) {
	var out []*models.Announcement
	for _, a := range f.entries {
		if !a.Date.Before(from) && !a.Date.After(to) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAnnouncementStore) Update(_ context.Context, a *models.Announcement) error {
	if _, ok := f.entries[a.ID]; !ok {
		return repositories.ErrAnnouncementNotFound
	}
	cp := *a
	f.entries[a.ID] = &cp
	return nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.entries[id]; !ok {
		return repositories.ErrAnnouncementNotFound
	}
	delete(f.entries, id)
	return nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) Publish(eventType string, _ interface{}) {
	f.events = append(f.events, eventType)
}
