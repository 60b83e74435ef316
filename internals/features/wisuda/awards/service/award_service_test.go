package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	numberSvc "tahfidz_backend/internals/features/certificates/certificate_numbers/service"
	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	model "tahfidz_backend/internals/features/wisuda/awards/model"
	"tahfidz_backend/internals/databases/testdb"
	"tahfidz_backend/internals/helpers/apperror"
	"tahfidz_backend/internals/helpers/queue"
)

var fixedNow = time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	svc    *Service
	events *queue.MemoryPublisher
	admin  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	store := certSvc.NewStore(db, numberSvc.NewAllocator(nil))
	store.Now = func() time.Time { return fixedNow }

	events := &queue.MemoryPublisher{}
	svc := New(db, store, events, 0)
	svc.Now = func() time.Time { return fixedNow }
	return &fixture{db: db, svc: svc, events: events, admin: uuid.New()}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) student(t *testing.T, name, nis string, gender studentModel.StudentGender, classID *uuid.UUID) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{StudentName: name, StudentNIS: nis, StudentGender: gender, StudentClassID: classID}
	require.NoError(t, f.db.Create(&st).Error)
	return st
}

type examOpt func(*tasmiModel.TasmiExamModel)

func failed(m *tasmiModel.TasmiExamModel) { m.TasmiExamPassed = false; m.TasmiExamFinalScore = ptr(40.0) }

func unassessed(m *tasmiModel.TasmiExamModel) {
	m.TasmiExamPassed = false
	m.TasmiExamAssessedAt = nil
	m.TasmiExamFinalScore = nil
}

func assessedAt(at time.Time) examOpt {
	return func(m *tasmiModel.TasmiExamModel) { m.TasmiExamAssessedAt = &at }
}

func period(p string) examOpt {
	return func(m *tasmiModel.TasmiExamModel) { m.TasmiExamAcademicPeriod = p }
}

// exam menyimpan ujian yang sudah lulus dan dinilai, kecuali diubah opts.
func (f *fixture) exam(t *testing.T, studentID uuid.UUID, opts ...examOpt) tasmiModel.TasmiExamModel {
	t.Helper()
	at := fixedNow.Add(-time.Hour)
	m := tasmiModel.TasmiExamModel{
		TasmiExamStudentID:      studentID,
		TasmiExamJuz:            30,
		TasmiExamAcademicPeriod: "2024/2025-GENAP",
		TasmiExamRegisteredAt:   fixedNow.Add(-30 * 24 * time.Hour),
		TasmiExamStatus:         tasmiModel.TasmiApproved,
		TasmiExamFinalScore:     ptr(88.0),
		TasmiExamPassed:         true,
		TasmiExamAssessedAt:     &at,
	}
	for _, o := range opts {
		o(&m)
	}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func (f *fixture) event(t *testing.T) *model.AwardEventModel {
	t.Helper()
	ev, err := f.svc.CreateEvent(context.Background(), EventInput{Name: "Wisuda Tahfidz 2025"})
	require.NoError(t, err)
	return ev
}

func (f *fixture) category(t *testing.T, eventID uuid.UUID, name string, quota int) *model.AwardCategoryModel {
	t.Helper()
	cat, err := f.svc.CreateCategory(context.Background(), CategoryInput{
		EventID: eventID, GroupName: "Hafalan", Name: name, Quota: quota,
	})
	require.NoError(t, err)
	return cat
}

func (f *fixture) filled(t *testing.T, categoryID uuid.UUID) int {
	t.Helper()
	var cat model.AwardCategoryModel
	require.NoError(t, f.db.Unscoped().Where("award_category_id = ?", categoryID).Take(&cat).Error)
	return cat.AwardCategoryFilled
}

func (f *fixture) recipientCount(t *testing.T, categoryID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.AwardRecipientModel{}).Where("award_recipient_category_id = ?", categoryID).Count(&n).Error)
	return n
}

func TestEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEvent(ctx, EventInput{Name: "  "})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	ev := f.event(t)
	assert.True(t, ev.AwardEventIsActive)

	got, err := f.svc.UpdateEvent(ctx, ev.AwardEventID, EventInput{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, got.AwardEventIsActive)
	assert.Equal(t, "Wisuda Tahfidz 2025", got.AwardEventName)

	active, err := f.svc.ListEvents(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = f.svc.GetEvent(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestCreateCategoryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)

	tests := []struct {
		name string
		in   CategoryInput
		code apperror.Code
	}{
		{"zero quota", CategoryInput{EventID: ev.AwardEventID, Name: "Mumtaz", Quota: 0}, apperror.CodeValidation},
		{"negative quota", CategoryInput{EventID: ev.AwardEventID, Name: "Mumtaz", Quota: -1}, apperror.CodeValidation},
		{"missing name", CategoryInput{EventID: ev.AwardEventID, Quota: 1}, apperror.CodeValidation},
		{"unknown event", CategoryInput{EventID: uuid.New(), Name: "Mumtaz", Quota: 1}, apperror.CodeNotFound},
		{"unknown template", CategoryInput{EventID: ev.AwardEventID, Name: "Mumtaz", Quota: 1, TemplateID: ptr(uuid.New())}, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCategory(ctx, tt.in)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
}

func TestCreateRecipientQuotaSequential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 2)

	for i := 0; i < 3; i++ {
		st := f.student(t, fmt.Sprintf("Santri %d", i), fmt.Sprintf("NIS%03d", i), studentModel.GenderMale, nil)
		ex := f.exam(t, st.StudentID)
		rec, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{
			EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID,
			SourceExamID: &ex.TasmiExamID, ApproverID: f.admin,
		})
		if i < 2 {
			require.NoError(t, err)
			require.NotNil(t, rec.AwardRecipientApprovedAt)
			assert.Equal(t, f.admin, *rec.AwardRecipientApprovedBy)
			continue
		}
		assert.True(t, apperror.Is(err, apperror.CodeQuotaExceeded), "got %v", err)
	}

	assert.Equal(t, 2, f.filled(t, cat.AwardCategoryID))
	assert.EqualValues(t, 2, f.recipientCount(t, cat.AwardCategoryID))
}

func TestCreateRecipientQuotaConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 2)

	const n = 12
	students := make([]studentModel.StudentModel, n)
	for i := range students {
		students[i] = f.student(t, fmt.Sprintf("Santri %d", i), fmt.Sprintf("NIS%03d", i), studentModel.GenderFemale, nil)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		exceeded int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(st studentModel.StudentModel) {
			defer wg.Done()
			_, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{
				EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperror.Is(err, apperror.CodeQuotaExceeded):
				exceeded++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(students[i])
	}
	wg.Wait()

	assert.Equal(t, 2, ok)
	assert.Equal(t, n-2, exceeded)
	assert.EqualValues(t, 2, f.recipientCount(t, cat.AwardCategoryID))
	assert.Equal(t, 2, f.filled(t, cat.AwardCategoryID))
}

func TestCreateRecipientValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	other := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 5)
	st := f.student(t, "Aisyah", "NIS100", studentModel.GenderFemale, nil)
	stranger := f.student(t, "Budi", "NIS101", studentModel.GenderMale, nil)
	failedExam := f.exam(t, st.StudentID, failed)
	strangerExam := f.exam(t, stranger.StudentID)

	tests := []struct {
		name string
		in   CreateRecipientInput
		code apperror.Code
	}{
		{"missing student", CreateRecipientInput{EventID: ev.AwardEventID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin}, apperror.CodeValidation},
		{"missing category", CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, ApproverID: f.admin}, apperror.CodeValidation},
		{"category of another event", CreateRecipientInput{EventID: other.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin}, apperror.CodeValidation},
		{"unknown category", CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: uuid.New(), ApproverID: f.admin}, apperror.CodeNotFound},
		{"unknown student", CreateRecipientInput{EventID: ev.AwardEventID, StudentID: uuid.New(), CategoryID: cat.AwardCategoryID, ApproverID: f.admin}, apperror.CodeNotFound},
		{"failed exam", CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID, SourceExamID: &failedExam.TasmiExamID, ApproverID: f.admin}, apperror.CodeValidation},
		{"exam of another student", CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID, SourceExamID: &strangerExam.TasmiExamID, ApproverID: f.admin}, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateRecipient(ctx, tt.in)
			assert.Equal(t, tt.code, apperror.CodeOf(err), "got %v", err)
		})
	}
	assert.Equal(t, 0, f.filled(t, cat.AwardCategoryID))
}

func TestCreateRecipientSameExamTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	first := f.category(t, ev.AwardEventID, "Mumtaz", 5)
	second := f.category(t, ev.AwardEventID, "Jayyid Jiddan", 5)
	st := f.student(t, "Aisyah", "NIS100", studentModel.GenderFemale, nil)
	ex := f.exam(t, st.StudentID)

	in := CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: first.AwardCategoryID, SourceExamID: &ex.TasmiExamID, ApproverID: f.admin}
	_, err := f.svc.CreateRecipient(ctx, in)
	require.NoError(t, err)

	in.CategoryID = second.AwardCategoryID
	_, err = f.svc.CreateRecipient(ctx, in)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState), "got %v", err)
	assert.Equal(t, 0, f.filled(t, second.AwardCategoryID))
}

func TestFindCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	classA := uuid.New()

	ahmad := f.student(t, "Ahmad Fauzi", "2025001", studentModel.GenderMale, &classA)
	aisyah := f.student(t, "Aisyah Putri", "2025002", studentModel.GenderFemale, nil)
	budi := f.student(t, "Budi", "2025003", studentModel.GenderMale, nil)

	older := f.exam(t, ahmad.StudentID, assessedAt(fixedNow.Add(-48*time.Hour)))
	newer := f.exam(t, aisyah.StudentID, assessedAt(fixedNow.Add(-time.Hour)), period("2025/2026-GANJIL"))
	f.exam(t, budi.StudentID, failed)
	f.exam(t, budi.StudentID, unassessed)
	taken := f.exam(t, budi.StudentID)

	ev := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 5)
	_, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{
		EventID: ev.AwardEventID, StudentID: budi.StudentID, CategoryID: cat.AwardCategoryID,
		SourceExamID: &taken.TasmiExamID, ApproverID: f.admin,
	})
	require.NoError(t, err)

	all, err := f.svc.FindCandidates(ctx, CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.TasmiExamID, all[0].TasmiExamID)
	assert.Equal(t, older.TasmiExamID, all[1].TasmiExamID)
	assert.Equal(t, "Aisyah Putri", all[0].StudentName)

	ids := func(cs []Candidate) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.TasmiExamID)
		}
		return out
	}

	tests := []struct {
		name string
		f    CandidateFilter
		want []uuid.UUID
	}{
		{"search by name", CandidateFilter{Search: "ahMAD"}, []uuid.UUID{older.TasmiExamID}},
		{"search by nis", CandidateFilter{Search: "2025002"}, []uuid.UUID{newer.TasmiExamID}},
		{"class", CandidateFilter{ClassID: &classA}, []uuid.UUID{older.TasmiExamID}},
		{"gender", CandidateFilter{Gender: studentModel.GenderFemale}, []uuid.UUID{newer.TasmiExamID}},
		{"period", CandidateFilter{Period: "2025/2026-GANJIL"}, []uuid.UUID{newer.TasmiExamID}},
		{"limit", CandidateFilter{Limit: 1}, []uuid.UUID{newer.TasmiExamID}},
		{"no match", CandidateFilter{Search: "zzz"}, []uuid.UUID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.FindCandidates(ctx, tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	_, err = f.svc.FindCandidates(ctx, CandidateFilter{Gender: "X"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestFindCandidatesRespectsCap(t *testing.T) {
	f := newFixture(t)
	f.svc.CandidateLimit = 3
	for i := 0; i < 5; i++ {
		st := f.student(t, fmt.Sprintf("Santri %d", i), fmt.Sprintf("NIS%03d", i), studentModel.GenderMale, nil)
		f.exam(t, st.StudentID)
	}

	got, err := f.svc.FindCandidates(context.Background(), CandidateFilter{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpdateRecipientCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	from := f.category(t, ev.AwardEventID, "Mumtaz", 2)
	full := f.category(t, ev.AwardEventID, "Jayyid Jiddan", 1)
	free := f.category(t, ev.AwardEventID, "Jayyid", 3)

	a := f.student(t, "A", "NIS001", studentModel.GenderMale, nil)
	b := f.student(t, "B", "NIS002", studentModel.GenderMale, nil)
	rec, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: a.StudentID, CategoryID: from.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)
	_, err = f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: b.StudentID, CategoryID: full.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)

	_, err = f.svc.UpdateRecipientCategory(ctx, rec.AwardRecipientID, full.AwardCategoryID)
	assert.True(t, apperror.Is(err, apperror.CodeQuotaExceeded), "got %v", err)
	assert.Equal(t, 1, f.filled(t, from.AwardCategoryID))
	assert.Equal(t, 1, f.filled(t, full.AwardCategoryID))

	moved, err := f.svc.UpdateRecipientCategory(ctx, rec.AwardRecipientID, free.AwardCategoryID)
	require.NoError(t, err)
	assert.Equal(t, free.AwardCategoryID, moved.AwardRecipientCategoryID)
	assert.Equal(t, 0, f.filled(t, from.AwardCategoryID))
	assert.Equal(t, 1, f.filled(t, free.AwardCategoryID))

	_, err = f.svc.UpdateRecipientCategory(ctx, uuid.New(), free.AwardCategoryID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, _, err = f.svc.IssueAwardCertificate(ctx, rec.AwardRecipientID, f.admin)
	require.NoError(t, err)
	_, err = f.svc.UpdateRecipientCategory(ctx, rec.AwardRecipientID, from.AwardCategoryID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}

func TestRemoveRecipient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 2)
	a := f.student(t, "A", "NIS001", studentModel.GenderMale, nil)
	b := f.student(t, "B", "NIS002", studentModel.GenderMale, nil)

	ra, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: a.StudentID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)
	rb, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: b.StudentID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveRecipient(ctx, ra.AwardRecipientID))
	assert.Equal(t, 1, f.filled(t, cat.AwardCategoryID))

	_, _, err = f.svc.IssueAwardCertificate(ctx, rb.AwardRecipientID, f.admin)
	require.NoError(t, err)
	err = f.svc.RemoveRecipient(ctx, rb.AwardRecipientID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
	assert.Equal(t, 1, f.filled(t, cat.AwardCategoryID))

	err = f.svc.RemoveRecipient(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestIssueAwardCertificate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	catTpl := certModel.CertificateTemplateModel{
		CertificateTemplateName: "Mumtaz", CertificateTemplateType: certModel.CertificateTypeAward, CertificateTemplateIsActive: true,
	}
	defTpl := certModel.CertificateTemplateModel{
		CertificateTemplateName: "Default Award", CertificateTemplateType: certModel.CertificateTypeAward,
		CertificateTemplateIsDefault: true, CertificateTemplateIsActive: true,
	}
	require.NoError(t, f.db.Create(&catTpl).Error)
	require.NoError(t, f.db.Create(&defTpl).Error)

	ev := f.event(t)
	withTpl, err := f.svc.CreateCategory(ctx, CategoryInput{EventID: ev.AwardEventID, Name: "Mumtaz", Quota: 5, TemplateID: &catTpl.CertificateTemplateID})
	require.NoError(t, err)
	plain := f.category(t, ev.AwardEventID, "Jayyid", 5)

	a := f.student(t, "A", "NIS001", studentModel.GenderMale, nil)
	b := f.student(t, "B", "NIS002", studentModel.GenderMale, nil)
	ra, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: a.StudentID, CategoryID: withTpl.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)
	rb, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: b.StudentID, CategoryID: plain.AwardCategoryID, ApproverID: f.admin})
	require.NoError(t, err)

	certA, created, err := f.svc.IssueAwardCertificate(ctx, ra.AwardRecipientID, f.admin)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, certModel.CertificateTypeAward, certA.CertificateType)
	assert.Equal(t, "CERT/AWARD/20250601/0001", certA.CertificateNumber)
	require.NotNil(t, certA.CertificateTemplateID)
	assert.Equal(t, catTpl.CertificateTemplateID, *certA.CertificateTemplateID)

	again, created, err := f.svc.IssueAwardCertificate(ctx, ra.AwardRecipientID, uuid.New())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, certA.CertificateID, again.CertificateID)

	certB, _, err := f.svc.IssueAwardCertificate(ctx, rb.AwardRecipientID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, "CERT/AWARD/20250601/0002", certB.CertificateNumber)
	require.NotNil(t, certB.CertificateTemplateID)
	assert.Equal(t, defTpl.CertificateTemplateID, *certB.CertificateTemplateID)

	assert.Equal(t, 2, f.events.Count(queue.EventCertificateIssued))

	_, _, err = f.svc.IssueAwardCertificate(ctx, uuid.New(), f.admin)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	unapproved := model.AwardRecipientModel{
		AwardRecipientEventID: ev.AwardEventID, AwardRecipientCategoryID: plain.AwardCategoryID, AwardRecipientStudentID: a.StudentID,
	}
	require.NoError(t, f.db.Create(&unapproved).Error)
	_, _, err = f.svc.IssueAwardCertificate(ctx, unapproved.AwardRecipientID, f.admin)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	list, err := f.svc.ListRecipients(ctx, RecipientFilter{EventID: ev.AwardEventID, CategoryID: &withTpl.AwardCategoryID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].CertificateNumber)
	assert.Equal(t, certA.CertificateNumber, *list[0].CertificateNumber)
	assert.Equal(t, "Mumtaz", list[0].CategoryName)
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.event(t)
	cat := f.category(t, ev.AwardEventID, "Mumtaz", 3)
	a := f.student(t, "A", "NIS001", studentModel.GenderMale, nil)
	b := f.student(t, "B", "NIS002", studentModel.GenderMale, nil)

	for _, st := range []studentModel.StudentModel{a, b} {
		_, err := f.svc.CreateRecipient(ctx, CreateRecipientInput{EventID: ev.AwardEventID, StudentID: st.StudentID, CategoryID: cat.AwardCategoryID, ApproverID: f.admin})
		require.NoError(t, err)
	}

	_, err := f.svc.UpdateCategory(ctx, cat.AwardCategoryID, CategoryPatch{Quota: ptr(1)})
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))

	_, err = f.svc.UpdateCategory(ctx, cat.AwardCategoryID, CategoryPatch{Quota: ptr(0)})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	got, err := f.svc.UpdateCategory(ctx, cat.AwardCategoryID, CategoryPatch{Quota: ptr(2), Name: ptr("Mumtaz Murtafi'")})
	require.NoError(t, err)
	assert.Equal(t, 2, got.AwardCategoryQuota)
	assert.Equal(t, "Mumtaz Murtafi'", got.AwardCategoryName)

	_, err = f.svc.UpdateCategory(ctx, uuid.New(), CategoryPatch{Quota: ptr(5)})
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	err = f.svc.DeleteCategory(ctx, cat.AwardCategoryID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))

	empty := f.category(t, ev.AwardEventID, "Jayyid", 1)
	require.NoError(t, f.svc.DeleteCategory(ctx, empty.AwardCategoryID))
	_, err = f.svc.GetCategory(ctx, empty.AwardCategoryID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	err = f.svc.DeleteCategory(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	cats, err := f.svc.ListCategories(ctx, ev.AwardEventID)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
