package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/learning-api/internal/domain/entity"
	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// Причины, по которым сертификат не выдан
const (
	ReasonNoLessons         = "no lessons"
	ReasonNoQuizzes         = "no quizzes"
	ReasonLessonsIncomplete = "lessons incomplete"
	ReasonQuizzesNotPassed  = "quizzes not passed"
)

// CertificateDateLayout - формат даты выдачи в документе сертификата
const CertificateDateLayout = "January 02, 2006"

// DefaultInstructorName подставляется, если у курса нет автора
const DefaultInstructorName = "Platform Administrator"

// maxCodeAttempts - сколько раз генерируется новый код при коллизии
const maxCodeAttempts = 3

// CertificateCheck - результат проверки права на сертификат
type CertificateCheck struct {
	Eligible         bool
	Certificate      *entity.Certificate
	NewlyIssued      bool
	Reason           string
	CompletedLessons int
	TotalLessons     int
	PassedQuizzes    int
	TotalQuizzes     int
}

// CertificateDocument - данные для слоя, который рисует файл сертификата
type CertificateDocument struct {
	StudentName    string `json:"student_name"`
	CourseTitle    string `json:"course_title"`
	InstructorName string `json:"instructor_name"`
	IssuedDate     string `json:"issued_date"`
	Code           string `json:"certificate_code"`
}

// CertificateVerification - публичный ответ проверки сертификата по коду
type CertificateVerification struct {
	Valid       bool      `json:"valid"`
	Code        string    `json:"certificate_code"`
	StudentName string    `json:"student_name"`
	CourseTitle string    `json:"course_title"`
	IssuedAt    time.Time `json:"issued_at"`
}

// CertificateService проверяет условия окончания курса и выдает сертификаты
type CertificateService struct {
	certificateRepo repository.CertificateRepository
	courseRepo      repository.CourseRepository
	quizRepo        repository.QuizRepository
	attemptRepo     repository.AttemptRepository
	completionRepo  repository.CompletionRepository
	userRepo        repository.UserRepository
	access          courseAccess
	emailService    EmailService

	now     func() time.Time
	newCode func() string
}

// NewCertificateService создает новый сервис сертификатов
func NewCertificateService(
	certificateRepo repository.CertificateRepository,
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	completionRepo repository.CompletionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	userRepo repository.UserRepository,
	emailService EmailService,
) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		courseRepo:      courseRepo,
		quizRepo:        quizRepo,
		attemptRepo:     attemptRepo,
		completionRepo:  completionRepo,
		userRepo:        userRepo,
		access:          courseAccess{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo},
		emailService:    emailService,
		now:             time.Now,
		newCode:         generateCertificateCode,
	}
}

// generateCertificateCode возвращает 10 случайных символов [0-9A-F]
func generateCertificateCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:entity.CertificateCodeLength]
}

// CheckCertificate проверяет право студента на сертификат и выдает его, если все условия выполнены.
// Уже выданный сертификат возвращается без повторной проверки условий.
// Прогресс всегда считается по отметкам о прохождении, кэш Enrollment.progress не используется.
func (s *CertificateService) CheckCertificate(ctx context.Context, actor Actor, courseID uint) (*CertificateCheck, error) {
	course, err := s.access.requireEnrollment(ctx, actor, courseID, false)
	if err != nil {
		return nil, err
	}

	lessonIDs, err := s.courseRepo.GetLessonIDs(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	completed := int64(0)
	if len(lessonIDs) > 0 {
		completed, err = s.completionRepo.CountByUserAndLessons(ctx, actor.UserID, lessonIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed lessons: %w", err)
		}
	}

	check := &CertificateCheck{
		CompletedLessons: int(completed),
		TotalLessons:     len(lessonIDs),
	}

	existing, err := s.certificateRepo.GetByUserAndCourse(ctx, actor.UserID, course.ID)
	if err == nil {
		check.Eligible = true
		check.Certificate = existing
		return check, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	if check.TotalLessons == 0 {
		check.Reason = ReasonNoLessons
		return check, nil
	}

	quizzes, err := s.quizRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quizzes: %w", err)
	}
	check.TotalQuizzes = len(quizzes)
	if check.TotalQuizzes == 0 {
		check.Reason = ReasonNoQuizzes
		return check, nil
	}

	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}
	best, err := s.attemptRepo.GetBestByUserAndQuizzes(ctx, actor.UserID, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load best attempts: %w", err)
	}
	for _, id := range quizIDs {
		if attempt, ok := best[id]; ok && attempt.Passed {
			check.PassedQuizzes++
		}
	}

	if check.CompletedLessons < check.TotalLessons {
		check.Reason = ReasonLessonsIncomplete
		return check, nil
	}
	if check.PassedQuizzes < check.TotalQuizzes {
		check.Reason = ReasonQuizzesNotPassed
		return check, nil
	}

	certificate, issued, err := s.issue(ctx, actor.UserID, course.ID)
	if err != nil {
		return nil, err
	}
	check.Eligible = true
	check.Certificate = certificate
	check.NewlyIssued = issued

	if issued {
		log.Printf("[CertificateService] Выдан сертификат %s пользователю #%d за курс #%d", certificate.Code, actor.UserID, course.ID)
		s.notifyIssued(ctx, certificate, course)
	}
	return check, nil
}

// issue создает сертификат. Уникальный индекс (user_id, course_id) гарантирует,
// что при гонке запись создаст только один запрос; остальные перечитывают её.
func (s *CertificateService) issue(ctx context.Context, userID, courseID uint) (*entity.Certificate, bool, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		certificate := &entity.Certificate{
			UserID:   userID,
			CourseID: courseID,
			Code:     s.newCode(),
			IssuedAt: s.now(),
		}

		err := s.certificateRepo.Create(ctx, certificate)
		switch {
		case err == nil:
			return certificate, true, nil
		case errors.Is(err, repository.ErrCertificateAlreadyIssued):
			existing, getErr := s.certificateRepo.GetByUserAndCourse(ctx, userID, courseID)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to reload issued certificate: %w", getErr)
			}
			log.Printf("[CertificateService] Сертификат для пользователя #%d и курса #%d уже выдан параллельным запросом", userID, courseID)
			return existing, false, nil
		case errors.Is(err, repository.ErrCertificateCodeTaken):
			log.Printf("[CertificateService] Коллизия кода сертификата %s, генерируем новый", certificate.Code)
			continue
		default:
			return nil, false, fmt.Errorf("failed to create certificate: %w", err)
		}
	}
	return nil, false, fmt.Errorf("failed to generate unique certificate code after %d attempts", maxCodeAttempts)
}

// notifyIssued отправляет письмо о выдаче. Ошибка отправки только логируется.
func (s *CertificateService) notifyIssued(ctx context.Context, certificate *entity.Certificate, course *entity.Course) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, certificate.UserID)
	if err != nil {
		log.Printf("[CertificateService] Не удалось загрузить пользователя #%d для письма: %v", certificate.UserID, err)
		return
	}

	msg := CertificateEmail{
		ToEmail:     user.Email,
		StudentName: user.DisplayName(),
		CourseTitle: course.Title,
		Code:        certificate.Code,
		IssuedAt:    certificate.IssuedAt,
	}
	if err := s.emailService.SendCertificateIssued(ctx, msg); err != nil {
		log.Printf("[CertificateService] Ошибка отправки письма о сертификате %s: %v", certificate.Code, err)
	}
}

// ListCertificates возвращает сертификаты пользователя
func (s *CertificateService) ListCertificates(ctx context.Context, actor Actor) ([]entity.Certificate, error) {
	return s.certificateRepo.ListByUser(ctx, actor.UserID)
}

// GetCertificate возвращает сертификат владельца. Чужой сертификат выглядит как несуществующий.
func (s *CertificateService) GetCertificate(ctx context.Context, actor Actor, id uint) (*entity.Certificate, error) {
	certificate, err := s.certificateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if certificate.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: certificate #%d", apperrors.ErrNotFound, id)
	}
	return certificate, nil
}

// GetCertificateDocument собирает данные для печатной формы сертификата
func (s *CertificateService) GetCertificateDocument(ctx context.Context, actor Actor, id uint) (*CertificateDocument, error) {
	certificate, err := s.GetCertificate(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetByID(ctx, certificate.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate owner: %w", err)
	}
	course, err := s.courseRepo.GetWithInstructor(ctx, certificate.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate course: %w", err)
	}

	instructor := DefaultInstructorName
	if course.Instructor != nil {
		if name := course.Instructor.DisplayName(); name != "" {
			instructor = name
		}
	}

	return &CertificateDocument{
		StudentName:    student.DisplayName(),
		CourseTitle:    course.Title,
		InstructorName: instructor,
		IssuedDate:     certificate.IssuedAt.Format(CertificateDateLayout),
		Code:           certificate.Code,
	}, nil
}

// VerifyCertificate проверяет сертификат по коду (публичный метод, регистр кода не важен)
func (s *CertificateService) VerifyCertificate(ctx context.Context, code string) (*CertificateVerification, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: certificate code is required", apperrors.ErrValidation)
	}

	certificate, err := s.certificateRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	verification := &CertificateVerification{
		Valid:    true,
		Code:     certificate.Code,
		IssuedAt: certificate.IssuedAt,
	}
	if certificate.User != nil {
		verification.StudentName = certificate.User.DisplayName()
	}
	if certificate.Course != nil {
		verification.CourseTitle = certificate.Course.Title
	}
	return verification, nil
}
