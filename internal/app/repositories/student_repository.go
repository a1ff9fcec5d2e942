package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/dberrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentApplicationConstraint = "students_application_id_key"

var studentColumns = []string{
	"s.id", "s.application_id", "s.student_number", "s.name", "s.surname", "s.email", "s.phone",
	"s.course_id", "COALESCE(c.title, '')", "s.enrollment_date", "s.completion_date", "s.status",
	"s.certificate_id", "s.address",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanStudent(row scanner) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.ApplicationID, &s.StudentNumber, &s.Name, &s.Surname, &s.Email, &s.Phone,
		&s.CourseID, &s.CourseTitle, &s.EnrollmentDate, &s.CompletionDate, &s.Status,
		&s.CertificateID, &s.Address,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		LeftJoin("courses c ON c.id = s.course_id")
}

func (r *StudentRepository) getOne(ctx context.Context, pred interface{}) (*models.Student, error) {
	sql, args, err := r.selectStudents().Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// CreateStudent inserts a student
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		SetMap(map[string]interface{}{
			"application_id":  student.ApplicationID,
			"student_number":  student.StudentNumber,
			"name":            student.Name,
			"surname":         student.Surname,
			"email":           student.Email,
			"phone":           student.Phone,
			"course_id":       student.CourseID,
			"enrollment_date": student.EnrollmentDate,
			"completion_date": student.CompletionDate,
			"status":          student.Status,
			"certificate_id":  student.CertificateID,
			"address":         student.Address,
		}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentApplicationConstraint) {
			return 0, apperrors.ErrStudentExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error creating student")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return student.ID, nil
}

// GetStudentByID retrieves a student
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetStudentByApplicationID retrieves the student created from an application
func (r *StudentRepository) GetStudentByApplicationID(ctx context.Context, applicationID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.application_id": applicationID})
}

// ListStudents returns a page of students, most recently enrolled first
func (r *StudentRepository) ListStudents(ctx context.Context, status *models.StudentStatus, page, size int) ([]*models.Student, int64, error) {
	where := squirrel.And{}
	if status != nil {
		where = append(where, squirrel.Eq{"s.status": *status})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("students s").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := r.selectStudents().
		Where(where).
		OrderBy("s.enrollment_date DESC", "s.id DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// UpdateStudent saves the editable student fields
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":            student.Name,
			"surname":         student.Surname,
			"email":           student.Email,
			"phone":           student.Phone,
			"course_id":       student.CourseID,
			"enrollment_date": student.EnrollmentDate,
			"completion_date": student.CompletionDate,
			"status":          student.Status,
			"certificate_id":  student.CertificateID,
			"address":         student.Address,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent removes a student
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// CountStudents counts all students
func (r *StudentRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
