package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/bathudi/admissions/internal/app/models"
	"github.com/bathudi/admissions/internal/pkg/apperrors"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// documentColumns maps each document slot to its column
var documentColumns = map[models.DocumentKind]string{
	models.DocumentIDCopy:         "id_document",
	models.DocumentMatric:         "matric_certificate",
	models.DocumentProofOfPayment: "proof_of_payment",
	models.DocumentAdditional1:    "additional_doc_1",
	models.DocumentAdditional2:    "additional_doc_2",
}

var applicationColumns = []string{
	"id", "name", "surname", "age", "country", "mobile", "email", "id_number", "address",
	"education_level", "previous_school", "course_id", "course_title", "form_course_id",
	"qualification", "experience", "message", "status", "rejection_reason", "fee_verified",
	"applied_date", "notes",
	"id_document", "matric_certificate", "proof_of_payment", "additional_doc_1", "additional_doc_2",
}

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: newBuilder(),
	}
}

func scanApplication(row scanner) (*models.Application, error) {
	a := &models.Application{}
	var docs [5]*string
	err := row.Scan(
		&a.ID, &a.Name, &a.Surname, &a.Age, &a.Country, &a.Mobile, &a.Email, &a.IDNumber, &a.Address,
		&a.EducationLevel, &a.PreviousSchool, &a.CourseID, &a.CourseTitle, &a.FormCourseID,
		&a.Qualification, &a.Experience, &a.Message, &a.Status, &a.RejectionReason, &a.FeeVerified,
		&a.AppliedDate, &a.Notes,
		&docs[0], &docs[1], &docs[2], &docs[3], &docs[4],
	)
	if err != nil {
		return nil, err
	}

	a.Documents = models.DocumentSet{}
	for i, kind := range models.DocumentKinds() {
		if docs[i] != nil && *docs[i] != "" {
			a.Documents[kind] = *docs[i]
		}
	}
	return a, nil
}

// CreateApplication inserts an application; documents are attached afterwards
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		SetMap(map[string]interface{}{
			"name":            app.Name,
			"surname":         app.Surname,
			"age":             app.Age,
			"country":         app.Country,
			"mobile":          app.Mobile,
			"email":           app.Email,
			"id_number":       app.IDNumber,
			"address":         app.Address,
			"education_level": app.EducationLevel,
			"previous_school": app.PreviousSchool,
			"course_id":       app.CourseID,
			"course_title":    app.CourseTitle,
			"form_course_id":  app.FormCourseID,
			"qualification":   app.Qualification,
			"experience":      app.Experience,
			"message":         app.Message,
			"status":          app.Status,
			"fee_verified":    app.FeeVerified,
			"notes":           app.Notes,
		}).
		Suffix("RETURNING id, applied_date").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.AppliedDate); err != nil {
		logger.Error().Err(err).Str("email", app.Email).Msg("Error creating application")
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return app.ID, nil
}

// GetApplicationByID retrieves an application
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}
	return app, nil
}

func applicationFilterWhere(filter models.ApplicationFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.FeeVerified != nil {
		where = append(where, squirrel.Eq{"fee_verified": *filter.FeeVerified})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"surname": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"mobile": pattern},
		})
	}
	return where
}

// escapeLike makes user input literal inside an ILIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListApplications returns a page of applications, newest first, and the total match count
func (r *ApplicationRepository) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]*models.Application, int64, error) {
	where := applicationFilterWhere(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("applications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting applications")
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	sql, args, err := r.sb.Select(applicationColumns...).
		From("applications").
		Where(where).
		OrderBy("applied_date DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing applications")
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, total, nil
}

// UpdateApplication saves the admin-editable fields
func (r *ApplicationRepository) UpdateApplication(ctx context.Context, app *models.Application) error {
	return r.update(ctx, app.ID, map[string]interface{}{
		"name":            app.Name,
		"surname":         app.Surname,
		"age":             app.Age,
		"country":         app.Country,
		"mobile":          app.Mobile,
		"email":           app.Email,
		"id_number":       app.IDNumber,
		"address":         app.Address,
		"education_level": app.EducationLevel,
		"previous_school": app.PreviousSchool,
		"course_id":       app.CourseID,
		"course_title":    app.CourseTitle,
		"qualification":   app.Qualification,
		"experience":      app.Experience,
		"message":         app.Message,
		"notes":           app.Notes,
	})
}

// SetApplicationStatus changes only the status
func (r *ApplicationRepository) SetApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": status})
}

// RejectApplication sets the rejected status and stores reason as given
func (r *ApplicationRepository) RejectApplication(ctx context.Context, id int64, reason *string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":           models.StatusRejected,
		"rejection_reason": reason,
	})
}

// SetFeeVerified sets the registration fee flag
func (r *ApplicationRepository) SetFeeVerified(ctx context.Context, id int64, verified bool) error {
	return r.update(ctx, id, map[string]interface{}{"fee_verified": verified})
}

// SetApplicationDocuments writes the path of every slot; missing slots become NULL
func (r *ApplicationRepository) SetApplicationDocuments(ctx context.Context, id int64, docs models.DocumentSet) error {
	values := make(map[string]interface{}, len(documentColumns))
	for kind, column := range documentColumns {
		if path, ok := docs[kind]; ok && path != "" {
			values[column] = path
		} else {
			values[column] = nil
		}
	}
	return r.update(ctx, id, values)
}

func (r *ApplicationRepository) update(ctx context.Context, id int64, values map[string]interface{}) error {
	sql, args, err := r.sb.Update("applications").SetMap(values).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error updating application")
		return fmt.Errorf("error updating application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// DeleteApplication removes an application row
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("applications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error deleting application")
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// ApplicationStats counts applications per status in one pass
func (r *ApplicationRepository) ApplicationStats(ctx context.Context) (models.ApplicationStats, error) {
	var stats models.ApplicationStats
	sql, args, err := applicationStatsQuery(r.sb).ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build application stats query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected, &stats.Contacted, &stats.FeeVerified,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing application stats")
		return stats, fmt.Errorf("error computing application stats: %w", err)
	}
	return stats, nil
}

// applicationStatsQuery scans in the same order as the models.ApplicationStats fields
func applicationStatsQuery(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'pending')",
		"COUNT(*) FILTER (WHERE status = 'approved')",
		"COUNT(*) FILTER (WHERE status = 'rejected')",
		"COUNT(*) FILTER (WHERE status = 'contacted')",
		"COUNT(*) FILTER (WHERE fee_verified)",
	).From("applications")
}
