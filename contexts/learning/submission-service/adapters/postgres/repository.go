package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"evergreen/contexts/learning/submission-service/domain/entities"
	domainerrors "evergreen/contexts/learning/submission-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSubmissions(ctx context.Context, userID string) ([]entities.Submission, error) {
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	UserID       string    `gorm:"column:user_id;uniqueIndex:idx_user_course_evidence"`
	CourseID     string    `gorm:"column:course_id;uniqueIndex:idx_user_course_evidence"`
	Description  string    `gorm:"column:description"`
	ImageURL     string    `gorm:"column:image_url;uniqueIndex:idx_user_course_evidence"`
	GeotagLat    *float64  `gorm:"column:geotag_lat"`
	GeotagLng    *float64  `gorm:"column:geotag_lng"`
	AIScore      int       `gorm:"column:ai_score"`
	Verified     bool      `gorm:"column:verified"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (submissionModel) TableName() string {
	return "project_submissions"
}

func submissionModelFromEntity(submission entities.Submission) submissionModel {
	row := submissionModel{
		SubmissionID: submission.SubmissionID,
		UserID:       submission.UserID,
		CourseID:     submission.CourseID,
		Description:  submission.Description,
		ImageURL:     submission.ImageURL,
		AIScore:      submission.AIScore,
		Verified:     submission.Verified,
		Status:       string(submission.Status),
		CreatedAt:    submission.CreatedAt.UTC(),
	}
	if submission.Geotag != nil {
		lat := submission.Geotag.Lat
		lng := submission.Geotag.Lng
		row.GeotagLat = &lat
		row.GeotagLng = &lng
	}
	return row
}

func (m submissionModel) toEntity() entities.Submission {
	submission := entities.Submission{
		SubmissionID: m.SubmissionID,
		UserID:       m.UserID,
		CourseID:     m.CourseID,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		AIScore:      m.AIScore,
		Verified:     m.Verified,
		Status:       entities.SubmissionStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
	if m.GeotagLat != nil && m.GeotagLng != nil {
		submission.Geotag = &entities.Geotag{Lat: *m.GeotagLat, Lng: *m.GeotagLng}
	}
	return submission
}
