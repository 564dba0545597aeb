package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	"evergreen/contexts/engagement/gamification-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// IncrementXP is a single upsert: insert the row at delta or add delta to
// the existing total, returning the new value. The database does the
// read-modify-write, so concurrent handlers for one user cannot lose an
// update.
func (r *Repository) IncrementXP(ctx context.Context, userID string, delta int64, updatedAt time.Time) (int64, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, domainerrors.ErrInvalidUserID
	}

	row := userScoreModel{
		UserID:    userID,
		XP:        delta,
		UpdatedAt: updatedAt.UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"xp":         gorm.Expr("user_scores.xp + EXCLUDED.xp"),
				"updated_at": updatedAt.UTC(),
			}),
		}).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "xp"}}}).
		Create(&row).
		Error
	if err != nil {
		return 0, err
	}
	return row.XP, nil
}

func (r *Repository) GetScore(ctx context.Context, userID string) (ports.ScoreRecord, error) {
	userID = strings.TrimSpace(userID)
	var row userScoreModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ScoreRecord{UserID: userID}, nil
		}
		return ports.ScoreRecord{}, err
	}
	return ports.ScoreRecord{
		UserID:    row.UserID,
		XP:        row.XP,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// GrantBadge relies on the (user_id, badge) unique index: a concurrent
// duplicate insert resolves to DO NOTHING, so each badge lands at most
// once per user regardless of interleaving.
func (r *Repository) GrantBadge(ctx context.Context, grant ports.BadgeGrant) (bool, error) {
	if strings.TrimSpace(grant.UserID) == "" || strings.TrimSpace(grant.Badge) == "" {
		return false, domainerrors.ErrInvalidUserID
	}
	row := userBadgeModel{
		GrantID:   strings.TrimSpace(grant.GrantID),
		UserID:    strings.TrimSpace(grant.UserID),
		Badge:     strings.TrimSpace(grant.Badge),
		GrantedAt: grant.GrantedAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListBadges(ctx context.Context, userID string) ([]ports.BadgeGrant, error) {
	var rows []userBadgeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("granted_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	grants := make([]ports.BadgeGrant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, ports.BadgeGrant{
			GrantID:   row.GrantID,
			UserID:    row.UserID,
			Badge:     row.Badge,
			GrantedAt: row.GrantedAt,
		})
	}
	return grants, nil
}

func (r *Repository) AppendFailure(ctx context.Context, failure ports.EventFailure) error {
	row := eventFailureModel{
		FailureID: failure.FailureID,
		EventName: failure.EventName,
		UserID:    failure.UserID,
		Payload:   failure.Payload,
		Cause:     failure.Cause,
		FailedAt:  failure.FailedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "failure_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) ListFailures(ctx context.Context, limit int) ([]ports.EventFailure, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []eventFailureModel
	err := r.db.WithContext(ctx).
		Order("failed_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	failures := make([]ports.EventFailure, 0, len(rows))
	for _, row := range rows {
		failures = append(failures, ports.EventFailure{
			FailureID: row.FailureID,
			EventName: row.EventName,
			UserID:    row.UserID,
			Payload:   row.Payload,
			Cause:     row.Cause,
			FailedAt:  row.FailedAt,
		})
	}
	return failures, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type userScoreModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	XP        int64     `gorm:"column:xp"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userScoreModel) TableName() string {
	return "user_scores"
}

type userBadgeModel struct {
	GrantID   string    `gorm:"column:grant_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;uniqueIndex:idx_user_badge"`
	Badge     string    `gorm:"column:badge;uniqueIndex:idx_user_badge"`
	GrantedAt time.Time `gorm:"column:granted_at"`
}

func (userBadgeModel) TableName() string {
	return "user_badges"
}

type eventFailureModel struct {
	FailureID string    `gorm:"column:failure_id;primaryKey"`
	EventName string    `gorm:"column:event_name"`
	UserID    string    `gorm:"column:user_id"`
	Payload   []byte    `gorm:"column:payload"`
	Cause     string    `gorm:"column:cause"`
	FailedAt  time.Time `gorm:"column:failed_at"`
}

func (eventFailureModel) TableName() string {
	return "gamification_event_failures"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
