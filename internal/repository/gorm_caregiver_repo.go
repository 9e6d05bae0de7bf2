package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/search"
	"github.com/LenzB1987/maid-finderapp/pkg/database"
	"github.com/LenzB1987/maid-finderapp/pkg/log"
)

// GormCaregiverRepository implements CaregiverRepository using GORM.
type GormCaregiverRepository struct {
	db *gorm.DB
}

// NewGormCaregiverRepository creates a new GORM-based caregiver repository.
func NewGormCaregiverRepository(db *gorm.DB) *GormCaregiverRepository {
	return &GormCaregiverRepository{db: db}
}

// caregiverRow is the flat scan target for the profile ⋈ identity join.
type caregiverRow struct {
	UserID            string
	FirstName         string
	LastName          string
	ProfileImageURL   string
	Bio               string
	Experience        int
	HourlyRate        *float64
	MonthlyRate       *float64
	District          string
	Region            string
	Services          database.StringArray
	AgeGroups         database.StringArray
	Availability      database.StringArray
	Languages         database.StringArray
	IsVerified        bool
	BackgroundCheck   bool
	FirstAidCertified bool
	CreatedAt         time.Time
}

func (row *caregiverRow) toDomain() domain.Caregiver {
	return domain.Caregiver{
		ID:                row.UserID,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		ProfileImageURL:   row.ProfileImageURL,
		Bio:               row.Bio,
		Experience:        row.Experience,
		HourlyRate:        row.HourlyRate,
		MonthlyRate:       row.MonthlyRate,
		District:          row.District,
		Region:            row.Region,
		Services:          []string(row.Services),
		AgeGroups:         []string(row.AgeGroups),
		Availability:      []string(row.Availability),
		Languages:         []string(row.Languages),
		IsVerified:        row.IsVerified,
		BackgroundCheck:   row.BackgroundCheck,
		FirstAidCertified: row.FirstAidCertified,
		CreatedAt:         row.CreatedAt,
	}
}

const caregiverColumns = "nanny_profiles.user_id, nanny_profiles.bio, " +
	"nanny_profiles.experience, nanny_profiles.hourly_rate, nanny_profiles.monthly_rate, " +
	"nanny_profiles.district, nanny_profiles.region, nanny_profiles.services, " +
	"nanny_profiles.age_groups, nanny_profiles.availability, nanny_profiles.languages, " +
	"nanny_profiles.is_verified, nanny_profiles.background_check, " +
	"nanny_profiles.first_aid_certified, nanny_profiles.created_at, " +
	"users.first_name, users.last_name, users.profile_image_url"

// likeEscaper neutralizes LIKE metacharacters so the search term matches
// literally. The explicit ESCAPE '!' clause also stops MySQL from treating a
// backslash in the term as its default escape, which would narrow the SQL
// result below the authoritative in-memory predicate.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *GormCaregiverRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.CaregiverModel{}).
		Select(caregiverColumns).
		Joins("INNER JOIN users ON users.id = nanny_profiles.user_id")
}

// FindCandidates returns all caregivers satisfying the plan. Scalar
// predicates and the free-text match are pushed into the WHERE clause; the
// full predicate set is then re-evaluated in memory, which also covers the
// tag-set predicates the JSON-encoded array columns cannot express exactly
// in portable SQL.
func (r *GormCaregiverRepository) FindCandidates(ctx context.Context, plan *search.Plan) ([]domain.Caregiver, error) {
	l := log.Ctx(ctx)

	query := r.baseQuery(ctx)

	if plan.District != nil {
		query = query.Where("nanny_profiles.district = ?", *plan.District)
	}
	if plan.Region != nil {
		query = query.Where("nanny_profiles.region = ?", *plan.Region)
	}
	if plan.MinRate != nil {
		query = query.Where("nanny_profiles.hourly_rate >= ?", *plan.MinRate)
	}
	if plan.MaxRate != nil {
		query = query.Where("nanny_profiles.hourly_rate <= ?", *plan.MaxRate)
	}
	if plan.IsVerified != nil {
		query = query.Where("nanny_profiles.is_verified = ?", *plan.IsVerified)
	}
	if plan.BackgroundCheck != nil {
		query = query.Where("nanny_profiles.background_check = ?", *plan.BackgroundCheck)
	}
	if plan.FirstAidCertified != nil {
		query = query.Where("nanny_profiles.first_aid_certified = ?", *plan.FirstAidCertified)
	}
	if plan.MinExperience != nil {
		query = query.Where("nanny_profiles.experience >= ?", *plan.MinExperience)
	}
	if plan.Text != "" {
		pattern := "%" + escapeLike(strings.ToLower(plan.Text)) + "%"
		query = query.Where(
			"(LOWER(users.first_name) LIKE ? ESCAPE '!' OR LOWER(users.last_name) LIKE ? ESCAPE '!' OR LOWER(nanny_profiles.bio) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern,
		)
	}

	var rows []caregiverRow
	if err := query.Scan(&rows).Error; err != nil {
		l.Error().Err(err).Msg("failed to query caregiver candidates")
		return nil, domain.NewDataAccessError("search caregivers", err)
	}

	candidates := make([]domain.Caregiver, 0, len(rows))
	for i := range rows {
		c := rows[i].toDomain()
		if plan.Matches(&c) {
			candidates = append(candidates, c)
		}
	}

	l.Debug().Int(log.FieldResultCount, len(candidates)).Msg("caregiver candidates loaded")
	return candidates, nil
}

// GetByID retrieves one caregiver joined with its identity row.
func (r *GormCaregiverRepository) GetByID(ctx context.Context, caregiverID string) (*domain.Caregiver, error) {
	l := log.Ctx(ctx)

	var row caregiverRow
	result := r.baseQuery(ctx).
		Where("nanny_profiles.user_id = ?", caregiverID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldCaregiverID, caregiverID).Msg("failed to get caregiver by id")
		return nil, domain.NewDataAccessError("get caregiver", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrCaregiverNotFound
	}

	c := row.toDomain()
	return &c, nil
}
