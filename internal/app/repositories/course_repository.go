package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/consultdesk/internal/app/models"
	"github.com/yigit/consultdesk/internal/pkg/apperrors"
)

// CourseRepository reads the destination reference data: countries, universities and courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// GetCourse retrieves a course with its university and destination country
func (r *CourseRepository) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.name", "c.level", "un.id", "un.name", "co.id", "co.name").
		From("courses c").
		Join("universities un ON un.id = c.university_id").
		Join("countries co ON co.id = un.country_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.Name, &course.Level,
		&course.UniversityID, &course.UniversityName,
		&course.CountryID, &course.CountryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// GetCountry retrieves a destination country by ID
func (r *CourseRepository) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	country := &models.Country{}
	err := r.db.QueryRow(ctx, `SELECT id, name FROM countries WHERE id = $1`, id).Scan(&country.ID, &country.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCountryNotFound
		}
		return nil, fmt.Errorf("error getting country: %w", err)
	}
	return country, nil
}

// ListCountries returns all destination countries ordered by name
func (r *CourseRepository) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying countries: %w", err)
	}
	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Country, error) {
		var c models.Country
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("error collecting countries: %w", err)
	}
	return countries, nil
}
