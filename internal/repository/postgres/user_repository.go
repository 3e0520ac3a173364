package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
)

const userColumns = `id, email, password_hash, name, role, major, graduation_year, resume, phone, skills, gpa,
	certificates, projects, experience, social_links, profile_complete, company, position, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	certificates, projects, experience, socialLinks, err := marshalProfileJSON(u)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode profile", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, name, role, major, graduation_year, resume, phone, skills, gpa,
		certificates, projects, experience, social_links, profile_complete, company, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Major, nullableInt(u.GraduationYear), u.Resume, u.Phone, pq.Array(u.Skills), u.GPA,
		certificates, projects, experience, socialLinks, u.ProfileComplete, u.Company, u.Position, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "user already exists with this email", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	u.UpdatedAt = time.Now().UTC()
	certificates, projects, experience, socialLinks, err := marshalProfileJSON(u)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode profile", err)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1, name = $2, major = $3, graduation_year = $4, resume = $5,
		phone = $6, skills = $7, gpa = $8, certificates = $9, projects = $10, experience = $11, social_links = $12,
		profile_complete = $13, company = $14, position = $15, updated_at = $16
		WHERE id = $17`,
		u.PasswordHash, u.Name, u.Major, nullableInt(u.GraduationYear), u.Resume, u.Phone, pq.Array(u.Skills), u.GPA,
		certificates, projects, experience, socialLinks, u.ProfileComplete, u.Company, u.Position, u.UpdatedAt, u.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return &u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var graduationYear sql.NullInt64
	var certificates, projects, experience, socialLinks []byte
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Major, &graduationYear, &u.Resume, &u.Phone,
		pq.Array(&u.Skills), &u.GPA, &certificates, &projects, &experience, &socialLinks, &u.ProfileComplete,
		&u.Company, &u.Position, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	if graduationYear.Valid {
		u.GraduationYear = int(graduationYear.Int64)
	}
	if err := unmarshalProfileJSON(&u, certificates, projects, experience, socialLinks); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode profile", err)
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}

func marshalProfileJSON(u user.User) ([]byte, []byte, []byte, []byte, error) {
	certificates, err := json.Marshal(u.Certificates)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	projects, err := json.Marshal(u.Projects)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	experience, err := json.Marshal(u.Experience)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	socialLinks, err := json.Marshal(u.SocialLinks)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return certificates, projects, experience, socialLinks, nil
}

func unmarshalProfileJSON(u *user.User, certificates, projects, experience, socialLinks []byte) error {
	if len(certificates) > 0 {
		if err := json.Unmarshal(certificates, &u.Certificates); err != nil {
			return err
		}
	}
	if len(projects) > 0 {
		if err := json.Unmarshal(projects, &u.Projects); err != nil {
			return err
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &u.Experience); err != nil {
			return err
		}
	}
	if len(socialLinks) > 0 {
		if err := json.Unmarshal(socialLinks, &u.SocialLinks); err != nil {
			return err
		}
	}
	return nil
}

func nullableInt(value int) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(value), Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
