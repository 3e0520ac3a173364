package app

import (
	"context"
	"strings"

	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/security"
)

type UserService struct {
	users     user.Repository
	analytics analytics.Repository
}

func NewUserService(users user.Repository, analytics analytics.Repository) *UserService {
	return &UserService{users: users, analytics: analytics}
}

func (s *UserService) Get(ctx context.Context, id common.UUID, actorID common.UUID, actorRole user.Role) (*user.User, error) {
	if actorRole != user.RoleAdmin && id != actorID {
		return nil, common.NewError(common.CodeForbidden, "cannot read another user", nil)
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

// ProfileUpdate carries the self-service profile fields. Pointers distinguish
// "leave unchanged" from "set empty". Email and role are not here on purpose.
type ProfileUpdate struct {
	Name           *string             `json:"name"`
	Major          *string             `json:"major"`
	GraduationYear *int                `json:"graduationYear"`
	Resume         *string             `json:"resume"`
	Phone          *string             `json:"phone"`
	Skills         *[]string           `json:"skills"`
	GPA            *string             `json:"gpa"`
	Certificates   *[]user.Certificate `json:"certificates"`
	Projects       *[]user.Project     `json:"projects"`
	Experience     *[]user.Experience  `json:"experience"`
	SocialLinks    *user.SocialLinks   `json:"socialLinks"`
	Company        *string             `json:"company"`
	Position       *string             `json:"position"`
	Password       *string             `json:"password"`
}

// UpdateProfile applies role-appropriate fields only; fields for the other
// role are silently ignored rather than rejected.
func (s *UserService) UpdateProfile(ctx context.Context, id common.UUID, actorID common.UUID, input ProfileUpdate) (*user.User, error) {
	if id != actorID {
		return nil, common.NewError(common.CodeForbidden, "cannot update another user", nil)
	}
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		account.Phone = strings.TrimSpace(*input.Phone)
	}
	switch account.Role {
	case user.RoleStudent:
		if input.Major != nil {
			account.Major = strings.TrimSpace(*input.Major)
		}
		if input.GraduationYear != nil {
			account.GraduationYear = *input.GraduationYear
		}
		if input.Resume != nil {
			account.Resume = *input.Resume
		}
		if input.Skills != nil {
			account.Skills = *input.Skills
		}
		if input.GPA != nil {
			account.GPA = strings.TrimSpace(*input.GPA)
		}
		if input.Certificates != nil {
			account.Certificates = *input.Certificates
		}
		if input.Projects != nil {
			account.Projects = *input.Projects
		}
		if input.Experience != nil {
			account.Experience = *input.Experience
		}
		if input.SocialLinks != nil {
			account.SocialLinks = *input.SocialLinks
		}
	case user.RoleRecruiter:
		if input.Company != nil {
			account.Company = strings.TrimSpace(*input.Company)
		}
		if input.Position != nil {
			account.Position = strings.TrimSpace(*input.Position)
		}
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, common.NewValidationError("invalid password", map[string]string{"password": "password must be at least 6 characters long"})
		}
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
		}
		account.PasswordHash = hash
	}
	account.RecomputeProfileComplete()
	updated, err := s.users.Update(ctx, *account)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.profile_updated", UserID: &id, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}
