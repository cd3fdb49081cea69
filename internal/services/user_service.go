package services

import (
	"errors"

	"bookcourier/internal/domain"
	"bookcourier/internal/repos"

	"github.com/google/uuid"
)

type UserService struct {
	Users    *repos.UserRepo
	Requests *repos.SellerRequestRepo
	// RoleOverrides pins roles for fixed demo addresses.
	RoleOverrides map[string]string
}

func NewUserService(users *repos.UserRepo, reqs *repos.SellerRequestRepo, overrides map[string]string) *UserService {
	return &UserService{Users: users, Requests: reqs, RoleOverrides: overrides}
}

// UpsertOnSignIn creates the account on first sign-in (default role
// customer) or refreshes last_login on a return visit. The role is always
// server-assigned; nothing the client sends can influence it.
func (s *UserService) UpsertOnSignIn(email, name, image string) (*domain.User, error) {
	pinned := s.RoleOverrides[email]

	existing, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.Users.Touch(email, pinned); err != nil {
			return nil, err
		}
		return s.Users.ByEmail(email)
	}

	role := pinned
	if role == "" {
		role = "customer"
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Image: image,
		Role:  role,
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			// Concurrent first sign-in; the other request created it.
			return s.Users.ByEmail(email)
		}
		return nil, err
	}
	return s.Users.ByEmail(email)
}

func (s *UserService) Role(email string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrNotFound
	}
	return u.Role, nil
}

// RequestSeller files an escalation request; one pending request per account.
func (s *UserService) RequestSeller(email string) error {
	err := s.Requests.Create(email)
	if errors.Is(err, repos.ErrDuplicate) {
		return ErrConflict
	}
	return err
}

// SetRole applies an admin role decision and clears any pending request.
func (s *UserService) SetRole(email, role string) error {
	if role != "customer" && role != "seller" && role != "admin" {
		return ErrBadTransition
	}
	if err := s.Users.UpdateRole(email, role); err != nil {
		return err
	}
	return s.Requests.DeleteByEmail(email)
}
