package repos

import (
	"database/sql"

	"bookcourier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
  id, email, COALESCE(name,'') AS name, COALESCE(image,'') AS image, role,
  created_at, COALESCE(last_login,'') AS last_login`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,name,image,role,created_at,last_login)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
	`, u.ID, u.Email, u.Name, u.Image, u.Role)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Touch refreshes last_login, and the role too when one is pinned for the
// address (demo accounts keep their role across sign-ins).
func (r *UserRepo) Touch(email, pinnedRole string) error {
	if pinnedRole != "" {
		_, err := r.DB.Exec(`
		  UPDATE users SET last_login=CURRENT_TIMESTAMP, role=? WHERE LOWER(email)=LOWER(?)`,
			pinnedRole, email)
		return err
	}
	_, err := r.DB.Exec(`
	  UPDATE users SET last_login=CURRENT_TIMESTAMP WHERE LOWER(email)=LOWER(?)`, email)
	return err
}

func (r *UserRepo) UpdateRole(email, role string) error {
	_, err := r.DB.Exec(`UPDATE users SET role=? WHERE LOWER(email)=LOWER(?)`, role, email)
	return err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY email`)
	return out, err
}
