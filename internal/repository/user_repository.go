package repository

import (
	"database/sql"
	"stockdash/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser stores a new profile. It returns false when the e-mail is already registered.
func (r *UserRepository) CreateUser(user *model.User) (bool, error) {
	err := r.db.QueryRow(`
		INSERT INTO app_user(id, email, name, country, investment_goals, risk_tolerance, preferred_industry)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at
	`, user.ID, user.Email, user.Name, user.Country, user.InvestmentGoals, user.RiskTolerance, user.PreferredIndustry).Scan(&user.CreatedAt)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *UserRepository) GetUserByID(id string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(`
		SELECT id, email, name, country, investment_goals, risk_tolerance, preferred_industry, created_at
		FROM app_user
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.Country, &u.InvestmentGoals, &u.RiskTolerance, &u.PreferredIndustry, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetUsersForNewsEmail lists every user with an e-mail address, oldest first.
func (r *UserRepository) GetUsersForNewsEmail() ([]model.User, error) {
	rows, err := r.db.Query(`
		SELECT id, email, name, country, investment_goals, risk_tolerance, preferred_industry, created_at
		FROM app_user
		WHERE email <> ''
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Country, &u.InvestmentGoals, &u.RiskTolerance, &u.PreferredIndustry, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Ping() error {
	return r.db.Ping()
}
