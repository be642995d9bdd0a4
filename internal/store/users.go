package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, role, first_name, last_name,
       COALESCE(department,''), is_active, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Firstname,
		&u.Lastname,
		&u.Department,
		&u.IsActive,
		&u.CreatedAt,
	)
	return u, err
}

func GetUserByID(ctx context.Context, id int64) (User, error) {
	row := pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	return exists, err
}

func EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func InsertUser(ctx context.Context, u User) (int64, error) {
	var department *string
	if u.Department != "" {
		department = &u.Department
	}

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, first_name, last_name, department)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, u.Username, u.Email, u.PasswordHash, u.Role, u.Firstname, u.Lastname, department).Scan(&id)
	return id, err
}

func ListUsers(ctx context.Context, activeOnly bool) ([]User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY username ASC`
	if activeOnly {
		q = `SELECT ` + userColumns + ` FROM users WHERE is_active ORDER BY username ASC`
	}

	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UsersByID indexes a user slice for aggregation joins.
func UsersByID(users []User) map[int64]User {
	out := make(map[int64]User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}

func ToggleUserActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := pool.QueryRow(ctx, `
		UPDATE users SET is_active = NOT is_active
		WHERE id = $1
		RETURNING is_active
	`, id).Scan(&active)
	return active, err
}

func UpdateUserPassword(ctx context.Context, id int64, digest string) error {
	ct, err := pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, digest, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func CountUsers(ctx context.Context) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
