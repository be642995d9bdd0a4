package store

// Teams are modeled and migrated but not yet reachable from any route; the
// product scope for team views is still open. The queries below keep the
// schema usable from maintenance code without widening the HTTP surface.

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func CreateTeam(ctx context.Context, name, description string, managerID int64) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, description, manager_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, description, managerID).Scan(&id)
	if err != nil {
		return 0, err
	}

	// the manager is always a member of their own team
	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, id, managerID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func AddTeamMember(ctx context.Context, teamID, userID int64) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, teamID, userID)
	return err
}

func RemoveTeamMember(ctx context.Context, teamID, userID int64) error {
	ct, err := pool.Exec(ctx, `
		DELETE FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`, teamID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func IsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_members
			WHERE team_id = $1 AND user_id = $2
		)
	`, teamID, userID).Scan(&exists)
	return exists, err
}

func ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := pool.Query(ctx, `
		SELECT
		  t.id,
		  t.name,
		  COALESCE(t.description,''),
		  t.manager_id,
		  t.created_at,
		  COALESCE(COUNT(m.user_id), 0) AS member_count
		FROM teams t
		LEFT JOIN team_members m ON m.team_id = t.id
		GROUP BY t.id
		ORDER BY t.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(
			&t.TeamID,
			&t.Name,
			&t.Description,
			&t.ManagerID,
			&t.CreatedAt,
			&t.MemberCount,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
