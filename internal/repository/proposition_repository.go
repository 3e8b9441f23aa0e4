package repository

import (
	"database/sql"
	"time"

	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/lib/pq"
)

type PropositionRepository struct {
	db *sql.DB
}

func NewPropositionRepository(db *sql.DB) *PropositionRepository {
	return &PropositionRepository{db: db}
}

func (r *PropositionRepository) GetActive() ([]model.Proposition, error) {
	return r.list(false)
}

func (r *PropositionRepository) GetAll() ([]model.Proposition, error) {
	return r.list(true)
}

func (r *PropositionRepository) list(includeArchived bool) ([]model.Proposition, error) {
	query := `
		SELECT proposition_id, proposition_text, search_queries, is_archived, created_at
		FROM proposition
	`
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var propositions []model.Proposition
	for rows.Next() {
		var p model.Proposition
		err := rows.Scan(&p.PropositionID, &p.PropositionText, pq.Array(&p.SearchQueries), &p.IsArchived, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		propositions = append(propositions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return propositions, nil
}

func (r *PropositionRepository) GetByID(id string) (*model.Proposition, error) {
	var p model.Proposition
	err := r.db.QueryRow(`
		SELECT proposition_id, proposition_text, search_queries, is_archived, created_at
		FROM proposition
		WHERE proposition_id = $1
	`, id).Scan(&p.PropositionID, &p.PropositionText, pq.Array(&p.SearchQueries), &p.IsArchived, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PropositionRepository) Create(p *model.Proposition) (bool, error) {
	var created time.Time
	err := r.db.QueryRow(`
		INSERT INTO proposition(proposition_id, proposition_text, search_queries, is_archived)
		VALUES($1, $2, $3, FALSE)
		ON CONFLICT (proposition_id) DO NOTHING
		RETURNING created_at
	`, p.PropositionID, p.PropositionText, pq.Array(p.SearchQueries)).Scan(&created)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	p.CreatedAt = created
	return true, nil
}

func (r *PropositionRepository) Archive(id string) error {
	_, err := r.db.Exec(`
		UPDATE proposition SET is_archived = TRUE WHERE proposition_id = $1
	`, id)
	return err
}
