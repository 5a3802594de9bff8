package policy

import (
	"context"
	"database/sql"
	"errors"

	apperrors "agency-forms/internal/common/errors"
	"agency-forms/internal/database"
)

// PolicyRepository reads the policies table. Lookups of unknown policies return nil, nil.
type PolicyRepository interface {
	GetByID(ctx context.Context, id string) (*Policy, error)
	GetByPolicyNumber(ctx context.Context, number string) (*Policy, error)
}

type PolicyRepositoryImpl struct {
	db *sql.DB
}

func NewPolicyRepository(pg *database.PostgresDB) PolicyRepository {
	return &PolicyRepositoryImpl{db: pg.DB}
}

const selectPolicy = `SELECT id, policy_number, client_first_name, client_last_name, client_email,
	company_name, agent_email, agent_first_name, agent_last_name, agent_company_logo_url, expiration_date
	FROM policies`

func (r *PolicyRepositoryImpl) GetByID(ctx context.Context, id string) (*Policy, error) {
	return r.queryOne(ctx, selectPolicy+" WHERE id = $1", id)
}

func (r *PolicyRepositoryImpl) GetByPolicyNumber(ctx context.Context, number string) (*Policy, error) {
	return r.queryOne(ctx, selectPolicy+" WHERE policy_number = $1", number)
}

func (r *PolicyRepositoryImpl) queryOne(ctx context.Context, query string, arg string) (*Policy, error) {
	var (
		p                                             Policy
		clientFirst, clientLast, clientEmail, company sql.NullString
		agentEmail, agentFirst, agentLast, logoURL    sql.NullString
		expiration                                    sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.PolicyNumber, &clientFirst, &clientLast, &clientEmail,
		&company, &agentEmail, &agentFirst, &agentLast, &logoURL, &expiration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("get policy", err)
	}

	p.ClientFirstName = clientFirst.String
	p.ClientLastName = clientLast.String
	p.ClientEmail = clientEmail.String
	p.CompanyName = company.String
	p.AgentEmail = agentEmail.String
	p.AgentFirstName = agentFirst.String
	p.AgentLastName = agentLast.String
	p.AgentCompanyLogoURL = logoURL.String
	if expiration.Valid {
		t := expiration.Time
		p.ExpirationDate = &t
	}
	return &p, nil
}
