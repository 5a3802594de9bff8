package policy

import "time"

// Policy is a row of the externally managed policies table.
type Policy struct {
	ID                  string     `json:"id"`
	PolicyNumber        string     `json:"policy_number"`
	ClientFirstName     string     `json:"client_first_name"`
	ClientLastName      string     `json:"client_last_name"`
	ClientEmail         string     `json:"client_email"`
	CompanyName         string     `json:"company_name"`
	AgentEmail          string     `json:"agent_email"`
	AgentFirstName      string     `json:"agent_first_name"`
	AgentLastName       string     `json:"agent_last_name"`
	AgentCompanyLogoURL string     `json:"agent_company_logo_url"`
	ExpirationDate      *time.Time `json:"expiration_date,omitempty"`
}

func (p *Policy) AgentName() string {
	switch {
	case p.AgentFirstName == "":
		return p.AgentLastName
	case p.AgentLastName == "":
		return p.AgentFirstName
	}
	return p.AgentFirstName + " " + p.AgentLastName
}
