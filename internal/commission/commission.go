// Package commission computes the financial breakdown of a completed sale
// transaction: the agency/agent-pool split of the service fee and the
// per-agent commission distributions.
package commission

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/realtydesk/transaction-manager-backend/internal/model"
)

// ErrMissingAgentSnapshot indicates the caller invoked Split without resolving
// one of the agents first. Agent resolution is the orchestrator's job; the
// calculator performs no lookups.
var ErrMissingAgentSnapshot = errors.New("agent snapshot missing")

var two = decimal.NewFromInt(2)

// Split computes the breakdown of totalFee between the agency and the agents.
//
// Half of the fee goes to the agency, half to the agent pool. When listing and
// selling are the same agent, the pool goes to them undivided with role
// "both"; otherwise the pool is halved between them, listing row first.
//
// Halves are derived by subtraction from the whole, so the two agency/pool
// amounts always recompose totalFee exactly and the distribution amounts
// always recompose the pool exactly, whatever the fee's scale.
func Split(totalFee decimal.Decimal, listing, selling model.AgentSnapshot) (*model.FinancialBreakdown, error) {
	if listing.ID == "" || selling.ID == "" {
		return nil, ErrMissingAgentSnapshot
	}

	agencyAmount := totalFee.Div(two)
	agentPool := totalFee.Sub(agencyAmount)

	var distributions []model.CommissionDistribution
	if listing.ID == selling.ID {
		distributions = []model.CommissionDistribution{
			{
				AgentID:   listing.ID,
				AgentName: listing.Name,
				Role:      model.RoleBoth,
				Amount:    agentPool,
			},
		}
	} else {
		listingShare := agentPool.Div(two)
		sellingShare := agentPool.Sub(listingShare)
		distributions = []model.CommissionDistribution{
			{
				AgentID:   listing.ID,
				AgentName: listing.Name,
				Role:      model.RoleListing,
				Amount:    listingShare,
			},
			{
				AgentID:   selling.ID,
				AgentName: selling.Name,
				Role:      model.RoleSelling,
				Amount:    sellingShare,
			},
		}
	}

	return &model.FinancialBreakdown{
		AgencyAmount:       agencyAmount,
		AgentPoolAmount:    agentPool,
		AgentDistributions: distributions,
	}, nil
}
