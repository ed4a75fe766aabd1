package service

import (
	"fmt"
	"strings"

	"github.com/hpmalinova/Household-Manager/config"
)

// RemovalPolicy decides what happens to a member's claimed tasks and
// contributions when the member is removed from a group.
type RemovalPolicy string

const (
	// RemovalUnclaim releases the member's claimed tasks and keeps their
	// contributions on the ledger.
	RemovalUnclaim RemovalPolicy = "unclaim"
	// RemovalBlock refuses removal while the member has claimed tasks or
	// contributions.
	RemovalBlock RemovalPolicy = "block"
)

func ParseRemovalPolicy(s string) (RemovalPolicy, error) {
	switch p := RemovalPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case RemovalUnclaim, RemovalBlock:
		return p, nil
	case "":
		return RemovalUnclaim, nil
	default:
		return "", fmt.Errorf("unknown member removal policy %q", s)
	}
}

type Policy struct {
	AllowLastAdminDemotion bool
	MemberRemoval          RemovalPolicy
	RejectOverContribution bool
}

func DefaultPolicy() Policy {
	return Policy{
		AllowLastAdminDemotion: true,
		MemberRemoval:          RemovalUnclaim,
	}
}

func NewPolicy(cfg *config.Config) (Policy, error) {
	removal, err := ParseRemovalPolicy(cfg.MemberRemovalPolicy)
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		AllowLastAdminDemotion: cfg.AllowLastAdminDemotion,
		MemberRemoval:          removal,
		RejectOverContribution: cfg.RejectOverContribution,
	}, nil
}
