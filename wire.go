//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/hpmalinova/Household-Manager/config"
	"github.com/hpmalinova/Household-Manager/contract"
	"github.com/hpmalinova/Household-Manager/repository"
	"github.com/hpmalinova/Household-Manager/rest"
	"github.com/hpmalinova/Household-Manager/service"
)

func InitializeApp(cfg *config.Config) (*rest.App, func(), error) {
	wire.Build(
		repository.NewDatabase,
		repository.NewStore,
		wire.Bind(new(contract.Store), new(*repository.GormStore)),
		service.NewPolicy,
		service.NewGroups,
		service.NewMembership,
		service.NewLedger,
		service.NewBoard,
		rest.NewApp,
	)

	return &rest.App{}, nil, nil
}
