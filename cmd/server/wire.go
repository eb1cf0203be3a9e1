//go:build wireinject

package main

import (
	"github.com/google/wire"

	"web-mcp/internal/domain"
	"web-mcp/internal/infrastructure"
	"web-mcp/internal/infrastructure/config"
	"web-mcp/internal/interfaces"
	"web-mcp/internal/interfaces/httpserver/routes"
)

func CreateApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		routes.RoutesProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
