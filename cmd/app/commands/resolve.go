package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/hname/internal/registry/http/dto"
	registryUseCase "github.com/allisson/hname/internal/registry/usecase"
)

// RunResolve prints the registered entry owning the given hex hname.
func RunResolve(
	ctx context.Context,
	useCase registryUseCase.RegistryUseCase,
	logger *slog.Logger,
	w io.Writer,
	rawHName, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	param := dto.HNameParam{HName: rawHName}
	target, err := param.Value()
	if err != nil {
		return err
	}

	logger.Debug("resolving hname", slog.String("hname", target.String()))

	entry, err := useCase.GetByHName(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	return outputEntry(w, entry, format)
}
