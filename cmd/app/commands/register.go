package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	registryDomain "github.com/allisson/hname/internal/registry/domain"
	"github.com/allisson/hname/internal/registry/http/dto"
	registryUseCase "github.com/allisson/hname/internal/registry/usecase"
)

// RunRegister stores name under kind and prints the resulting entry.
func RunRegister(
	ctx context.Context,
	useCase registryUseCase.RegistryUseCase,
	logger *slog.Logger,
	w io.Writer,
	name, kind, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	parsedKind, err := registryDomain.ParseKind(kind)
	if err != nil {
		return err
	}

	entry, err := useCase.Register(ctx, name, parsedKind)
	if err != nil {
		return fmt.Errorf("failed to register name: %w", err)
	}

	logger.Info("name registered",
		slog.String("name", entry.Name),
		slog.String("kind", string(entry.Kind)),
		slog.String("hname", entry.HName.String()),
	)

	return outputEntry(w, entry, format)
}

func outputEntry(w io.Writer, entry *registryDomain.Entry, format string) error {
	resp := dto.MapEntryToResponse(entry)
	if format == "json" {
		return writeJSON(w, resp)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", resp.HName, resp.Kind, resp.Name)
	return err
}
