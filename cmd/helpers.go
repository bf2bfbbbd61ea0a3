package cmd

import (
	"fmt"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/address"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
)

// openStore returns the application store after validating key.
func openStore(key string) (app.Store, error) {
	if err := config.ValidateKey(key); err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	return app.Default.OpenStore()
}

// saveStore persists s. Errors that already carry an exit code pass through.
func saveStore(s app.Store) error {
	err := s.Save()
	if err == nil {
		return nil
	}

	var forageErr *errors.ForageError
	if errors.As(err, &forageErr) {
		return err
	}
	return errors.StoreError("failed to save store", err)
}

// parseAddresses parses every argument as host:port.
func parseAddresses(values []string) ([]address.Address, error) {
	addrs := make([]address.Address, 0, len(values))
	for _, v := range values {
		a, err := address.Parse(v)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

func notFound(key string) error {
	return errors.New(errors.ExitGeneralError, fmt.Sprintf("no address stored under %q", key))
}
