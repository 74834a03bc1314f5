package commands

import (
	"errors"

	"oms/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
)

// ExpireOrdersCommand triggers expiry of active orders whose validity has ended.
// It carries no data; the cut-off is the handler's current time.
type ExpireOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireOrdersCommand() ExpireOrdersCommand {
	return ExpireOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}
