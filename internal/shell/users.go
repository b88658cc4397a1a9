package shell

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/service/userservice"
	"github.com/GlebRadaev/bankledger/pkg/validate"
)

// newUser asks for the tax id first so a duplicate is rejected before the
// remaining fields are typed in.
func (s *Shell) newUser(ctx context.Context) error {
	taxID, err := s.readLine("Enter the tax id (numbers only): ")
	if err != nil {
		return err
	}
	if !validate.IsTaxID(taxID) {
		s.fail("Operation failed! The tax id must contain only digits.")
		return nil
	}
	if _, err := s.users.Lookup(ctx, taxID); err == nil {
		return s.report(userservice.ErrDuplicateUser)
	} else if !errors.Is(err, userservice.ErrUserNotFound) {
		return s.report(err)
	}

	req := dto.RegisterUserRequestDTO{TaxID: taxID}
	if req.FullName, err = s.readLine("Enter the full name: "); err != nil {
		return err
	}
	if req.BirthDate, err = s.readLine("Enter the birth date (dd-mm-yyyy): "); err != nil {
		return err
	}
	if req.Address, err = s.readLine("Enter the address (street, number - district - city/state): "); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		s.fail("Operation failed! " + err.Error() + ".")
		return nil
	}

	user, err := s.users.Register(ctx, req.FullName, req.BirthDate, req.TaxID, req.Address)
	if err != nil {
		return s.report(err)
	}
	zap.L().Debug("user registered", zap.String("tax_id", user.TaxID))
	s.success("User created successfully!")
	return nil
}

func isUserError(err error) bool {
	return errors.Is(err, userservice.ErrDuplicateUser) || errors.Is(err, userservice.ErrUserNotFound)
}

func userMessage(err error) string {
	if errors.Is(err, userservice.ErrDuplicateUser) {
		return "Operation failed! A user with this tax id already exists."
	}
	return "Operation failed! User not found, account creation cancelled."
}
