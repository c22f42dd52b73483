package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

var ErrInvalidCredentials = models.NewUserError(models.ErrAuthentication, "invalid credentials")

type AuthServicer interface {
	Login(ctx context.Context, username, password string) (*models.Customer, string, error)
	Authorize(token string) (uint, error)
	CurrentCustomer(ctx context.Context, customerID uint) (*models.Customer, error)
}

type AuthServiceConfig struct {
	Signer identity.Signer
	Store  stores.Storer
}

type AuthService struct {
	signer identity.Signer
	store  stores.Storer
}

func NewAuthService(config AuthServiceConfig) AuthService {
	return AuthService{
		signer: config.Signer,
		store:  config.Store,
	}
}

/*
Login checks a customer's credentials and mints a session token. Unknown
usernames and wrong passwords fail with the same error.
*/
func (s AuthService) Login(ctx context.Context, username, password string) (*models.Customer, string, error) {
	var (
		err      error
		customer *models.Customer
		token    string
	)

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return nil, "", models.NewUserError(models.ErrValidation, "username and password are required")
	}

	if customer, err = s.store.GetCustomerByUsername(ctx, username); err != nil {
		return nil, "", fmt.Errorf("error looking up customer '%s': %w", username, err)
	}

	if customer == nil || !identity.PasswordMatches(customer.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	if token, err = s.signer.Sign(identity.NewClaims(customer.ID, identity.SessionTTL)); err != nil {
		return nil, "", err
	}

	customer.PasswordHash = ""
	return customer, token, nil
}

func (s AuthService) Authorize(token string) (uint, error) {
	claims, err := s.signer.Verify(token)

	if err != nil {
		return 0, err
	}

	return claims.CustomerID, nil
}

func (s AuthService) CurrentCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
	customer, err := s.store.GetCustomerByID(ctx, customerID)

	if err != nil {
		return nil, fmt.Errorf("error fetching customer %d: %w", customerID, err)
	}

	if customer == nil {
		return nil, models.NewUserError(models.ErrUnauthorized, "customer no longer exists")
	}

	return customer, nil
}
