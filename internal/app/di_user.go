package app

import (
	"fmt"

	"github.com/allisson/go-api-starter/internal/database"
	userHTTP "github.com/allisson/go-api-starter/internal/user/http"
	userRepository "github.com/allisson/go-api-starter/internal/user/repository"
	userUseCase "github.com/allisson/go-api-starter/internal/user/usecase"
)

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	return lazy(c, &c.userRepositoryInit, "userRepository", &c.userRepository, c.initUserRepository)
}

// UserUseCase returns the user use case.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	return lazy(c, &c.userUseCaseInit, "userUseCase", &c.userUseCase, c.initUserUseCase)
}

// UserHandler returns the HTTP handler for user management.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	return lazy(c, &c.userHandlerInit, "userHandler", &c.userHandler, c.initUserHandler)
}

func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return userRepository.NewSQLiteUserRepository(db), nil
	case database.DriverMySQL:
		return userRepository.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	passwordHasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for user use case: %w", err)
	}

	baseUseCase := userUseCase.NewUserUseCase(txManager, userRepository, passwordHasher, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initUserHandler() (*userHTTP.UserHandler, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return userHTTP.NewUserHandler(userUseCase, c.Logger()), nil
}
