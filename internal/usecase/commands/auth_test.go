//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roomreserve/internal/domain/user"
	reqdto "roomreserve/internal/handler/dto/request"
	"roomreserve/internal/infra/memstore"
	"roomreserve/internal/pkg/jwt"
	"roomreserve/internal/pkg/password"
	"roomreserve/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testPassword = "correct-horse-battery"

type AuthCommandsTestSuite struct {
	suite.Suite
	users *memstore.UserStore
	auth  commands.AuthCommands
	jwts  *jwt.Service
	ctx   context.Context
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.users = memstore.NewUserStore()
	s.jwts = jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	s.auth = commands.NewAuthCommands(s.users, s.jwts)
	s.ctx = context.Background()
}

func (s *AuthCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) addUser(email string, active bool) uuid.UUID {
	emailVO, err := user.NewEmail(email)
	require.NoError(s.T(), err)

	hash, err := password.HashPassword(testPassword)
	require.NoError(s.T(), err)

	entity := user.Reconstruct(uuid.New(), emailVO, "Taylor Reed", hash, user.RoleMember, active, time.Now())
	require.NoError(s.T(), s.users.Create(s.ctx, entity))
	return entity.ID()
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.Run("valid credentials yield a token pair", func() {
		userID := s.addUser("taylor@example.com", true)

		result, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "taylor@example.com",
			Password: testPassword,
		})
		s.Require().NoError(err)
		s.Equal(userID, result.UserID)
		s.NotEmpty(result.TokenPair.AccessToken)
		s.NotEmpty(result.TokenPair.RefreshToken)

		claims, err := s.jwts.ValidateToken(result.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(userID, claims.UserID)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)
	})

	s.Run("wrong password", func() {
		s.addUser("taylor@example.com", true)

		_, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "taylor@example.com",
			Password: "wrong-password-here",
		})
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("unknown user reads the same as a bad password", func() {
		_, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "nobody@example.com",
			Password: testPassword,
		})
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("inactive account", func() {
		s.addUser("dormant@example.com", false)

		_, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "dormant@example.com",
			Password: testPassword,
		})
		s.Require().ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("email lookup is case insensitive", func() {
		userID := s.addUser("taylor@example.com", true)

		result, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "Taylor@Example.com",
			Password: testPassword,
		})
		s.Require().NoError(err)
		s.Equal(userID, result.UserID)
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	login := func() *commands.LoginResult {
		s.addUser("taylor@example.com", true)
		result, err := s.auth.Login(s.ctx, reqdto.LoginRequest{
			Email:    "taylor@example.com",
			Password: testPassword,
		})
		s.Require().NoError(err)
		return result
	}

	s.Run("valid refresh token rotates the pair", func() {
		result := login()

		pair, err := s.auth.RefreshToken(s.ctx, result.TokenPair.RefreshToken)
		s.Require().NoError(err)
		s.NotEmpty(pair.AccessToken)
		s.NotEmpty(pair.RefreshToken)
	})

	s.Run("access token is not accepted as a refresh token", func() {
		result := login()

		_, err := s.auth.RefreshToken(s.ctx, result.TokenPair.AccessToken)
		s.Require().ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("garbage token", func() {
		_, err := s.auth.RefreshToken(s.ctx, "not-a-jwt")
		s.Require().ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("token signed with another secret", func() {
		otherService := jwt.NewService("other-secret", time.Minute, time.Minute)
		token, err := otherService.GenerateRefreshToken(uuid.New(), user.RoleMember)
		s.Require().NoError(err)

		_, err = s.auth.RefreshToken(s.ctx, token)
		s.Require().ErrorIs(err, commands.ErrTokenValidation)
	})
}
