package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/server/auth"
	"github.com/classtrack/classtrack/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *userResponse `json:"user"`
}

type userResponse struct {
	ID        int32  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	CreatedTs int64  `json:"createdTs"`
}

func convertUser(user *store.User) *userResponse {
	return &userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedTs: user.CreatedTs,
	}
}

// Login checks credentials and returns a signed access token.
func (s *APIV1Service) Login(c echo.Context) error {
	ctx := c.Request().Context()
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed login request")
	}
	if req.Username == "" || req.Password == "" {
		return invalidArgument(c, "username and password are required")
	}

	user, err := s.Store.GetUser(ctx, &store.FindUser{Username: &req.Username})
	if err != nil {
		return errorResponse(c, err)
	}
	if user == nil || user.RowStatus != store.Normal || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}

	expiration := time.Now().Add(auth.AccessTokenDuration)
	token, err := auth.GenerateAccessToken(user.ID, user.Username, user.Role.String(), expiration, []byte(s.Secret))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, &loginResponse{
		AccessToken: token,
		User:        convertUser(user),
	})
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Signup creates a new account. Accounts are admin-created; there is no
// open registration.
func (s *APIV1Service) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed signup request")
	}
	if req.Username == "" || req.Password == "" {
		return invalidArgument(c, "username and password are required")
	}
	role := store.Role(req.Role)
	if role != store.RoleAdmin && role != store.RoleTeacher && role != store.RoleStudent {
		return invalidArgument(c, "role must be one of ADMIN, TEACHER, STUDENT")
	}

	existing, err := s.Store.GetUser(ctx, &store.FindUser{Username: &req.Username})
	if err != nil {
		return errorResponse(c, err)
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, map[string]string{"message": "username already taken"})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	user, err := s.Store.CreateUser(ctx, &store.User{
		Username:     req.Username,
		Role:         role,
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertUser(user))
}

// Me returns the authenticated user.
func (s *APIV1Service) Me(c echo.Context) error {
	user := auth.UserFromContext(c.Request().Context())
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, convertUser(user))
}
