package blogtok

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    AdminUser `json:"user"`
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, errorBody{Error: "Too many login attempts. Try again later."})
	}
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return validationf("username and password are required")
	}

	user, err := a.Store.VerifyAdminCredentials(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, ErrUnauthorized) {
		a.loginLimiter.Record(ip)
		a.log.Warn().Str("ip", ip).Msg("failed admin login")
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid username or password"})
	}
	if err != nil {
		return err
	}
	a.loginLimiter.Reset(ip)
	if err := setAdminSession(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Success: true, Message: "Login successful", User: user})
}

func handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Success: true, Message: "Logged out"})
}

func (a *App) handleGetAdminUser(c echo.Context) error {
	user, err := a.Store.GetAdminUser(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (a *App) handleUpdateAdminUser(c echo.Context) error {
	var req AdminUpdate
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := a.Store.UpdateAdminUser(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Success: true, Message: "Admin user updated successfully"})
}
