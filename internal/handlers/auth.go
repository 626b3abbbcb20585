package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/hash"
	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/mykafka"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/service/token"
)

// AuthHandler implements the mock authentication boundary: the reserved admin
// credential pair signs in as admin, any other syntactically valid email signs
// in as a customer with an auto-created account. There is no real credential
// verification for customers.
type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
	Toasts        *notify.Hub

	AdminEmail        string
	AdminPasswordHash string
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}


func (h *AuthHandler) setAuthCookies(c echo.Context, user *models.User) error {
	access, err := token.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create access token")
	}
	refresh, err := token.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create refresh token")
	}
	if err := token.SaveRefreshToken(h.DB, refresh, user.ID, user.Role); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save refresh token")
	}

	c.SetCookie(token.CreateCookie("accessToken", access, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refresh, "/", time.Now().Add(token.RefreshTTL)))
	return nil
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email")
	}

	var user models.User

	if email == h.AdminEmail {
		if !hash.CheckPassword(h.AdminPasswordHash, req.Password) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			user = models.User{Name: "Administrator", Email: email, Role: "admin"}
			if err := h.DB.Create(&user).Error; err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
	} else {
		if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			user = models.User{
				Name:  strings.SplitN(email, "@", 2)[0],
				Email: email,
				Role:  "customer",
			}
			if err := h.DB.Create(&user).Error; err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
	}

	if err := h.setAuthCookies(c, &user); err != nil {
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"role":   user.Role,
	})
	h.Toasts.ShowFor(user.ID, "Welcome back, "+user.Name, notify.KindSuccess)

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") || strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{Name: strings.TrimSpace(req.Name), Email: email, Role: "customer"}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.setAuthCookies(c, &user); err != nil {
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"name":   user.Name,
	})
	h.Toasts.ShowFor(user.ID, "Account created successfully", notify.KindSuccess)

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if claims, err := token.ValidateRefresh(cookie.Value, h.RefreshSecret, h.DB); err == nil {
			if sub, ok := claims["sub"].(float64); ok {
				h.Toasts.ShowFor(uint(sub), "Logged out successfully", notify.KindInfo)
			}
		}
		svc := token.Service{DB: h.DB, JWTSecret: h.JWTSecret, RefreshSecret: h.RefreshSecret}
		if err := svc.RevokeRefresh(cookie.Value); err != nil {
			c.Logger().Errorf("revoke refresh error: %v", err)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(token.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(token.CreateCookie("refreshToken", "", "/", expired))

	return c.NoContent(http.StatusNoContent)
}
