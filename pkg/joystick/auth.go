package joystick

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

// AuthContext describes who issued a request.
type AuthContext struct {
	UserID     string
	User       *models.User
	IsAPIKey   bool
	IsInternal bool
}

// IsSystem reports whether the caller acts as the system user and so bypasses
// per-action permission checks.
func (a *AuthContext) IsSystem() bool {
	return a != nil && (a.IsAPIKey || a.IsInternal)
}

var internalNetworks = func() []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range []string{"127.0.0.0/8", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"} {
		_, n, _ := net.ParseCIDR(cidr)
		nets = append(nets, n)
	}
	return nets
}()

// IsInternalRequest trusts requests forwarded from a private network or sent by
// the fleet's own tooling.
func IsInternalRequest(header http.Header) bool {
	clientIP := header.Get("X-Forwarded-For")
	if clientIP == "" {
		clientIP = header.Get("X-Real-Ip")
	}
	if clientIP == "" {
		clientIP = header.Get("X-Remote-Addr")
	}
	if clientIP != "" {
		first := strings.TrimSpace(strings.Split(clientIP, ",")[0])
		if first == "localhost" {
			return true
		}
		if ip := net.ParseIP(first); ip != nil {
			for _, n := range internalNetworks {
				if n.Contains(ip) {
					return true
				}
			}
		}
	}

	userAgent := header.Get("User-Agent")
	for _, agent := range []string{"curl", "node", "bun"} {
		if strings.Contains(userAgent, agent) {
			return true
		}
	}
	return false
}

func (j *Joystick) authLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAuth),
	)
}

func (j *Joystick) newSession(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(j.Config.SessionTTL),
	}
	if err := j.Db.Conn.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (j *Joystick) login(ctx context.Context, email string, password string) (*models.Session, error) {
	logger := j.authLogger()

	var user models.User
	err := j.Db.Conn.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Info("Login for unknown user", zap.String("email", email))
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Info("Login with wrong password", zap.String("user", user.ID))
		return nil, ErrUnauthorized
	}

	session, err := j.newSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", zap.String("user", user.ID))
	return session, nil
}

func (j *Joystick) findSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	var session models.Session
	err := j.Db.Conn.WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// refresh replaces a live session with a new one. The old token stops working.
func (j *Joystick) refresh(ctx context.Context, token string) (*models.Session, error) {
	old, err := j.findSession(ctx, token)
	if err != nil {
		return nil, err
	}

	var session *models.Session
	err = j.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Session{}, "token = ?", old.Token).Error; err != nil {
			return err
		}
		session = &models.Session{
			Token:     uuid.NewString(),
			UserID:    old.UserID,
			ExpiresAt: time.Now().Add(j.Config.SessionTTL),
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (j *Joystick) authenticate(ctx context.Context, token string) (*models.User, error) {
	session, err := j.findSession(ctx, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := j.Db.Conn.WithContext(ctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &user, nil
}

func (j *Joystick) getSystemUser(ctx context.Context) (*models.User, error) {
	var user models.User
	err := j.Db.Conn.WithContext(ctx).First(&user, "email = ?", j.Config.SystemUserEmail).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type IAuthImpl struct {
	joystick *Joystick
}

func (ia *IAuthImpl) Login(ctx context.Context, email string, password string) (*models.Session, error) {
	return ia.joystick.login(ctx, email, password)
}

func (ia *IAuthImpl) Refresh(ctx context.Context, token string) (*models.Session, error) {
	return ia.joystick.refresh(ctx, token)
}

func (ia *IAuthImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return ia.joystick.authenticate(ctx, token)
}

func (ia *IAuthImpl) GetSystemUser(ctx context.Context) (*models.User, error) {
	return ia.joystick.getSystemUser(ctx)
}

func (j *Joystick) GetIAuth() IAuth {
	return &IAuthImpl{joystick: j}
}
