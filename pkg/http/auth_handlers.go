package http

import (
	"net/http"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"email":    z.String().Required(),
	"password": z.String().Required(),
})

func (rs *RestfulServer) authResponse(c *gin.Context, session *models.Session) {
	user, err := rs.Joystick.Auth.Authenticate(c.Request.Context(), session.Token)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, remote.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User: remote.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Level: user.LevelID,
		},
	})
}

func (rs *RestfulServer) Login(c *gin.Context) {
	var req LoginRequest
	if err := loginRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required", "issues": err})
		return
	}

	session, err := rs.Joystick.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	rs.authResponse(c, session)
}

func (rs *RestfulServer) Refresh(c *gin.Context) {
	session, err := rs.Joystick.Auth.Refresh(c.Request.Context(), bearerToken(c))
	if err != nil {
		fail(c, err)
		return
	}
	rs.authResponse(c, session)
}
