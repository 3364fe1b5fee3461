package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/apperr"
	"github.com/atikulmunna/chatlens/internal/model"
	"github.com/atikulmunna/chatlens/internal/session"
)

const (
	sessionCookie = "chatlens_session"
	sessionKey    = "session"
	uploadField   = "file"
)

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Credential string `json:"credential"`
}

// respondError writes err as {"error": kind, "message": ...}.
func (s *Server) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": err.Error()})
}

// requireSession resolves the caller's session from the Authorization
// header, the session cookie or a token query parameter (for websockets).
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(sessionCookie)
		}
		if token == "" {
			token = c.Query("token")
		}

		sess, ok := s.sessions.Get(token)
		if token == "" || !ok {
			s.respondError(c, apperr.Unauthorized("login required"))
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func currentSession(c *gin.Context) session.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(session.Session)
	return sess
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.New(apperr.KindValidation, "invalid login request", err))
		return
	}
	sess, err := s.sessions.Login(req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.issue(c, sess)
}

func (s *Server) handleOAuthLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.New(apperr.KindValidation, "invalid login request", err))
		return
	}
	sess, err := s.sessions.LoginOAuth(req.Email, req.Credential)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.issue(c, sess)
}

func (s *Server) issue(c *gin.Context, sess session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.Token, int((24 * time.Hour).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleLogout(c *gin.Context) {
	sess := currentSession(c)
	s.sessions.Logout(sess.Token)
	s.aggregator.Forget(sess.Email)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}

// handleAnalyze accepts a multipart "file" field or a raw text body,
// analyzes it and returns the Report. The owner's previous report is replaced.
func (s *Server) handleAnalyze(c *gin.Context) {
	sess := currentSession(c)

	var (
		up  model.Upload
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		up, err = s.loadMultipart(c, sess.Email)
	} else {
		source := c.DefaultQuery("name", "upload.txt")
		up, err = s.reader.Load(sess.Email, source, c.Request.Body)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	report := s.hub.Publish(up)
	s.aggregator.Record(report)

	s.log.Info("export analyzed",
		zap.String("owner", sess.Email),
		zap.String("source", up.Source),
		zap.Int("messages", report.Summary.TotalMessages))
	c.JSON(http.StatusOK, report)
}

func (s *Server) loadMultipart(c *gin.Context, owner string) (model.Upload, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return model.Upload{}, apperr.Validation("missing file field")
		}
		return model.Upload{}, apperr.New(apperr.KindValidation, "invalid multipart upload", err)
	}
	f, err := fh.Open()
	if err != nil {
		return model.Upload{}, apperr.Unreadable("cannot open uploaded file", err)
	}
	defer f.Close()

	return s.reader.Load(owner, fh.Filename, f)
}

func (s *Server) handleSummary(c *gin.Context) {
	sess := currentSession(c)
	report, ok := s.aggregator.Latest(sess.Email)
	if !ok {
		s.respondError(c, apperr.NotFound("no export analyzed yet"))
		return
	}
	c.JSON(http.StatusOK, report)
}
