package account

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/loginauth/auth/authctx"
	apperrors "github.com/kbukum/loginauth/errors"
	"github.com/kbukum/loginauth/server"
	"github.com/kbukum/loginauth/validation"
)

// Route paths.
const (
	PathLogin     = "/auth/login"
	PathRegister  = "/auth/register"
	PathMe        = "/auth/me"
	PathAdminPing = "/admin/ping"
)

// PrincipalResponse describes the caller's security context.
type PrincipalResponse struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
}

// Handler exposes the Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the account routes. Access rules are enforced by the
// server's authorization middleware, not here.
func (h *Handler) Routes(r gin.IRouter) {
	r.POST(PathLogin, h.Login)
	r.POST(PathRegister, h.Register)
	r.GET(PathMe, h.Me)
	r.GET(PathAdminPing, h.AdminPing)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	p, ok := authctx.Get(c.Request.Context())
	if !ok {
		server.RespondWithError(c, apperrors.Unauthenticated())
		return
	}
	authorities := p.Authorities()
	if authorities == nil {
		authorities = []string{}
	}
	server.RespondOK(c, PrincipalResponse{
		Email:       p.Subject(),
		Name:        p.Name(),
		Role:        p.Role(),
		Authorities: authorities,
	})
}

// AdminPing handles GET /admin/ping.
func (h *Handler) AdminPing(c *gin.Context) {
	p, ok := authctx.Get(c.Request.Context())
	if !ok {
		server.RespondWithError(c, apperrors.Unauthenticated())
		return
	}
	server.RespondOK(c, gin.H{"status": "ok", "subject": p.Subject()})
}

// bind decodes the JSON body into req and validates it. On failure the
// error response is written and false returned.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("Request body must be a valid JSON object.").WithCause(err))
		return false
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return false
	}
	return true
}
