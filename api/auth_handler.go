package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/acamacho/portfolio-backend/auth"
	"github.com/acamacho/portfolio-backend/database"
	"github.com/acamacho/portfolio-backend/errs"
	"github.com/acamacho/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	adminRepo *database.AdminRepo
	session   auth.SessionManager
}

func newAuthHandler(adminRepo *database.AdminRepo, session auth.SessionManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		adminRepo: adminRepo,
		session:   session,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Admin   *adminSummary `json:"admin,omitempty"`
}

type adminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

const invalidCredentialsMessage = "Invalid email or password"

// login checks the submitted credentials against the admin record and, on
// success, issues the adminSession cookie. Unknown email and wrong password
// produce the identical failure response.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		creds.Email = strings.TrimSpace(creds.Email)
		if creds.Email == "" || creds.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		admin, err := h.adminRepo.FindByEmail(creds.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find admin", "admin", err))
			return
		}

		if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)) != nil {
			w.WriteHeader(http.StatusUnauthorized)
			h.responder.WriteJSON(w, loginResponse{Success: false, Message: invalidCredentialsMessage})
			return
		}

		if err := h.session.Issue(w, admin.Email); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue session", err))
			return
		}

		h.responder.WriteJSON(w, loginResponse{
			Success: true,
			Admin:   &adminSummary{ID: admin.ID.String(), Email: admin.Email},
		})
	}
}

// logout clears the session cookie. There is no server-side session state to
// revoke.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.session.Clear(w)
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "logged out",
		})
	}
}

// bootstrap creates the initial admin account. Refuses to run once any admin
// record exists.
func (h authHandler) bootstrap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		creds.Email = strings.TrimSpace(creds.Email)
		if creds.Email == "" || creds.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("email and password are required"))
			return
		}

		count, err := h.adminRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count admins", "admin", err))
			return
		}
		if count > 0 {
			h.responder.WriteError(w, errs.NewAlreadyExists("admin"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		admin := models.Admin{
			Email:        creds.Email,
			PasswordHash: string(hash),
		}
		if err := h.adminRepo.Add(&admin); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create admin", "admin", err))
			return
		}

		h.logger.Info().Str("email", admin.Email).Msg("Initial admin created")

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, adminSummary{ID: admin.ID.String(), Email: admin.Email})
	}
}

// me echoes the session claims so the dashboard shell can render the account
// menu without another login round-trip.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := ctxGetAdminEmail(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingSessionError())
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"email":           email,
			"isAuthenticated": true,
		})
	}
}
