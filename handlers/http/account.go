package httpHandler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"account-server/entities"
	"account-server/uploads"
	"account-server/usecases"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// envelope is the response shape shared by every account endpoint.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *userPayload `json:"user,omitempty"`
}

// userPayload flattens the token next to the user fields. The password hash
// is excluded by the entity's json tag.
type userPayload struct {
	Token string `json:"token"`
	*entities.User
}

type AccountHandler struct {
	useCase *usecases.AccountUseCase
	store   *uploads.LocalStore
}

func NewAccountHandler(useCase *usecases.AccountUseCase, store *uploads.LocalStore) *AccountHandler {
	return &AccountHandler{
		useCase: useCase,
		store:   store,
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type signupRequest struct {
	FullName    string `json:"fullName" form:"fullName"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	Role        string `json:"role" form:"role"`
	CompanyName string `json:"companyName" form:"companyName"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// Login handles POST /api/v1/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.useCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *usecases.ValidationError
		switch {
		case errors.As(err, &verr):
			fail(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, usecases.ErrUserNotFound):
			fail(c, http.StatusBadRequest, "User not found")
		case errors.Is(err, usecases.ErrInvalidPassword):
			fail(c, http.StatusBadRequest, "Invalid password")
		default:
			internalError(c, "Login", err)
		}
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, User: &userPayload{Token: res.Token, User: res.User}})
}

// Signup handles POST /api/v1/auth/signup (JSON or multipart with an optional profilePic file)
func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := usecases.SignupInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        entities.Role(req.Role),
		CompanyName: req.CompanyName,
	}

	if c.ContentType() == gin.MIMEMultipartPOSTForm && h.store != nil {
		fh, err := c.FormFile("profilePic")
		switch {
		case err == nil:
			in.ProfilePic = &uploadedPicture{store: h.store, fh: fh}
		case !errors.Is(err, http.ErrMissingFile):
			fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	res, err := h.useCase.Signup(c.Request.Context(), in)
	if err != nil {
		var verr *usecases.ValidationError
		switch {
		case errors.As(err, &verr):
			fail(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, usecases.ErrEmailRegistered):
			fail(c, http.StatusBadRequest, "Email is already registered")
		case errors.Is(err, usecases.ErrSupervisorExists):
			fail(c, http.StatusBadRequest, "A supervisor already exists for this company")
		case errors.Is(err, uploads.ErrUnsupportedImage):
			fail(c, http.StatusBadRequest, "Profile picture must be an image")
		case errors.Is(err, uploads.ErrFileTooLarge):
			fail(c, http.StatusBadRequest, "Profile picture is too large")
		default:
			internalError(c, "Signup", err)
		}
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, User: &userPayload{Token: res.Token, User: res.User}})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.useCase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, usecases.ErrUserNotFound) {
			fail(c, http.StatusBadRequest, "User with this email does not exist")
			return
		}
		internalError(c, "ForgotPassword", err)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Message: "Password reset token sent successfully"})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// internalError logs the cause and answers with the generic 500 envelope.
func internalError(c *gin.Context, op string, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed", "op", op, "error", err)
	fail(c, http.StatusInternalServerError, internalErrorMessage)
}

type uploadedPicture struct {
	store *uploads.LocalStore
	fh    *multipart.FileHeader
	name  string
}

func (p *uploadedPicture) Store() (string, error) {
	name, err := p.store.Save(p.fh)
	if err != nil {
		return "", err
	}
	p.name = name
	return name, nil
}

func (p *uploadedPicture) Discard() {
	if p.name == "" {
		return
	}
	if err := p.store.Remove(p.name); err != nil {
		slog.Warn("failed to remove orphaned profile picture", "file", p.name, "error", err)
	}
}
