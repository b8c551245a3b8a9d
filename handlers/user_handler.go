package handlers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"dellcube/middleware"
	"dellcube/models"
	"dellcube/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const pendingSignupTTL = 15 * time.Minute

type UserHandler struct {
	Repo        repository.UserRepository
	PendingRepo repository.PendingUserRepository
	JWTSecret   string
}

type signupInitiateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Company  string `json:"company,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Password string `json:"password"`
}

// SignupInitiate stages a registration in the TTL-bounded pending store and
// issues an OTP. Delivery is handled out of band; the OTP is only logged
// here.
func (h *UserHandler) SignupInitiate(w http.ResponseWriter, r *http.Request) {
	var req signupInitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Role == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, role, and password are required")
		return
	}

	pending := &models.PendingUser{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		ExpiresAt: time.Now().UTC().Add(pendingSignupTTL),
	}
	if req.Company != "" {
		id, err := primitive.ObjectIDFromHex(req.Company)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid company id")
			return
		}
		pending.Company = &id
	}
	if req.Branch != "" {
		id, err := primitive.ObjectIDFromHex(req.Branch)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid branch id")
			return
		}
		pending.Branch = &id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	pending.Password = string(hash)

	otp, err := generateOTP()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate OTP")
		return
	}
	pending.OTP = otp

	if err := h.PendingRepo.SavePending(r.Context(), pending); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage signup: "+err.Error())
		return
	}

	// OTP delivery is an external concern; surfaced in logs for operators.
	log.Printf("signup OTP for %s: %s", pending.Email, otp)

	writeJSON(w, http.StatusAccepted, ApiResponse{
		Success: true,
		Message: "Signup initiated, verify with the OTP sent to your email",
	})
}

type signupVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SignupVerify promotes a staged registration into a real user.
func (h *UserHandler) SignupVerify(w http.ResponseWriter, r *http.Request) {
	var req signupVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Email == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	pending, err := h.PendingRepo.GetPendingByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no pending signup for this email")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// TTL deletion sweeps lazily; enforce expiry here too.
	if time.Now().UTC().After(pending.ExpiresAt) {
		writeError(w, http.StatusNotFound, "no pending signup for this email")
		return
	}
	if pending.OTP != req.OTP {
		writeError(w, http.StatusBadRequest, "invalid OTP")
		return
	}

	user := &models.AppUser{
		Name:     pending.Name,
		Email:    pending.Email,
		Role:     pending.Role,
		Company:  pending.Company,
		Branch:   pending.Branch,
		Password: pending.Password,
	}
	if err := h.Repo.CreateUser(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusConflict, "a user with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user: "+err.Error())
		return
	}
	_ = h.PendingRepo.DeletePending(r.Context(), req.Email)

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User signed up successfully",
		Data:    user,
	})
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.Repo.GetUserByEmail(r.Context(), creds.Email)
	if err != nil || user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.IssueToken(h.JWTSecret, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
