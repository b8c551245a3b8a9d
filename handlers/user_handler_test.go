package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"dellcube/models"

	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newUserEnv() (*UserHandler, *fakeUserRepo, *fakePendingRepo) {
	users := newFakeUserRepo()
	pending := newFakePendingRepo()
	return &UserHandler{Repo: users, PendingRepo: pending, JWTSecret: testJWTSecret}, users, pending
}

func TestSignupInitiateStagesPendingUser(t *testing.T) {
	h, users, pending := newUserEnv()

	rr := doJSON(t, h.SignupInitiate, nil, http.MethodPost, "/api/auth/signup/initiate", map[string]interface{}{
		"name":     "Ravi Kumar",
		"email":    "ravi@dellcube.test",
		"role":     models.RoleOperations,
		"password": "s3cret-pass",
	})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body %s", rr.Code, rr.Body.String())
	}

	staged, ok := pending.byEmail["ravi@dellcube.test"]
	if !ok {
		t.Fatal("no pending signup staged")
	}
	if len(staged.OTP) != 6 {
		t.Errorf("OTP = %q, want 6 digits", staged.OTP)
	}
	if staged.Password == "s3cret-pass" {
		t.Error("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staged.Password), []byte("s3cret-pass")); err != nil {
		t.Errorf("staged password hash does not verify: %v", err)
	}
	if staged.ExpiresAt.Before(time.Now()) {
		t.Error("staged signup already expired")
	}
	if len(users.byEmail) != 0 {
		t.Error("user created before OTP verification")
	}
}

func TestSignupInitiateRequiresFields(t *testing.T) {
	h, _, _ := newUserEnv()

	rr := doJSON(t, h.SignupInitiate, nil, http.MethodPost, "/api/auth/signup/initiate", map[string]interface{}{
		"email": "ravi@dellcube.test",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSignupVerify(t *testing.T) {
	h, users, pending := newUserEnv()

	rr := doJSON(t, h.SignupInitiate, nil, http.MethodPost, "/api/auth/signup/initiate", map[string]interface{}{
		"name":     "Ravi Kumar",
		"email":    "ravi@dellcube.test",
		"role":     models.RoleOperations,
		"password": "s3cret-pass",
	})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("initiate: status %d", rr.Code)
	}
	otp := pending.byEmail["ravi@dellcube.test"].OTP

	rr = doJSON(t, h.SignupVerify, nil, http.MethodPost, "/api/auth/signup/verify", map[string]interface{}{
		"email": "ravi@dellcube.test",
		"otp":   "000000",
	})
	// Guarded in case the generated OTP happens to be exactly 000000.
	if otp != "000000" && rr.Code != http.StatusBadRequest {
		t.Errorf("wrong OTP: status %d, want 400", rr.Code)
	}

	rr = doJSON(t, h.SignupVerify, nil, http.MethodPost, "/api/auth/signup/verify", map[string]interface{}{
		"email": "ravi@dellcube.test",
		"otp":   otp,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("verify: status %d, body %s", rr.Code, rr.Body.String())
	}

	user, ok := users.byEmail["ravi@dellcube.test"]
	if !ok {
		t.Fatal("user not created after verification")
	}
	if user.Role != models.RoleOperations {
		t.Errorf("role = %q", user.Role)
	}
	if _, still := pending.byEmail["ravi@dellcube.test"]; still {
		t.Error("pending signup not cleared after verification")
	}
}

func TestSignupVerifyUnknownEmail(t *testing.T) {
	h, _, _ := newUserEnv()

	rr := doJSON(t, h.SignupVerify, nil, http.MethodPost, "/api/auth/signup/verify", map[string]interface{}{
		"email": "nobody@dellcube.test",
		"otp":   "123456",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestSignupVerifyExpired(t *testing.T) {
	h, users, pending := newUserEnv()

	pending.byEmail["late@dellcube.test"] = &models.PendingUser{
		Name:      "Late Joiner",
		Email:     "late@dellcube.test",
		Role:      models.RoleOperations,
		OTP:       "123456",
		Password:  "hash",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	rr := doJSON(t, h.SignupVerify, nil, http.MethodPost, "/api/auth/signup/verify", map[string]interface{}{
		"email": "late@dellcube.test",
		"otp":   "123456",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("expired signup: status %d, want 404", rr.Code)
	}
	if len(users.byEmail) != 0 {
		t.Error("expired signup created a user")
	}
}

func TestLogin(t *testing.T) {
	h, users, _ := newUserEnv()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	seeded := &models.AppUser{
		Name:     "Ravi Kumar",
		Email:    "ravi@dellcube.test",
		Role:     models.RoleOperations,
		Password: string(hash),
	}
	if err := users.CreateUser(context.Background(), seeded); err != nil {
		t.Fatal(err)
	}

	rr := doJSON(t, h.Login, nil, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ravi@dellcube.test",
		"password": "wrong-pass",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", rr.Code)
	}

	rr = doJSON(t, h.Login, nil, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ravi@dellcube.test",
		"password": "s3cret-pass",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Token string         `json:"token"`
			User  models.AppUser `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Error("no token in login response")
	}
	if resp.Data.User.Password != "" {
		t.Error("password hash leaked in login response")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	h, _, _ := newUserEnv()

	rr := doJSON(t, h.Login, nil, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@dellcube.test",
		"password": "whatever",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}
