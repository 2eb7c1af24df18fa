package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/manjunath2605/courtcase-app/api"
	"github.com/manjunath2605/courtcase-app/config"
	"github.com/manjunath2605/courtcase-app/databases"
	"github.com/manjunath2605/courtcase-app/models"
	"github.com/manjunath2605/courtcase-app/notify"
	templates "github.com/manjunath2605/courtcase-app/templates/html"
)

const (
	otpCooldown    = 60 * time.Second
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
	resetTokenTTL  = time.Hour
)

// Auth handles login, OTP and account management requests
type Auth struct {
	UDB    databases.UserDatabase
	CDB    databases.CaseDatabase
	ODB    databases.ClientOtpDatabase
	Tokens api.Auth
	Mail   Notifier
	Config *config.Config
}

func hashOtp(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}

// generateOtp returns a 6-digit code from a CSPRNG
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken returns a 32-byte random hex token
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}

// writeCooldown answers an OTP request made before the resend window closed,
// with a machine-readable retry hint in seconds
func writeCooldown(w http.ResponseWriter, remaining time.Duration) {
	secs := int(remaining/time.Second) + 1
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"msg":        "Please wait before requesting OTP again",
		"retryAfter": secs,
	})
}

func (h Auth) staffIdentity(u *models.User) api.Identity {
	return api.Identity{
		ID:    u.ID.Hex(),
		Role:  u.Role,
		Email: u.Email,
		Name:  u.Name,
	}
}

func (h Auth) queueOtpEmail(to, subject, otp string) {
	h.Mail.Enqueue(notify.Email{
		To:      to,
		Subject: subject,
		Text:    fmt.Sprintf("Your OTP is %s. It expires in 10 minutes.", otp),
		HTML:    templates.RenderOtpCode(otp),
	})
}

// LoginHandler authenticates a staff account with email and password
func (h Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"email": normalizeEmail(req.Email)})
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "User not found")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := h.Tokens.IssueToken(h.staffIdentity(user))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"token": token, "user": user})
}

// issueLoginOtp stores a fresh OTP on the user record and emails it. Returns
// false when the request was already answered (cooldown or mail outage).
func (h Auth) issueLoginOtp(w http.ResponseWriter, r *http.Request, user *models.User, subject string) bool {
	now := time.Now()
	if user.LoginOtpLastSentAt > 0 {
		elapsed := now.Sub(user.LoginOtpLastSentAt.Time())
		if elapsed < otpCooldown {
			writeCooldown(w, otpCooldown-elapsed)
			return false
		}
	}

	if !h.Config.MailConfigured() {
		writeMsg(w, http.StatusInternalServerError, "Email service is not configured")
		return false
	}

	otp, err := generateOtp()
	if err != nil {
		config.ErrorStatus("failed to generate OTP", http.StatusInternalServerError, w, err)
		return false
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err = h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"loginOtpHash":       hashOtp(otp),
		"loginOtpExpiry":     primitive.NewDateTimeFromTime(now.Add(otpTTL)),
		"loginOtpAttempts":   0,
		"loginOtpLastSentAt": primitive.NewDateTimeFromTime(now),
	}})
	if err != nil {
		config.ErrorStatus("failed to store OTP", http.StatusInternalServerError, w, err)
		return false
	}

	h.queueOtpEmail(user.Email, subject, otp)
	return true
}

// RequestLoginOtpHandler emails a login OTP. The response shape does not
// reveal whether the account exists.
func (h Auth) RequestLoginOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		writeMsg(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		// Prevent account enumeration
		writeMsg(w, http.StatusOK, "If account exists, OTP was sent")
		return
	}

	if !h.issueLoginOtp(w, r, user, "Your Login OTP") {
		return
	}
	writeMsg(w, http.StatusOK, "If account exists, OTP was sent")
}

// RequestPasswordOtpHandler validates email+password before sending the OTP,
// for the two-step login flow
func (h Auth) RequestPasswordOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if !h.issueLoginOtp(w, r, user, "Your Secure Login OTP") {
		return
	}
	writeMsg(w, http.StatusOK, "OTP sent to your email")
}

// VerifyLoginOtpHandler exchanges a valid OTP for a bearer token
func (h Auth) VerifyLoginOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := normalizeEmail(req.Email)
	otp := strings.TrimSpace(req.Otp)
	if email == "" || otp == "" {
		writeMsg(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	if user.LoginOtpHash == "" || user.LoginOtpExpiry.Time().Before(time.Now()) {
		writeMsg(w, http.StatusBadRequest, "OTP expired or not requested")
		return
	}

	clearOtp := bson.M{
		"$unset": bson.M{"loginOtpHash": "", "loginOtpExpiry": ""},
		"$set":   bson.M{"loginOtpAttempts": 0},
	}

	if user.LoginOtpAttempts >= otpMaxAttempts {
		if err := h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, clearOtp); err != nil {
			config.ErrorStatus("failed to clear OTP", http.StatusInternalServerError, w, err)
			return
		}
		writeMsg(w, http.StatusTooManyRequests, "Too many invalid attempts. Request a new OTP.")
		return
	}

	if user.LoginOtpHash != hashOtp(otp) {
		if err := h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$inc": bson.M{"loginOtpAttempts": 1}}); err != nil {
			config.ErrorStatus("failed to record OTP attempt", http.StatusInternalServerError, w, err)
			return
		}
		writeMsg(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	if err := h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, clearOtp); err != nil {
		config.ErrorStatus("failed to clear OTP", http.StatusInternalServerError, w, err)
		return
	}

	token, err := h.Tokens.IssueToken(h.staffIdentity(user))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"token": token, "user": user})
}

// RequestClientOtpHandler starts a client login keyed by case party email
func (h Auth) RequestClientOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		writeMsg(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.CDB.FindOne(ctx, bson.M{"partyEmail": partyEmailFilter(email)}); err != nil {
		writeMsg(w, http.StatusNotFound, "No case found for this email")
		return
	}

	if !h.Config.MailConfigured() {
		writeMsg(w, http.StatusInternalServerError, "Email service is not configured")
		return
	}

	now := time.Now()
	existing, err := h.ODB.FindOne(ctx, bson.M{"email": email})
	if err == nil && existing.LastSentAt > 0 {
		elapsed := now.Sub(existing.LastSentAt.Time())
		if elapsed < otpCooldown {
			writeCooldown(w, otpCooldown-elapsed)
			return
		}
	}

	otp, genErr := generateOtp()
	if genErr != nil {
		config.ErrorStatus("failed to generate OTP", http.StatusInternalServerError, w, genErr)
		return
	}

	fields := bson.M{
		"otpHash":    hashOtp(otp),
		"expiry":     primitive.NewDateTimeFromTime(now.Add(otpTTL)),
		"attempts":   0,
		"lastSentAt": primitive.NewDateTimeFromTime(now),
	}
	if err == nil {
		err = h.ODB.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": fields})
	} else {
		doc := models.ClientOtp{
			ID:         primitive.NewObjectID(),
			Email:      email,
			OtpHash:    fields["otpHash"].(string),
			Expiry:     fields["expiry"].(primitive.DateTime),
			LastSentAt: fields["lastSentAt"].(primitive.DateTime),
			CreatedAt:  primitive.NewDateTimeFromTime(now),
		}
		_, err = h.ODB.InsertOne(ctx, doc)
	}
	if err != nil {
		config.ErrorStatus("failed to store OTP", http.StatusInternalServerError, w, err)
		return
	}

	h.queueOtpEmail(email, "Your Client Login OTP", otp)
	writeMsg(w, http.StatusOK, "OTP sent to your email")
}

// VerifyClientOtpHandler exchanges a client OTP for a client-scoped token.
// The OTP record is single-use: gone after success, expiry or exhaustion.
func (h Auth) VerifyClientOtpHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	email := normalizeEmail(req.Email)
	otp := strings.TrimSpace(req.Otp)
	if email == "" || otp == "" {
		writeMsg(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	otpDoc, err := h.ODB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "OTP expired or not requested")
		return
	}

	if otpDoc.Expiry.Time().Before(time.Now()) {
		h.ODB.DeleteOne(ctx, bson.M{"_id": otpDoc.ID})
		writeMsg(w, http.StatusBadRequest, "OTP expired. Request a new one.")
		return
	}

	if otpDoc.Attempts >= otpMaxAttempts {
		h.ODB.DeleteOne(ctx, bson.M{"_id": otpDoc.ID})
		writeMsg(w, http.StatusTooManyRequests, "Too many invalid attempts. Request a new OTP.")
		return
	}

	if otpDoc.OtpHash != hashOtp(otp) {
		if err := h.ODB.UpdateOne(ctx, bson.M{"_id": otpDoc.ID}, bson.M{"$inc": bson.M{"attempts": 1}}); err != nil {
			config.ErrorStatus("failed to record OTP attempt", http.StatusInternalServerError, w, err)
			return
		}
		writeMsg(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	clientCase, err := h.CDB.FindOne(ctx, bson.M{"partyEmail": partyEmailFilter(email)})
	if err != nil {
		h.ODB.DeleteOne(ctx, bson.M{"_id": otpDoc.ID})
		writeMsg(w, http.StatusNotFound, "No case found for this email")
		return
	}

	h.ODB.DeleteOne(ctx, bson.M{"_id": otpDoc.ID})

	name := clientCase.PartyName
	if name == "" {
		name = "Client"
	}
	identity := api.Identity{
		ID:    "client:" + email,
		Role:  models.RoleClient,
		Email: email,
		Name:  name,
	}
	token, err := h.Tokens.IssueToken(identity)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  map[string]string{"role": string(models.RoleClient), "email": email, "name": name},
	})
}

// requireAdmin answers 403 and returns false unless the caller may manage
// user accounts
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity, _ := api.IdentityFromContext(r.Context())
	if !identity.Role.CanManageUsers() {
		writeMsg(w, http.StatusForbidden, "Admin only")
		return false
	}
	return true
}

// RegisterHandler creates a staff account. Admin only.
func (h Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	email := normalizeEmail(req.Email)
	if req.Name == "" || email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseStaffRole(req.Role)
		if err != nil {
			writeMsg(w, http.StatusBadRequest, "Invalid role")
			return
		}
		role = parsed
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.UDB.FindOne(ctx, bson.M{"email": email}); err == nil {
		writeMsg(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.UDB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// ListUsersHandler returns all staff accounts. Admin only.
func (h Auth) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := h.UDB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to list users", http.StatusInternalServerError, w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(users)
}

// DeleteUserHandler removes a staff account. Admin only.
func (h Auth) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	userID := mux.Vars(r)["user_id"]
	bID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("invalid user ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := h.UDB.DeleteOne(ctx, bson.M{"_id": bID}); err != nil {
		config.ErrorStatus("failed to delete user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UpdateUserRoleHandler changes a staff account's role. Admin only.
func (h Auth) UpdateUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	userID := mux.Vars(r)["user_id"]
	bID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("invalid user ID", http.StatusBadRequest, w, err)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	role, err := models.ParseStaffRole(req.Role)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err = h.UDB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": bson.M{
		"role":      role,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update role", http.StatusInternalServerError, w, err)
		return
	}

	user, err := h.UDB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		writeMsg(w, http.StatusNotFound, "User not found")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// ForgotPasswordHandler emails a reset link. Responds 200 whether or not the
// account exists.
func (h Auth) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"email": normalizeEmail(req.Email)})
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	token, err := generateResetToken()
	if err != nil {
		config.ErrorStatus("failed to generate reset token", http.StatusInternalServerError, w, err)
		return
	}

	err = h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"resetToken":       token,
		"resetTokenExpiry": primitive.NewDateTimeFromTime(time.Now().Add(resetTokenTTL)),
	}})
	if err != nil {
		config.ErrorStatus("failed to store reset token", http.StatusInternalServerError, w, err)
		return
	}

	base := h.Config.BaseURL
	if base == "" {
		base = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(base, "/"), token)
	h.Mail.Enqueue(notify.Email{
		To:      user.Email,
		Subject: "Password Reset",
		Text:    "Reset password link: " + link + "\n\nThe link expires in 1 hour.",
		HTML:    templates.RenderGenericEmail("Password Reset", "Reset password link: "+link+"\n\nThe link expires in 1 hour."),
	})

	writeMsg(w, http.StatusOK, "Reset link sent")
}

// ResetPasswordHandler sets a new password from a valid, unexpired reset token
func (h Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Password is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{
		"resetToken":       token,
		"resetTokenExpiry": bson.M{"$gt": primitive.NewDateTimeFromTime(time.Now())},
	})
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	err = h.UDB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": string(hash), "updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	})
	if err != nil {
		config.ErrorStatus("failed to update password", http.StatusInternalServerError, w, err)
		return
	}

	writeMsg(w, http.StatusOK, "Password updated")
}
