package main

import (
	"net/http"

	"gidiparts.ng/gidiparts-web/internal/account"
	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/notify"
)

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var creds account.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		app.writeError(w, r, err)
		return
	}

	result, err := app.account.Login(r.Context(), creds)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	// fresh session id on privilege change
	ws.RegenerateID()
	ws.SetToken(result.Token)
	ws.SetUser(result.User)

	notify.Success(w, "Welcome back", "You are signed in.")
	app.writeJSON(w, http.StatusOK, map[string]any{"user": result.User})
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var reg account.Registration
	if err := readJSON(w, r, &reg); err != nil {
		app.writeError(w, r, err)
		return
	}

	result, err := app.account.Register(r.Context(), reg)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	ws.RegenerateID()
	ws.SetToken(result.Token)
	ws.SetUser(result.User)

	notify.Success(w, "Account created", "Welcome to GidiParts.")
	app.writeJSON(w, http.StatusCreated, map[string]any{"user": result.User})
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	ws.ClearAuth()
	ws.ClearCheckout()
	ws.RegenerateID()

	if middleware.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (app *application) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	if err := app.account.ForgotPassword(r.Context(), req.Email); err != nil {
		app.writeError(w, r, err)
		return
	}

	notify.Success(w, "Check your inbox", "If that address exists we sent a reset link.")
	app.writeJSON(w, http.StatusOK, map[string]any{"sent": true})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (app *application) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	if err := app.account.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		app.writeError(w, r, err)
		return
	}

	notify.Success(w, "Password updated", "You can sign in with your new password.")
	app.writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

func (app *application) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var update account.ProfileUpdate
	if err := readJSON(w, r, &update); err != nil {
		app.writeError(w, r, err)
		return
	}

	user, err := app.account.UpdateProfile(r.Context(), ws.Token(), update)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	ws.SetUser(*user)
	notify.Success(w, "Profile saved", "Your profile has been updated.")
	app.writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
