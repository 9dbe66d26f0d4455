package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/user"
	"storefront/internal/validation"
)

type loginView struct {
	Username string
	Error    string
}

type registerView struct {
	Username string
	Email    string
	Age      string
	Errors   map[string]string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Sign in", loginView{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	view := loginView{Username: strings.TrimSpace(r.PostFormValue("username"))}
	password := r.PostFormValue("password")

	if view.Username == "" || password == "" {
		view.Error = "Username and password are required"
		h.render(w, r, http.StatusBadRequest, "login", "Sign in", view)
		return
	}

	u, err := h.users.Authenticate(r.Context(), view.Username, password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		view.Error = "Invalid username or password"
		h.render(w, r, http.StatusUnauthorized, "login", "Sign in", view)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	sess := h.session(r)
	if err := sess.SetUser(u); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.flashRedirect(w, r, "Welcome back, "+u.Username+"!", "/")
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", "Register", registerView{})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	view := registerView{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Age:      strings.TrimSpace(r.PostFormValue("age")),
	}

	age, err := strconv.Atoi(view.Age)
	if err != nil {
		view.Errors = map[string]string{"age": "must be a number"}
		h.render(w, r, http.StatusBadRequest, "register", "Register", view)
		return
	}

	_, err = h.users.Register(r.Context(), user.RegisterInput{
		Username: view.Username,
		Email:    view.Email,
		Password: r.PostFormValue("password"),
		Age:      age,
	})
	if ve, ok := validation.As(err); ok {
		view.Errors = ve.Fields
		h.render(w, r, http.StatusBadRequest, "register", "Register", view)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.flashRedirect(w, r, "Registration successful. Please sign in.", "/login")
}

// logout drops every session value, the cart included.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.session(r).Clear()
	h.redirect(w, r, "/")
}
