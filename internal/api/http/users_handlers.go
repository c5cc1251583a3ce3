package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumenlms/lumen/internal/rbac"
)

// CreateUserHandler provisions a local account (admin only at the route
// level). POST /users {"username":"...","password":"...","role":"student"}.
func CreateUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if _, ok := rbac.RolePermissions[req.Role]; !ok {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		id := uuid.NewString()
		if _, err := db.ExecContext(r.Context(),
			`INSERT INTO users (id,username,password_hash,role,created_at) VALUES ($1,$2,$3,$4,$5)`,
			id, req.Username, string(hash), req.Role, time.Now().Unix()); err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "username": req.Username, "role": req.Role})
	}
}

func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	type user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
		rows, err := db.QueryContext(r.Context(),
			`SELECT id,username,role FROM users ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []user{}
		for rows.Next() {
			var u user
			if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
				http.Error(w, "db error", http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		writeJSON(w, http.StatusOK, out)
	}
}
