package devgateway

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Server exposes the dev gateway's HTTP surface: /rest/v1 tables, /auth/v1
// password sessions and /storage/v1 objects.
type Server struct {
	store   *Store
	dataDir string
	mux     *http.ServeMux

	tokens sync.Map // access token -> email
}

func NewServer(store *Store, dataDir string) *Server {
	s := &Server{store: store, dataDir: dataDir, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /rest/v1/{table}", s.handleSelect)
	s.mux.HandleFunc("POST /rest/v1/{table}", s.handleInsert)
	s.mux.HandleFunc("PATCH /rest/v1/{table}", s.handleUpdate)
	s.mux.HandleFunc("DELETE /rest/v1/{table}", s.handleDelete)

	s.mux.HandleFunc("POST /auth/v1/token", s.handleToken)
	s.mux.HandleFunc("POST /auth/v1/logout", s.handleLogout)

	s.mux.HandleFunc("POST /storage/v1/object/{bucket}/{object...}", s.handleUpload)
	s.mux.HandleFunc("GET /storage/v1/object/public/{bucket}/{object...}", s.handleObject)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (s *Server) tableDef(w http.ResponseWriter, r *http.Request) (tableDef, bool) {
	def, ok := tables[r.PathValue("table")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown table "+r.PathValue("table"))
	}
	return def, ok
}

// idFilter parses the PostgREST id=eq.N query filter. Zero means no filter.
func idFilter(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, nil
	}
	value, ok := strings.CutPrefix(raw, "eq.")
	if !ok {
		return 0, errors.New("only eq. id filters are supported")
	}
	return strconv.Atoi(value)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	def, ok := s.tableDef(w, r)
	if !ok {
		return
	}
	order, err := orderClause(def, r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	id, err := idFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := s.store.selectRows(def, order, limit, id)
	if err != nil {
		slog.Error("devgateway: select failed", "table", def.name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// decodeFields accepts either a single JSON object or an array with one
// object, which is how client SDKs commonly post inserts.
func decodeFields(r io.Reader) (map[string]json.RawMessage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, errors.New("empty insert array")
		}
		return list[0], nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	def, ok := s.tableDef(w, r)
	if !ok {
		return
	}
	fields, err := decodeFields(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.store.insertRow(def, fields)
	if err != nil {
		slog.Error("devgateway: insert failed", "table", def.name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := s.store.selectRows(def, "", 0, int(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, records)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	def, ok := s.tableDef(w, r)
	if !ok {
		return
	}
	id, err := idFilter(r)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "an id=eq.N filter is required")
		return
	}
	fields, err := decodeFields(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.updateRow(def, id, fields); err != nil {
		slog.Error("devgateway: update failed", "table", def.name, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := s.store.selectRows(def, "", 0, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	def, ok := s.tableDef(w, r)
	if !ok {
		return
	}
	id, err := idFilter(r)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "an id=eq.N filter is required")
		return
	}
	if err := s.store.deleteRow(def, id); err != nil {
		slog.Error("devgateway: delete failed", "table", def.name, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grant_type") != "password" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_description": "unsupported grant type"})
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_description": "malformed credentials"})
		return
	}

	var hashed string
	err := s.store.DB.QueryRow(`SELECT password FROM auth_users WHERE email = ?`, creds.Email).Scan(&hashed)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(hashed), []byte(creds.Password)) != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error_description": "Invalid login credentials"})
		return
	}

	token := uuid.New().String()
	s.tokens.Store(token, creds.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": uuid.New().String(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.tokens.Delete(token)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) objectPath(bucket, object string) (string, error) {
	p := filepath.Join(s.dataDir, filepath.FromSlash(bucket), filepath.FromSlash(object))
	root := filepath.Clean(s.dataDir) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(p), root) {
		return "", errors.New("object path escapes data dir")
	}
	return p, nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	p, err := s.objectPath(r.PathValue("bucket"), r.PathValue("object"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := os.Create(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()
	if _, err := io.Copy(f, r.Body); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"Key": r.PathValue("bucket") + "/" + r.PathValue("object"),
	})
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	p, err := s.objectPath(r.PathValue("bucket"), r.PathValue("object"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	http.ServeFile(w, r, p)
}
