package devgateway

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type colKind int

const (
	colText colKind = iota
	colBool
	colInt
	colJSON
	colTime
)

type column struct {
	name string
	kind colKind
}

type tableDef struct {
	name    string
	columns []column
}

func (t tableDef) column(name string) (column, bool) {
	for _, c := range t.columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}

var tables = map[string]tableDef{
	"products": {
		name: "products",
		columns: []column{
			{"name", colText}, {"price", colText}, {"image_url", colText},
			{"category", colText}, {"description", colText},
			{"is_fresh", colBool}, {"on_order", colBool}, {"out_of_stock", colBool},
			{"is_visible", colBool}, {"sort_order", colInt}, {"created_at", colTime},
		},
	},
	"site_settings": {
		name: "site_settings",
		columns: []column{
			{"logo_url", colText}, {"background_url", colText},
			{"social_links", colJSON}, {"abn", colText}, {"phone_number", colText},
			{"categories", colJSON}, {"opening_hours", colJSON},
		},
	},
	"homepage_content": {
		name: "homepage_content",
		columns: []column{
			{"hero_title", colText}, {"hero_subtitle", colText},
			{"announcement_text", colText}, {"about_text", colText}, {"about_image_url", colText},
			{"gateway1_image_url", colText}, {"gateway1_title", colText},
			{"gateway1_description", colText}, {"gateway1_button_text", colText}, {"gateway1_button_url", colText},
			{"gateway2_image_url", colText}, {"gateway2_title", colText},
			{"gateway2_description", colText}, {"gateway2_button_text", colText}, {"gateway2_button_url", colText},
		},
	},
	"contact_submissions": {
		name: "contact_submissions",
		columns: []column{
			{"name", colText}, {"email", colText}, {"message", colText}, {"created_at", colTime},
		},
	},
}

// orderClause translates a PostgREST-style order parameter
// ("sort_order.asc.nullslast,created_at.desc") into SQL. Unknown fields are
// rejected rather than interpolated.
func orderClause(def tableDef, param string) (string, error) {
	if param == "" {
		return "", nil
	}
	var parts []string
	for _, seg := range strings.Split(param, ",") {
		bits := strings.Split(seg, ".")
		if _, ok := def.column(bits[0]); !ok {
			return "", fmt.Errorf("unknown order column %q", bits[0])
		}
		part := bits[0]
		for _, bit := range bits[1:] {
			switch bit {
			case "asc":
				part += " ASC"
			case "desc":
				part += " DESC"
			case "nullslast":
				part += " NULLS LAST"
			case "nullsfirst":
				part += " NULLS FIRST"
			default:
				return "", fmt.Errorf("unknown order modifier %q", bit)
			}
		}
		parts = append(parts, part)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (s *Store) selectRows(def tableDef, order string, limit, filterID int) ([]map[string]any, error) {
	cols := make([]string, 0, len(def.columns)+1)
	cols = append(cols, "id")
	for _, c := range def.columns {
		cols = append(cols, c.name)
	}
	query := "SELECT " + strings.Join(cols, ", ") + " FROM " + def.name
	var args []any
	if filterID > 0 {
		query += " WHERE id = ?"
		args = append(args, filterID)
	}
	query += order
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var id int64
		dest := make([]any, 0, len(def.columns)+1)
		dest = append(dest, &id)
		ints := make([]sql.NullInt64, len(def.columns))
		texts := make([]sql.NullString, len(def.columns))
		for i, c := range def.columns {
			switch c.kind {
			case colBool, colInt:
				dest = append(dest, &ints[i])
			default:
				dest = append(dest, &texts[i])
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := map[string]any{"id": id}
		for i, c := range def.columns {
			switch c.kind {
			case colBool:
				if ints[i].Valid {
					record[c.name] = ints[i].Int64 != 0
				} else {
					record[c.name] = nil
				}
			case colInt:
				if ints[i].Valid {
					record[c.name] = ints[i].Int64
				} else {
					record[c.name] = nil
				}
			case colJSON:
				if texts[i].Valid && texts[i].String != "" {
					record[c.name] = json.RawMessage(texts[i].String)
				} else {
					record[c.name] = nil
				}
			default:
				if texts[i].Valid {
					record[c.name] = texts[i].String
				} else {
					record[c.name] = nil
				}
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// sqlValue converts one JSON field value into its sqlite representation.
func sqlValue(c column, raw json.RawMessage) (any, error) {
	if string(raw) == "null" {
		return nil, nil
	}
	switch c.kind {
	case colBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	case colInt:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}
		return n, nil
	case colJSON:
		return string(raw), nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.name, err)
		}
		return s, nil
	}
}

func (s *Store) insertRow(def tableDef, fields map[string]json.RawMessage) (int64, error) {
	var cols []string
	var marks []string
	var args []any
	for _, c := range def.columns {
		raw, ok := fields[c.name]
		if !ok {
			if c.kind == colTime && c.name == "created_at" {
				cols = append(cols, c.name)
				marks = append(marks, "?")
				args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
			}
			continue
		}
		v, err := sqlValue(c, raw)
		if err != nil {
			return 0, err
		}
		cols = append(cols, c.name)
		marks = append(marks, "?")
		args = append(args, v)
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("no recognized columns in payload")
	}
	query := "INSERT INTO " + def.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	res, err := s.DB.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) updateRow(def tableDef, id int, fields map[string]json.RawMessage) error {
	var sets []string
	var args []any
	for _, c := range def.columns {
		raw, ok := fields[c.name]
		if !ok {
			continue
		}
		v, err := sqlValue(c, raw)
		if err != nil {
			return err
		}
		sets = append(sets, c.name+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return fmt.Errorf("no recognized columns in payload")
	}
	args = append(args, id)
	query := "UPDATE " + def.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err := s.DB.Exec(query, args...)
	return err
}

func (s *Store) deleteRow(def tableDef, id int) error {
	_, err := s.DB.Exec("DELETE FROM "+def.name+" WHERE id = ?", id)
	return err
}
