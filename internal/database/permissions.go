package database

import (
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/varejo-labs/vendas-dashboard/internal/models"
)

// GetRLSConfig loads the full permission configuration, split by type.
func (db *DB) GetRLSConfig() (*models.RLSConfig, error) {
	query := `
		SELECT id, user_id, user_name, permission_type, allowed_tabs, filter_type, filter_values
		FROM vendas_permissoes
		ORDER BY user_id
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	config := &models.RLSConfig{
		TabPermissions:   []models.TabPermission{},
		StorePermissions: []models.StorePermission{},
	}

	for rows.Next() {
		row, err := scanPermissionRow(rows)
		if err != nil {
			return nil, err
		}

		switch row.permissionType {
		case models.PermissionTypeTab:
			config.TabPermissions = append(config.TabPermissions, models.TabPermission{
				ID:          strconv.Itoa(row.id),
				UserID:      row.userID,
				UserName:    row.userName,
				AllowedTabs: row.allowedTabs,
			})
		case models.PermissionTypeStore:
			config.StorePermissions = append(config.StorePermissions, models.StorePermission{
				ID:           strconv.Itoa(row.id),
				UserID:       row.userID,
				UserName:     row.userName,
				FilterType:   row.filterType,
				FilterValues: row.filterValues,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permissions: %w", err)
	}

	return config, nil
}

// ReplaceRLSConfig atomically replaces the whole permission set.
func (db *DB) ReplaceRLSConfig(config *models.RLSConfig) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vendas_permissoes`); err != nil {
		return fmt.Errorf("failed to clear permissions: %w", err)
	}

	for _, perm := range config.TabPermissions {
		_, err := tx.Exec(`
			INSERT INTO vendas_permissoes (user_id, user_name, permission_type, allowed_tabs)
			VALUES ($1, $2, $3, $4)
		`, perm.UserID, perm.UserName, models.PermissionTypeTab, pq.Array(perm.AllowedTabs))
		if err != nil {
			return fmt.Errorf("failed to insert tab permission for user %d: %w", perm.UserID, err)
		}
	}

	for _, perm := range config.StorePermissions {
		filterType := perm.FilterType
		if filterType == "" {
			filterType = models.FilterTypeAll
		}
		_, err := tx.Exec(`
			INSERT INTO vendas_permissoes (user_id, user_name, permission_type, filter_type, filter_values)
			VALUES ($1, $2, $3, $4, $5)
		`, perm.UserID, perm.UserName, models.PermissionTypeStore, filterType, pq.Array(perm.FilterValues))
		if err != nil {
			return fmt.Errorf("failed to insert store permission for user %d: %w", perm.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit permissions: %w", err)
	}
	return nil
}

// GetUserPermissions resolves one user's effective permissions,
// applying defaults when no rows exist.
func (db *DB) GetUserPermissions(userID int) (*models.UserPermissions, error) {
	query := `
		SELECT id, user_id, user_name, permission_type, allowed_tabs, filter_type, filter_values
		FROM vendas_permissoes
		WHERE user_id = $1
	`
	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user permissions: %w", err)
	}
	defer rows.Close()

	perms := defaultUserPermissions(userID)

	for rows.Next() {
		row, err := scanPermissionRow(rows)
		if err != nil {
			return nil, err
		}

		switch row.permissionType {
		case models.PermissionTypeTab:
			perms.Tabs = row.allowedTabs
		case models.PermissionTypeStore:
			perms.Stores = models.StoreFilter{
				FilterType:   row.filterType,
				FilterValues: row.filterValues,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user permissions: %w", err)
	}

	return perms, nil
}

type permissionRow struct {
	id             int
	userID         int
	userName       string
	permissionType string
	allowedTabs    []string
	filterType     string
	filterValues   []string
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPermissionRow(s rowScanner) (*permissionRow, error) {
	var row permissionRow
	var userName, filterType *string
	var allowedTabs, filterValues pq.StringArray

	err := s.Scan(&row.id, &row.userID, &userName, &row.permissionType, &allowedTabs, &filterType, &filterValues)
	if err != nil {
		return nil, fmt.Errorf("failed to scan permission row: %w", err)
	}

	if userName != nil {
		row.userName = *userName
	}
	if filterType != nil {
		row.filterType = *filterType
	}
	if row.filterType == "" {
		row.filterType = models.FilterTypeAll
	}
	row.allowedTabs = allowedTabs
	row.filterValues = filterValues
	if row.allowedTabs == nil {
		row.allowedTabs = []string{}
	}
	if row.filterValues == nil {
		row.filterValues = []string{}
	}
	return &row, nil
}

func defaultUserPermissions(userID int) *models.UserPermissions {
	tabs := make([]string, len(models.DefaultTabs))
	copy(tabs, models.DefaultTabs)
	return &models.UserPermissions{
		UserID: userID,
		Tabs:   tabs,
		Stores: models.StoreFilter{
			FilterType:   models.FilterTypeAll,
			FilterValues: []string{},
		},
	}
}
