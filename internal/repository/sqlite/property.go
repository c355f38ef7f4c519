package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yariga/property-api/internal/domain"
)

// PropertyRepository implements domain.PropertyRepository using SQLite.
type PropertyRepository struct {
	db *sql.DB
}

// sortColumns whitelists the query-exposed sort fields and maps them to
// their column names. Anything else falls back to insertion order.
var sortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"price":        "price",
	"location":     "location",
	"propertyType": "property_type",
	"createdAt":    "created_at",
}

const propertyColumns = "id, title, description, property_type, location, price, photo, creator_id, created_at"

func (r *PropertyRepository) Find(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, error) {
	where, args := buildFilter(q)

	order := "rowid" // insertion order is the store default
	if col, ok := sortColumns[q.SortField]; ok && q.SortField != "" {
		dir := "ASC"
		if q.SortOrder == domain.SortDesc {
			dir = "DESC"
		}
		order = col + " " + dir
	}

	query := "SELECT " + propertyColumns + " FROM properties" + where + " ORDER BY " + order
	if q.Paged {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.PropertyType,
			&p.Location, &p.Price, &p.Photo, &p.CreatorID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// Count returns the total matching the filter alone; the pagination
// window in q is ignored so callers always see the pre-window total.
func (r *PropertyRepository) Count(ctx context.Context, q domain.PropertyQuery) (int, error) {
	where, args := buildFilter(q)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return count, nil
}

func buildFilter(q domain.PropertyQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Type != "" {
		conds = append(conds, "property_type = ?")
		args = append(args, q.Type)
	}
	if q.TitleLike != "" {
		conds = append(conds, "instr(lower(title), lower(?)) > 0")
		args = append(args, q.TitleLike)
	}

	if len(conds) == 0 {
		return "", nil
	}

	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	p := &domain.Property{}
	err := r.db.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id = ?", id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.PropertyType,
		&p.Location, &p.Price, &p.Photo, &p.CreatorID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// GetByIDWithCreator loads a property together with its owning user.
func (r *PropertyRepository) GetByIDWithCreator(ctx context.Context, id string) (*domain.Property, error) {
	p := &domain.Property{}
	u := &domain.User{}
	var list string
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.description, p.property_type, p.location, p.price, p.photo, p.creator_id, p.created_at,
		        u.id, u.name, u.email, u.avatar, u.all_properties, u.created_at
		 FROM properties p
		 JOIN users u ON u.id = p.creator_id
		 WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.PropertyType,
		&p.Location, &p.Price, &p.Photo, &p.CreatorID, &p.CreatedAt,
		&u.ID, &u.Name, &u.Email, &u.Avatar, &list, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get property with creator: %w", err)
	}

	u.AllProperties, err = decodePropertyList(list)
	if err != nil {
		return nil, err
	}
	p.Creator = u
	return p, nil
}

// Create inserts the property and appends its ID to the creator's
// all_properties sequence. Both writes share one transaction.
func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var list string
	err = tx.QueryRowContext(ctx,
		"SELECT all_properties FROM users WHERE id = ?", property.CreatorID,
	).Scan(&list)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("load creator: %w", err)
	}

	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO properties (id, title, description, property_type, location, price, photo, creator_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		property.ID, property.Title, property.Description, property.PropertyType,
		property.Location, property.Price, property.Photo, property.CreatorID, now,
	); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}

	ids, err := decodePropertyList(list)
	if err != nil {
		return err
	}
	updated, err := encodePropertyList(append(ids, property.ID))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET all_properties = ? WHERE id = ?", updated, property.CreatorID,
	); err != nil {
		return fmt.Errorf("append to owner properties: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	property.CreatedAt = now
	return nil
}

func (r *PropertyRepository) Patch(ctx context.Context, id string, patch domain.PropertyPatch) error {
	var sets []string
	var args []any

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.PropertyType != nil {
		set("property_type", *patch.PropertyType)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Photo != nil {
		set("photo", *patch.Photo)
	}

	if len(sets) == 0 {
		// Nothing to change, but the caller still needs the existence check.
		_, err := r.GetByID(ctx, id)
		return err
	}

	query := "UPDATE properties SET " + sets[0]
	for _, s := range sets[1:] {
		query += ", " + s
	}
	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the property row and pulls its ID from the owner's
// all_properties sequence. Both writes share one transaction.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var creatorID string
	err = tx.QueryRowContext(ctx,
		"SELECT creator_id FROM properties WHERE id = ?", id,
	).Scan(&creatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("load property: %w", err)
	}

	var list string
	if err := tx.QueryRowContext(ctx,
		"SELECT all_properties FROM users WHERE id = ?", creatorID,
	).Scan(&list); err != nil {
		return fmt.Errorf("load owner: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	ids, err := decodePropertyList(list)
	if err != nil {
		return err
	}
	remaining := ids[:0]
	for _, pid := range ids {
		if pid != id {
			remaining = append(remaining, pid)
		}
	}
	updated, err := encodePropertyList(remaining)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET all_properties = ? WHERE id = ?", updated, creatorID,
	); err != nil {
		return fmt.Errorf("pull from owner properties: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
