package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/inkedmayhem/content-pipeline/pkg/postgres"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

const (
	// Table
	documentsTable = "documents"

	// Columns
	namespaceColumn = "namespace"
	keyColumn       = "key"
	docColumn       = "doc"
	updatedAtColumn = "updated_at"
)

// DocStoreRepo keeps whole JSON documents in one keyed table, mirroring
// the blob-store contract: Set is a blind upsert, last writer wins.
type DocStoreRepo struct {
	*postgres.Postgres
}

func NewDocStoreRepo(pg *postgres.Postgres) *DocStoreRepo {
	return &DocStoreRepo{pg}
}

func (r *DocStoreRepo) Get(ctx context.Context, namespace, key string, out any) error {
	sql, args, err := r.Builder.
		Select(docColumn).
		From(documentsTable).
		Where(squirrel.And{
			squirrel.Eq{namespaceColumn: namespace},
			squirrel.Eq{keyColumn: key},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Get - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var raw []byte
	err = executor.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("DocStoreRepo - Get: %w", errs.ErrRecordNotFound)
		}
		return fmt.Errorf("DocStoreRepo - Get - executor.QueryRow: %w", err)
	}

	err = json.Unmarshal(raw, out)
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Get - json.Unmarshal: %w", err)
	}

	return nil
}

func (r *DocStoreRepo) Set(ctx context.Context, namespace, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Set - json.Marshal: %w", err)
	}

	sql, args, err := r.Builder.
		Insert(documentsTable).
		Columns(namespaceColumn, keyColumn, docColumn, updatedAtColumn).
		Values(namespace, key, raw, time.Now()).
		Suffix("ON CONFLICT (" + namespaceColumn + ", " + keyColumn + ") DO UPDATE SET " +
			docColumn + " = EXCLUDED." + docColumn + ", " +
			updatedAtColumn + " = EXCLUDED." + updatedAtColumn).
		ToSql()
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Set - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Set - executor.Exec: %w", err)
	}

	return nil
}

func (r *DocStoreRepo) Delete(ctx context.Context, namespace, key string) error {
	sql, args, err := r.Builder.
		Delete(documentsTable).
		Where(squirrel.And{
			squirrel.Eq{namespaceColumn: namespace},
			squirrel.Eq{keyColumn: key},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DocStoreRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DocStoreRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *DocStoreRepo) List(ctx context.Context, namespace string) ([]string, error) {
	sql, args, err := r.Builder.
		Select(keyColumn).
		From(documentsTable).
		Where(squirrel.Eq{namespaceColumn: namespace}).
		OrderBy(keyColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("DocStoreRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("DocStoreRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("DocStoreRepo - List - rows.Scan: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("DocStoreRepo - List - rows.Err: %w", err)
	}

	return keys, nil
}
