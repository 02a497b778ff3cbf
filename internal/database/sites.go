package database

import (
	"context"

	"markeep/internal/models"
)

type CreateSiteParams struct {
	FolderID int64
	URL      string
	Title    string
	Comment  string
}

func (q *Queries) CreateSite(ctx context.Context, arg CreateSiteParams) (*models.Site, error) {
	query := `
		INSERT INTO sites (folder_id, url, title, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, folder_id, url, title, comment, created_at
	`
	var site models.Site
	err := q.db.QueryRow(ctx, query, arg.FolderID, arg.URL, arg.Title, arg.Comment).Scan(
		&site.ID,
		&site.FolderID,
		&site.URL,
		&site.Title,
		&site.Comment,
		&site.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (q *Queries) ListSitesByFolderID(ctx context.Context, folderID int64) ([]models.Site, error) {
	query := `
		SELECT id, folder_id, url, title, comment, created_at
		FROM sites
		WHERE folder_id = $1
		ORDER BY id
	`
	rows, err := q.db.Query(ctx, query, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []models.Site{}
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(
			&site.ID,
			&site.FolderID,
			&site.URL,
			&site.Title,
			&site.Comment,
			&site.CreatedAt,
		); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sites, nil
}
