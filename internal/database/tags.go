package database

import (
	"context"

	"markeep/internal/models"
)

func (q *Queries) CreateTag(ctx context.Context, folderID int64, name string) (*models.Tag, error) {
	query := `
		INSERT INTO tags (folder_id, tag_name)
		VALUES ($1, $2)
		RETURNING id, folder_id, tag_name, created_at
	`
	var tag models.Tag
	err := q.db.QueryRow(ctx, query, folderID, name).Scan(&tag.ID, &tag.FolderID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTag
		}
		if isForeignKeyViolation(err) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// ListTagsForFolders loads the tags of every given folder in one query, keyed
// by folder id.
func (q *Queries) ListTagsForFolders(ctx context.Context, folderIDs []int64) (map[int64][]models.Tag, error) {
	query := `
		SELECT id, folder_id, tag_name, created_at
		FROM tags
		WHERE folder_id = ANY($1)
		ORDER BY folder_id, id
	`
	rows, err := q.db.Query(ctx, query, folderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int64][]models.Tag, len(folderIDs))
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.FolderID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags[tag.FolderID] = append(tags[tag.FolderID], tag)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
