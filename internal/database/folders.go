package database

import (
	"context"
	"errors"
	"strings"

	"markeep/internal/models"

	"github.com/jackc/pgx/v5"
)

// keywordFilter matches a folder when its name or any of its tags contains at
// least one keyword. EXISTS keeps a folder to a single row no matter how many
// keywords or tags match. An empty pattern array disables the filter.
const keywordFilter = `
	(cardinality($1::text[]) = 0
		OR f.name ILIKE ANY($1::text[])
		OR EXISTS (
			SELECT 1 FROM tags t
			WHERE t.folder_id = f.id AND t.tag_name ILIKE ANY($1::text[])
		))`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// keywordPatterns turns normalized keywords into ILIKE substring patterns. It
// never returns nil: pgx encodes a nil slice as NULL, which cardinality() does
// not treat as empty.
func keywordPatterns(keywords []string) []string {
	patterns := make([]string, 0, len(keywords))
	for _, k := range keywords {
		patterns = append(patterns, "%"+likeEscaper.Replace(k)+"%")
	}
	return patterns
}

type CreateFolderParams struct {
	UserID int64
	Name   string
}

func (q *Queries) CreateFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	query := `
		INSERT INTO folders (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, pin_count, created_at
	`
	var folder models.Folder
	err := q.db.QueryRow(ctx, query, arg.UserID, arg.Name).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.PinCount,
		&folder.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	folder.Tags = []models.Tag{}
	return &folder, nil
}

// GetFolderByID returns the folder with its tags, or nil when it does not exist.
func (q *Queries) GetFolderByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT id, user_id, name, pin_count, created_at FROM folders WHERE id = $1`

	var folder models.Folder
	err := q.db.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.PinCount,
		&folder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tags, err := q.ListTagsForFolders(ctx, []int64{folder.ID})
	if err != nil {
		return nil, err
	}
	folder.Tags = tags[folder.ID]
	if folder.Tags == nil {
		folder.Tags = []models.Tag{}
	}

	return &folder, nil
}

// DeleteFolder removes a folder owned by ownerID. Tags, sites and pins go with
// it through ON DELETE CASCADE.
func (q *Queries) DeleteFolder(ctx context.Context, id int64, ownerID int64) (bool, error) {
	res, err := q.db.Exec(ctx, `DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) CountFoldersByKeywords(ctx context.Context, patterns []string) (int64, error) {
	query := `SELECT count(*) FROM folders f WHERE ` + keywordFilter

	var total int64
	err := q.db.QueryRow(ctx, query, patterns).Scan(&total)
	return total, err
}

// ListFoldersOrderByPinCount returns one page of matching folders without
// tags, most pinned first, ties broken by id.
func (q *Queries) ListFoldersOrderByPinCount(ctx context.Context, patterns []string, limit int, offset int64) ([]models.Folder, error) {
	query := `
		SELECT f.id, f.user_id, f.name, f.pin_count, f.created_at
		FROM folders f
		WHERE ` + keywordFilter + `
		ORDER BY f.pin_count DESC, f.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, query, patterns, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.Name,
			&folder.PinCount,
			&folder.CreatedAt,
		); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if folders == nil {
		return []models.Folder{}, nil
	}

	return folders, nil
}

// FindAllOrderByPinCountKeywords pages through folders matching any of the
// keywords, most pinned first. Keywords are expected to be normalized with
// models.NormalizeKeywords. The count and the page are read from one snapshot
// so the totals always agree with the content.
func (s *Store) FindAllOrderByPinCountKeywords(ctx context.Context, req models.PageRequest, keywords []string) (*models.Page[models.Folder], error) {
	patterns := keywordPatterns(keywords)

	var (
		total   int64
		folders []models.Folder
	)

	err := s.ExecReadTx(ctx, func(q *Queries) error {
		var err error
		total, err = q.CountFoldersByKeywords(ctx, patterns)
		if err != nil {
			return err
		}
		if total == 0 || req.Offset() >= total {
			folders = []models.Folder{}
			return nil
		}

		folders, err = q.ListFoldersOrderByPinCount(ctx, patterns, req.Size, req.Offset())
		if err != nil {
			return err
		}
		if len(folders) == 0 {
			return nil
		}

		ids := make([]int64, len(folders))
		for i, f := range folders {
			ids[i] = f.ID
		}
		tags, err := q.ListTagsForFolders(ctx, ids)
		if err != nil {
			return err
		}
		for i := range folders {
			folders[i].Tags = tags[folders[i].ID]
			if folders[i].Tags == nil {
				folders[i].Tags = []models.Tag{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.NewPage(folders, req, total), nil
}

// FolderWithTags is the input for CreateFolderWithTags.
type FolderWithTags struct {
	UserID int64
	Name   string
	Tags   []string
}

// CreateFolderWithTags inserts the folder and all of its tags in one transaction.
func (s *Store) CreateFolderWithTags(ctx context.Context, arg FolderWithTags) (*models.Folder, error) {
	var folder *models.Folder

	err := s.ExecTx(ctx, func(q *Queries) error {
		var err error
		folder, err = q.CreateFolder(ctx, CreateFolderParams{UserID: arg.UserID, Name: arg.Name})
		if err != nil {
			return err
		}
		for _, name := range arg.Tags {
			tag, err := q.CreateTag(ctx, folder.ID, name)
			if err != nil {
				return err
			}
			folder.Tags = append(folder.Tags, *tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}
