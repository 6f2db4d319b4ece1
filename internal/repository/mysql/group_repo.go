package mysql

import (
	"database/sql"

	"blog-platform/internal/model"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *model.Group) error {
	query := `INSERT INTO communities (title, slug, description) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, group.Title, group.Slug, group.Description)
	if err != nil {
		util.Logger.Error("创建社区失败", zap.Error(err), zap.String("slug", group.Slug))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	group.ID = int(id)
	return nil
}

// FindBySlug 通过 slug 查找社区，不存在时返回 nil
func (r *groupRepository) FindBySlug(slug string) (*model.Group, error) {
	query := `SELECT id, title, slug, description FROM communities WHERE slug = ?`
	var group model.Group
	err := r.db.QueryRow(query, slug).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindAll() ([]*model.Group, error) {
	rows, err := r.db.Query(`SELECT id, title, slug, description FROM communities ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	return groups, rows.Err()
}
