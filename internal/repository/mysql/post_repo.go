package mysql

import (
	"database/sql"

	"blog-platform/internal/model"
	"blog-platform/internal/util"

	"go.uber.org/zap"
)

// postColumns 是帖子列表查询共用的列集合，带作者和社区信息
const postColumns = `
        SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
               u.username, c.title, c.slug
        FROM posts p
        JOIN users u ON p.author_id = u.id
        LEFT JOIN communities c ON p.group_id = c.id`

// 所有列表按发布时间倒序，id 作为同刻发布的次序
const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC LIMIT ? OFFSET ?`

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (text, pub_date, author_id, group_id, image)
              VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, post.Text, post.PubDate, post.AuthorID, post.GroupID, post.Image)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(id)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) FindByID(id int) (*model.Post, error) {
	query := postColumns + ` WHERE p.id = ?`

	post, err := scanPost(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Update(post *model.Post) error {
	// author_id 和 pub_date 不在更新列中，永远保持创建时的值
	query := `UPDATE posts SET text = ?, group_id = ?, image = ? WHERE id = ?`
	_, err := r.db.Exec(query, post.Text, post.GroupID, post.Image, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) Delete(id int) error {
	query := `DELETE FROM posts WHERE id = ?`
	_, err := r.db.Exec(query, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	return nil
}

func (r *postRepository) Count() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total)
	return total, err
}

func (r *postRepository) CountByGroup(groupID int) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE group_id = ?`, groupID).Scan(&total)
	return total, err
}

func (r *postRepository) CountByAuthor(authorID int) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&total)
	return total, err
}

func (r *postRepository) CountFeed(userID int) (int, error) {
	var total int
	err := r.db.QueryRow(`
        SELECT COUNT(*)
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        WHERE f.user_id = ?`, userID).Scan(&total)
	return total, err
}

func (r *postRepository) List(limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postColumns+postOrder, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *postRepository) ListByGroup(groupID, limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postColumns+` WHERE p.group_id = ?`+postOrder, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *postRepository) ListByAuthor(authorID, limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postColumns+` WHERE p.author_id = ?`+postOrder, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *postRepository) ListFeed(userID, limit, offset int) ([]*model.Post, error) {
	query := postColumns + `
        JOIN follows f ON p.author_id = f.author_id
        WHERE f.user_id = ?` + postOrder
	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var post model.Post
	var author model.User
	var groupID sql.NullInt64
	var groupTitle, groupSlug sql.NullString

	err := row.Scan(
		&post.ID, &post.Text, &post.PubDate, &post.AuthorID,
		&groupID, &post.Image,
		&author.Username, &groupTitle, &groupSlug,
	)
	if err != nil {
		return nil, err
	}

	author.ID = post.AuthorID
	post.Author = &author

	if groupID.Valid {
		id := int(groupID.Int64)
		post.GroupID = &id
		post.Group = &model.Group{
			ID:    id,
			Title: groupTitle.String,
			Slug:  groupSlug.String,
		}
	}
	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
