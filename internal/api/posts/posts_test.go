package posts

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-platform/config"
	"blog-platform/internal/middleware"
	"blog-platform/internal/model"
	"blog-platform/internal/repository/interfaces"
	"blog-platform/internal/service"
	"blog-platform/internal/util"
	"blog-platform/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockGroupRepository 是 GroupRepository 接口的模拟实现
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(group *model.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindBySlug(slug string) (*model.Group, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) FindAll() ([]*model.Group, error) {
	args := m.Called()
	return args.Get(0).([]*model.Group), args.Error(1)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(id int) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountByGroup(groupID int) (int, error) {
	args := m.Called(groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CountFeed(userID int) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) List(limit, offset int) ([]*model.Post, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByGroup(groupID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(groupID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(authorID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(authorID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListFeed(userID, limit, offset int) ([]*model.Post, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

// MockCommentRepository 是 CommentRepository 接口的模拟实现
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByPost(postID int) (int, error) {
	args := m.Called(postID)
	return args.Int(0), args.Error(1)
}

// MockFollowRepository 是 FollowRepository 接口的模拟实现
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(follow *model.Follow) error {
	args := m.Called(follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(userID, authorID int) error {
	args := m.Called(userID, authorID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(userID, authorID int) (bool, error) {
	args := m.Called(userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(userID int) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

var (
	_ interfaces.UserRepository    = (*MockUserRepository)(nil)
	_ interfaces.GroupRepository   = (*MockGroupRepository)(nil)
	_ interfaces.PostRepository    = (*MockPostRepository)(nil)
	_ interfaces.CommentRepository = (*MockCommentRepository)(nil)
	_ interfaces.FollowRepository  = (*MockFollowRepository)(nil)
)

// stubStorage 记录上传路径但不真正写文件
type stubStorage struct {
	uploaded []string
}

func (s *stubStorage) UploadFile(file *multipart.FileHeader, path string) (string, error) {
	s.uploaded = append(s.uploaded, path)
	return path, nil
}

type testEnv struct {
	router      *gin.Engine
	userRepo    *MockUserRepository
	groupRepo   *MockGroupRepository
	postRepo    *MockPostRepository
	commentRepo *MockCommentRepository
	followRepo  *MockFollowRepository
	storage     *stubStorage
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	env := &testEnv{
		userRepo:    new(MockUserRepository),
		groupRepo:   new(MockGroupRepository),
		postRepo:    new(MockPostRepository),
		commentRepo: new(MockCommentRepository),
		followRepo:  new(MockFollowRepository),
		storage:     &stubStorage{},
	}

	userService := service.NewUserService(env.userRepo)
	groupService := service.NewGroupService(env.groupRepo)
	postService := service.NewPostService(env.postRepo, env.commentRepo, env.userRepo)
	followService := service.NewFollowService(env.followRepo, env.postRepo, env.commentRepo)
	handler := NewPostHandler(postService, groupService, userService, followService, env.storage)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.Use(middleware.CurrentUser(userService))

	r.GET("/", handler.Index)
	r.GET("/group/:slug/", handler.GroupPosts)
	r.GET("/profile/:username/", handler.Profile)
	r.GET("/posts/:id/", handler.PostDetail)

	authorized := r.Group("/")
	authorized.Use(middleware.LoginRequired())
	{
		authorized.GET("/create/", handler.CreatePage)
		authorized.POST("/create/", handler.Create)
		authorized.GET("/posts/:id/edit/", handler.EditPage)
		authorized.POST("/posts/:id/edit/", handler.Edit)
		authorized.POST("/posts/:id/comment/", handler.AddComment)
	}

	env.router = r
	return env
}

// loginAs 准备某用户的登录 cookie，并让用户查询返回该用户
func (env *testEnv) loginAs(user *model.User) *http.Cookie {
	env.userRepo.On("FindByID", user.ID).Return(user, nil)
	token, _ := util.GenerateToken(user.ID)
	return &http.Cookie{Name: middleware.AuthCookieName, Value: token}
}

func (env *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// multipartBody 构造帖子表单的 multipart 请求体
func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		assert.NoError(t, writer.WriteField(name, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		assert.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// TestCreatePostRequiresLogin 测试未登录发帖被重定向到登录页
func TestCreatePostRequiresLogin(t *testing.T) {
	env := newTestEnv()

	body, contentType := multipartBody(t, map[string]string{"text": "你好"}, "")
	req := httptest.NewRequest(http.MethodPost, "/create/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))
	env.postRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestCreatePost 测试带图片和社区发帖，成功后跳转作者主页
func TestCreatePost(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	group := &model.Group{ID: 3, Title: "技术", Slug: "tech"}
	cookie := env.loginAs(author)

	env.groupRepo.On("FindBySlug", "tech").Return(group, nil)
	env.postRepo.On("Create", mock.MatchedBy(func(p *model.Post) bool {
		return p.AuthorID == 7 &&
			p.Text == "第一篇帖子" &&
			p.GroupID != nil && *p.GroupID == 3 &&
			p.Image != ""
	})).Return(nil)

	body, contentType := multipartBody(t, map[string]string{
		"text":  "第一篇帖子",
		"group": "tech",
	}, "cat.jpg")
	req := httptest.NewRequest(http.MethodPost, "/create/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Len(t, env.storage.uploaded, 1)
	env.postRepo.AssertExpectations(t)
}

// TestCreatePostRejectsNonImage 测试非图片文件触发字段错误且不创建帖子
func TestCreatePostRejectsNonImage(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	cookie := env.loginAs(author)

	env.groupRepo.On("FindAll").Return([]*model.Group{}, nil)

	body, contentType := multipartBody(t, map[string]string{"text": "带附件"}, "virus.exe")
	req := httptest.NewRequest(http.MethodPost, "/create/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "exe")
	assert.Contains(t, w.Body.String(), "jpg")
	env.postRepo.AssertNotCalled(t, "Create", mock.Anything)
	assert.Empty(t, env.storage.uploaded)
}

// TestCreatePostGroupLookupFailure 测试社区查询的数据库故障
// 作为服务端错误返回，而不是伪装成表单校验错误
func TestCreatePostGroupLookupFailure(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	cookie := env.loginAs(author)

	env.groupRepo.On("FindBySlug", "tech").Return(nil, assert.AnError)

	body, contentType := multipartBody(t, map[string]string{
		"text":  "内容",
		"group": "tech",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/create/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env.postRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestCreatePostRequiresText 测试空内容被拒绝
func TestCreatePostRequiresText(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	cookie := env.loginAs(author)

	env.groupRepo.On("FindAll").Return([]*model.Group{}, nil)

	body, contentType := multipartBody(t, map[string]string{"text": ""}, "")
	req := httptest.NewRequest(http.MethodPost, "/create/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "请填写帖子内容")
	env.postRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestEditPostByAuthor 测试作者编辑后跳转详情页
func TestEditPostByAuthor(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	cookie := env.loginAs(author)
	existing := &model.Post{ID: 1, AuthorID: 7, Text: "旧内容", PubDate: time.Now(), Author: author}

	env.postRepo.On("FindByID", 1).Return(existing, nil)
	env.postRepo.On("Update", mock.MatchedBy(func(p *model.Post) bool {
		return p.ID == 1 && p.Text == "新内容" && p.AuthorID == 7
	})).Return(nil)

	body, contentType := multipartBody(t, map[string]string{"text": "新内容"}, "")
	req := httptest.NewRequest(http.MethodPost, "/posts/1/edit/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))
	env.postRepo.AssertExpectations(t)
}

// TestEditPostByNonAuthor 测试非作者编辑不产生变更，直接跳回详情页
func TestEditPostByNonAuthor(t *testing.T) {
	env := newTestEnv()
	intruder := &model.User{ID: 9, Username: "mallory"}
	cookie := env.loginAs(intruder)
	existing := &model.Post{ID: 1, AuthorID: 7, Text: "旧内容", PubDate: time.Now()}

	env.postRepo.On("FindByID", 1).Return(existing, nil)

	body, contentType := multipartBody(t, map[string]string{"text": "篡改内容"}, "")
	req := httptest.NewRequest(http.MethodPost, "/posts/1/edit/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))
	env.postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

// TestEditPostByNonAuthorWithInvalidForm 测试非作者提交无效表单时
// 同样直接跳回详情页，而不是重新渲染编辑表单
func TestEditPostByNonAuthorWithInvalidForm(t *testing.T) {
	env := newTestEnv()
	intruder := &model.User{ID: 9, Username: "mallory"}
	cookie := env.loginAs(intruder)
	existing := &model.Post{ID: 1, AuthorID: 7, Text: "旧内容", PubDate: time.Now()}

	env.postRepo.On("FindByID", 1).Return(existing, nil)

	body, contentType := multipartBody(t, map[string]string{"text": ""}, "")
	req := httptest.NewRequest(http.MethodPost, "/posts/1/edit/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))
	env.postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

// TestEditPostByNonAuthorSkipsImageUpload 测试非作者带图片的编辑请求
// 在授权检查处被拦下，图片不落存储
func TestEditPostByNonAuthorSkipsImageUpload(t *testing.T) {
	env := newTestEnv()
	intruder := &model.User{ID: 9, Username: "mallory"}
	cookie := env.loginAs(intruder)
	existing := &model.Post{ID: 1, AuthorID: 7, Text: "旧内容", PubDate: time.Now()}

	env.postRepo.On("FindByID", 1).Return(existing, nil)

	body, contentType := multipartBody(t, map[string]string{"text": "篡改内容"}, "evil.png")
	req := httptest.NewRequest(http.MethodPost, "/posts/1/edit/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))
	assert.Empty(t, env.storage.uploaded)
	env.postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

// TestEditPageByNonAuthor 测试非作者访问编辑页被跳回详情页
func TestEditPageByNonAuthor(t *testing.T) {
	env := newTestEnv()
	intruder := &model.User{ID: 9, Username: "mallory"}
	cookie := env.loginAs(intruder)
	existing := &model.Post{ID: 1, AuthorID: 7, Text: "旧内容"}

	env.postRepo.On("FindByID", 1).Return(existing, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/1/edit/", nil)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1/", w.Header().Get("Location"))
}

// TestAddComment 测试登录用户评论后跳回详情页
func TestAddComment(t *testing.T) {
	env := newTestEnv()
	commenter := &model.User{ID: 9, Username: "mia"}
	cookie := env.loginAs(commenter)
	post := &model.Post{ID: 5, AuthorID: 7, Text: "内容"}

	env.postRepo.On("FindByID", 5).Return(post, nil)
	env.commentRepo.On("Create", mock.MatchedBy(func(c *model.Comment) bool {
		return c.PostID == 5 && c.AuthorID == 9 && c.Text == "好文"
	})).Return(nil)

	body, contentType := multipartBody(t, map[string]string{"text": "好文"}, "")
	req := httptest.NewRequest(http.MethodPost, "/posts/5/comment/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
	env.commentRepo.AssertExpectations(t)
}

// TestAddEmptyComment 测试空评论不入库
func TestAddEmptyComment(t *testing.T) {
	env := newTestEnv()
	commenter := &model.User{ID: 9, Username: "mia"}
	cookie := env.loginAs(commenter)

	body, contentType := multipartBody(t, map[string]string{"text": ""}, "")
	req := httptest.NewRequest(http.MethodPost, "/posts/5/comment/", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
	env.commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestPostDetail 测试详情页渲染帖子和评论
func TestPostDetail(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	post := &model.Post{ID: 5, AuthorID: 7, Text: "详情内容", PubDate: time.Now(), Author: author}
	comments := []*model.Comment{
		{ID: 1, PostID: 5, AuthorID: 9, Text: "好文", Created: time.Now(), Author: &model.User{ID: 9, Username: "mia"}},
	}

	env.postRepo.On("FindByID", 5).Return(post, nil)
	env.commentRepo.On("ListByPost", 5).Return(comments, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/5/", nil)
	w := env.do(req, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "详情内容")
	assert.Contains(t, w.Body.String(), "好文")
}

// TestPostDetailNotFound 测试不存在的帖子返回404页面
func TestPostDetailNotFound(t *testing.T) {
	env := newTestEnv()

	env.postRepo.On("FindByID", 404).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/404/", nil)
	w := env.do(req, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestProfile 测试作者主页展示帖子和关注数
func TestProfile(t *testing.T) {
	env := newTestEnv()
	author := &model.User{ID: 7, Username: "leo"}
	posts := []*model.Post{{ID: 1, AuthorID: 7, Text: "主页帖子", PubDate: time.Now(), Author: author}}

	env.userRepo.On("FindByUsername", "leo").Return(author, nil)
	env.postRepo.On("CountByAuthor", 7).Return(1, nil)
	env.postRepo.On("ListByAuthor", 7, 10, 0).Return(posts, nil)
	env.commentRepo.On("CountByPost", 1).Return(4, nil)
	env.followRepo.On("CountFollowers", 7).Return(2, nil)
	env.followRepo.On("CountFollowing", 7).Return(3, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile/leo/", nil)
	w := env.do(req, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "主页帖子")
	assert.Contains(t, w.Body.String(), "2 人关注")
	assert.Contains(t, w.Body.String(), "关注了 3 人")
	assert.Contains(t, w.Body.String(), "4 条评论")
}

// TestGroupNotFound 测试未知社区返回404页面
func TestGroupNotFound(t *testing.T) {
	env := newTestEnv()

	env.groupRepo.On("FindBySlug", "nope").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/group/nope/", nil)
	w := env.do(req, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
