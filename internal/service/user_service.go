package service

import (
	"errors"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/hash"
	"contract-ai-go/pkg/token"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (accessToken string, err error)
	GetByID(userID string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。
// 用户名冲突返回 ErrUsernameTaken；密码只保存 bcrypt 哈希。
func (s *userService) Register(username, password string) (*model.User, error) {
	// 1. 检查用户名是否已存在
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 创建新用户
	newUser := &model.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		// 并发注册同名用户时，预检查可能通过而唯一索引拒绝写入
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return newUser, nil
}

// Login 处理用户登录的业务逻辑。
// 用户不存在与密码错误统一返回 ErrInvalidCredentials，不向调用方泄露区别。
func (s *userService) Login(username, password string) (string, error) {
	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	// 3. 生成 access token
	return s.jwtManager.GenerateToken(user.ID, user.Username)
}

// GetByID 根据用户 ID 获取用户信息，认证中间件用它把 token 换成在库用户。
func (s *userService) GetByID(userID string) (*model.User, error) {
	return s.userRepo.FindByID(userID)
}
