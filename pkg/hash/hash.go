// Package hash 提供了基于 bcrypt 的密码哈希与校验功能。
package hash

import "golang.org/x/crypto/bcrypt"

// HashPassword 对明文密码进行加盐哈希，返回可直接落库的哈希字符串。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验明文密码与存储的哈希是否匹配。
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
